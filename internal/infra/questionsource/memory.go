package questionsource

import (
	"context"
	"sync"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

// MemoryEndpoint serves a fixed list of records, for development and tests.
type MemoryEndpoint struct {
	mu      sync.RWMutex
	records []questions.RawQuestionRecord
	limit   int
}

// NewMemoryEndpoint constructs an endpoint seeded with records.
func NewMemoryEndpoint(records []questions.RawQuestionRecord, limit int) *MemoryEndpoint {
	e := &MemoryEndpoint{limit: limit}
	e.Replace(records)
	return e
}

// Replace swaps the served records.
func (e *MemoryEndpoint) Replace(records []questions.RawQuestionRecord) {
	cp := make([]questions.RawQuestionRecord, len(records))
	copy(cp, records)
	e.mu.Lock()
	e.records = cp
	e.mu.Unlock()
}

// FetchLastActive implements questions.Endpoint.
func (e *MemoryEndpoint) FetchLastActive(ctx context.Context) ([]questions.RawQuestionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := len(e.records)
	if e.limit > 0 && n > e.limit {
		n = e.limit
	}
	out := make([]questions.RawQuestionRecord, n)
	copy(out, e.records[:n])
	return out, nil
}

var _ questions.Endpoint = (*MemoryEndpoint)(nil)
