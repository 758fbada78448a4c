package questionsource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

// ValkeyEndpoint reads a question list that another process publishes as a JSON array under one key.
type ValkeyEndpoint struct {
	client valkey.Client
	key    string
	limit  int
}

// NewValkeyEndpoint constructs the endpoint.
func NewValkeyEndpoint(client valkey.Client, key string, limit int) *ValkeyEndpoint {
	if key == "" {
		key = "questions:last_active"
	}
	return &ValkeyEndpoint{client: client, key: key, limit: limit}
}

// FetchLastActive implements questions.Endpoint. A missing key yields an empty list.
func (e *ValkeyEndpoint) FetchLastActive(ctx context.Context) ([]questions.RawQuestionRecord, error) {
	payload, err := e.client.Do(ctx, e.client.B().Get().Key(e.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []questions.RawQuestionRecord{}, nil
		}
		return nil, fmt.Errorf("valkey get %s: %w", e.key, err)
	}
	return decodePublished([]byte(payload), e.limit)
}

// Publish stores records under the endpoint key.
func (e *ValkeyEndpoint) Publish(ctx context.Context, records []questions.RawQuestionRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return e.client.Do(ctx, e.client.B().Set().Key(e.key).Value(string(payload)).Build()).Error()
}

func decodePublished(payload []byte, limit int) ([]questions.RawQuestionRecord, error) {
	var records []questions.RawQuestionRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode published questions: %w", err)
	}
	if records == nil {
		records = []questions.RawQuestionRecord{}
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

var _ questions.Endpoint = (*ValkeyEndpoint)(nil)
