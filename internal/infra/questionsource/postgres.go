package questionsource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

// PostgresEndpoint reads last-active questions from a questions table.
type PostgresEndpoint struct {
	pool  *pgxpool.Pool
	limit int
}

// NewPostgresEndpoint constructs the endpoint.
func NewPostgresEndpoint(pool *pgxpool.Pool, limit int) *PostgresEndpoint {
	return &PostgresEndpoint{pool: pool, limit: limit}
}

// FetchLastActive implements questions.Endpoint.
func (e *PostgresEndpoint) FetchLastActive(ctx context.Context) ([]questions.RawQuestionRecord, error) {
	rows, err := e.pool.Query(ctx, `
		SELECT id::text, title, body
		FROM questions
		ORDER BY last_activity_at DESC
		LIMIT $1
	`, e.limit)
	if err != nil {
		return nil, fmt.Errorf("query last active questions: %w", err)
	}
	defer rows.Close()
	out := make([]questions.RawQuestionRecord, 0, e.limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

// Close releases the pool.
func (e *PostgresEndpoint) Close() {
	e.pool.Close()
}

var _ questions.Endpoint = (*PostgresEndpoint)(nil)
