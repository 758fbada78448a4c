package questionsource

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

// SQLiteEndpoint reads last-active questions from a local SQLite file.
type SQLiteEndpoint struct {
	conn  *sql.DB
	limit int
}

// OpenSQLite opens the database and makes sure the questions table exists.
func OpenSQLite(path string, limit int) (*SQLiteEndpoint, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := createTables(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create sqlite tables: %w", err)
	}
	return &SQLiteEndpoint{conn: conn, limit: limit}, nil
}

func createTables(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT,
			last_activity_at INTEGER NOT NULL
		)
	`)
	return err
}

// Upsert stores a question with its last activity timestamp (unix seconds).
func (e *SQLiteEndpoint) Upsert(ctx context.Context, record questions.RawQuestionRecord, lastActivity int64) error {
	_, err := e.conn.ExecContext(ctx, `
		INSERT INTO questions (id, title, body, last_activity_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			last_activity_at = excluded.last_activity_at
	`, record.ID, record.Title, record.Body, lastActivity)
	return err
}

// FetchLastActive implements questions.Endpoint.
func (e *SQLiteEndpoint) FetchLastActive(ctx context.Context) ([]questions.RawQuestionRecord, error) {
	rows, err := e.conn.QueryContext(ctx, `
		SELECT id, title, body
		FROM questions
		ORDER BY last_activity_at DESC
		LIMIT ?
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

// Close closes the database connection.
func (e *SQLiteEndpoint) Close() error {
	return e.conn.Close()
}

var _ questions.Endpoint = (*SQLiteEndpoint)(nil)
