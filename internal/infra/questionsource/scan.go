package questionsource

import (
	"database/sql"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (questions.RawQuestionRecord, error) {
	var (
		record questions.RawQuestionRecord
		body   sql.NullString
	)
	if err := row.Scan(&record.ID, &record.Title, &body); err != nil {
		return questions.RawQuestionRecord{}, err
	}
	if body.Valid {
		record.Body = body.String
	}
	return record, nil
}
