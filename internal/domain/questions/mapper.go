package questions

// FromRecord projects a raw record onto a Question. Body is not carried over.
func FromRecord(record RawQuestionRecord) Question {
	return Question{ID: record.ID, Title: record.Title}
}

// FromRecords maps records in order, keeping duplicates.
func FromRecords(records []RawQuestionRecord) []Question {
	out := make([]Question, 0, len(records))
	for _, record := range records {
		out = append(out, FromRecord(record))
	}
	return out
}
