package questions

// Question is the presentation-facing projection of a fetched question.
type Question struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RawQuestionRecord is what a fetch endpoint hands back.
type RawQuestionRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
