package screen

import (
	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/internal/screens/questionslist"
	"github.com/yanqian/lastactive/pkg/observable"
)

// HeadlessView records what the controller renders so a remote client can read it back.
// It is confined to the dispatch loop.
type HeadlessView struct {
	progressVisible bool
	questions       []questions.Question
	bound           bool
	listeners       observable.Registry[questionslist.ClickListener]
}

// NewHeadlessView constructs an empty view.
func NewHeadlessView() *HeadlessView {
	return &HeadlessView{}
}

func (v *HeadlessView) ShowProgressIndication() {
	v.progressVisible = true
}

func (v *HeadlessView) HideProgressIndication() {
	v.progressVisible = false
}

func (v *HeadlessView) BindQuestions(qs []questions.Question) {
	v.questions = append([]questions.Question(nil), qs...)
	v.bound = true
}

func (v *HeadlessView) RegisterListener(listener questionslist.ClickListener) {
	v.listeners.Register(listener)
}

func (v *HeadlessView) UnregisterListener(listener questionslist.ClickListener) {
	v.listeners.Unregister(listener)
}

// Click selects the bound question with id. It reports false when no such row is shown.
func (v *HeadlessView) Click(id string) bool {
	for _, q := range v.questions {
		if q.ID != id {
			continue
		}
		for _, listener := range v.listeners.Listeners() {
			listener.OnQuestionClicked(q)
		}
		return true
	}
	return false
}

// Recorder implements the navigation and error contracts by remembering the last call.
type Recorder struct {
	destination string
	errorsShown int
}

// NewRecorder constructs an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ToQuestionDetails implements questionslist.Navigator.
func (r *Recorder) ToQuestionDetails(questionID string) {
	r.destination = questionID
}

// ShowUseCaseError implements questionslist.ErrorPresenter.
func (r *Recorder) ShowUseCaseError() {
	r.errorsShown++
}

var (
	_ questionslist.View           = (*HeadlessView)(nil)
	_ questionslist.Navigator      = (*Recorder)(nil)
	_ questionslist.ErrorPresenter = (*Recorder)(nil)
)
