package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/internal/screens/questionslist"
	"github.com/yanqian/lastactive/pkg/observable"
)

// Screen prints the questions list to a terminal. It implements the view, navigator
// and error contracts, and signals Finished once a fetch cycle has rendered.
type Screen struct {
	out       io.Writer
	listeners observable.Registry[questionslist.ClickListener]
	finished  chan struct{}
	shown     []questions.Question
}

// NewScreen constructs a console screen writing to out.
func NewScreen(out io.Writer) *Screen {
	return &Screen{out: out, finished: make(chan struct{}, 1)}
}

// Finished receives a value each time questions are bound or an error is shown.
func (s *Screen) Finished() <-chan struct{} {
	return s.finished
}

func (s *Screen) ShowProgressIndication() {
	fmt.Fprintln(s.out, "loading last active questions...")
}

func (s *Screen) HideProgressIndication() {}

func (s *Screen) BindQuestions(qs []questions.Question) {
	s.shown = qs
	if len(qs) == 0 {
		fmt.Fprintln(s.out, "no active questions")
	} else {
		tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE")
		for _, q := range qs {
			fmt.Fprintf(tw, "%s\t%s\n", q.ID, q.Title)
		}
		tw.Flush()
	}
	s.signal()
}

func (s *Screen) RegisterListener(listener questionslist.ClickListener) {
	s.listeners.Register(listener)
}

func (s *Screen) UnregisterListener(listener questionslist.ClickListener) {
	s.listeners.Unregister(listener)
}

// Select simulates choosing the row with id. It reports false when the row is not shown.
func (s *Screen) Select(id string) bool {
	for _, q := range s.shown {
		if q.ID != id {
			continue
		}
		for _, listener := range s.listeners.Listeners() {
			listener.OnQuestionClicked(q)
		}
		return true
	}
	return false
}

// ShowUseCaseError implements questionslist.ErrorPresenter.
func (s *Screen) ShowUseCaseError() {
	fmt.Fprintln(s.out, "could not load questions, try again later")
	s.signal()
}

// ToQuestionDetails implements questionslist.Navigator.
func (s *Screen) ToQuestionDetails(questionID string) {
	fmt.Fprintf(s.out, "opening question %s\n", questionID)
}

func (s *Screen) signal() {
	select {
	case s.finished <- struct{}{}:
	default:
	}
}

var (
	_ questionslist.View           = (*Screen)(nil)
	_ questionslist.Navigator      = (*Screen)(nil)
	_ questionslist.ErrorPresenter = (*Screen)(nil)
)
