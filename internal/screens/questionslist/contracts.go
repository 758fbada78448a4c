package questionslist

import "github.com/yanqian/lastactive/internal/domain/questions"

// ClickListener is notified when a row on the questions list is selected.
type ClickListener interface {
	OnQuestionClicked(question questions.Question)
}

// View renders the questions list screen.
type View interface {
	ShowProgressIndication()
	HideProgressIndication()
	BindQuestions(questions []questions.Question)
	RegisterListener(listener ClickListener)
	UnregisterListener(listener ClickListener)
}

// ErrorPresenter surfaces generic failures to the user.
type ErrorPresenter interface {
	ShowUseCaseError()
}

// Navigator moves the user between screens.
type Navigator interface {
	ToQuestionDetails(questionID string)
}
