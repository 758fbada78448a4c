package questionslist

import (
	"context"
	"log/slog"

	"github.com/yanqian/lastactive/internal/domain/questions"
	apperrors "github.com/yanqian/lastactive/pkg/errors"
)

// CodeViewNotBound is reported when the controller is started without a view.
const CodeViewNotBound = "view_not_bound"

// ErrViewNotBound is returned by Activate before BindView was called.
var ErrViewNotBound = apperrors.Wrap(CodeViewNotBound, "questions list view is not bound", nil)

// Controller drives the questions list screen. It must only be called from one
// execution context, the same one the use-case delivers its outcomes on.
type Controller struct {
	useCase   questions.FetchLastActiveUseCase
	navigator Navigator
	errors    ErrorPresenter
	logger    *slog.Logger

	view  View
	state State

	cached    []questions.Question
	hasCached bool
}

// NewController wires the screen controller.
func NewController(useCase questions.FetchLastActiveUseCase, navigator Navigator, errors ErrorPresenter, logger *slog.Logger) *Controller {
	return &Controller{
		useCase:   useCase,
		navigator: navigator,
		errors:    errors,
		logger:    logger.With("component", "questionslist.controller"),
	}
}

// BindView attaches the view the controller renders into.
func (c *Controller) BindView(view View) {
	c.view = view
}

// State reports the current presentation state.
func (c *Controller) State() State {
	return c.state
}

// Cached returns a copy of the cached questions and whether the cache is populated.
func (c *Controller) Cached() ([]questions.Question, bool) {
	if !c.hasCached {
		return nil, false
	}
	out := make([]questions.Question, len(c.cached))
	copy(out, c.cached)
	return out, true
}

// Activate starts a cycle. Cached questions are bound right away; otherwise a fetch is started.
func (c *Controller) Activate(ctx context.Context) error {
	if c.view == nil {
		return ErrViewNotBound
	}
	c.view.RegisterListener(c)
	if c.hasCached {
		c.logger.Debug("binding cached questions", "count", len(c.cached))
		c.view.BindQuestions(c.cached)
		c.state = StateLoaded
		return nil
	}
	c.view.ShowProgressIndication()
	c.state = StateLoading
	c.useCase.RegisterListener(c)
	c.useCase.FetchAndNotify(ctx)
	return nil
}

// Deactivate ends the cycle. The cache is kept for the next Activate.
func (c *Controller) Deactivate() {
	if c.view != nil {
		c.view.UnregisterListener(c)
	}
	c.useCase.UnregisterListener(c)
	c.state = StateIdle
}

// OnLastActiveQuestionsFetched implements questions.Listener.
func (c *Controller) OnLastActiveQuestionsFetched(fetched []questions.Question) {
	if c.state != StateLoading {
		c.logger.Debug("questions delivered outside of loading", "state", c.state.String())
	}
	c.view.HideProgressIndication()
	c.cached = fetched
	c.hasCached = true
	c.view.BindQuestions(fetched)
	c.state = StateLoaded
}

// OnLastActiveQuestionsFetchFailed implements questions.Listener.
func (c *Controller) OnLastActiveQuestionsFetchFailed() {
	c.view.HideProgressIndication()
	c.errors.ShowUseCaseError()
	c.state = StateError
	c.logger.Warn("last active questions unavailable", "cached", c.hasCached)
}

// OnQuestionClicked implements ClickListener.
func (c *Controller) OnQuestionClicked(question questions.Question) {
	c.navigator.ToQuestionDetails(question.ID)
}

var (
	_ questions.Listener = (*Controller)(nil)
	_ ClickListener      = (*Controller)(nil)
)
