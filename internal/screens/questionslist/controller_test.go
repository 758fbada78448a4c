package questionslist

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/pkg/observable"
)

var testQuestions = []questions.Question{
	{ID: "id1", Title: "title1"},
	{ID: "id2", Title: "title2"},
}

func TestActivateShowsProgress(t *testing.T) {
	h := newHarness(t)
	h.useCase.pending = true

	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, 1, h.view.count("show_progress"))
	require.Equal(t, StateLoading, h.controller.State())
}

func TestActivateSuccessHidesProgressThenBinds(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, []string{"register", "show_progress", "hide_progress", "bind"}, h.view.events)
	require.Equal(t, [][]questions.Question{testQuestions}, h.view.bound)
	require.Equal(t, StateLoaded, h.controller.State())
}

func TestActivateFailureHidesProgressThenShowsError(t *testing.T) {
	h := newHarness(t)
	h.useCase.failure = true

	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, []string{"register", "show_progress", "hide_progress", "error"}, h.view.events)
}

func TestActivateFailureShowsErrorWithoutBinding(t *testing.T) {
	h := newHarness(t)
	h.useCase.failure = true

	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, 1, h.errors.shown)
	require.Zero(t, h.view.count("bind"))
	require.Equal(t, StateError, h.controller.State())
	_, cached := h.controller.Cached()
	require.False(t, cached)
}

func TestSecondActivateBindsFromCache(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.controller.Activate(context.Background()))
	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, [][]questions.Question{testQuestions, testQuestions}, h.view.bound)
	require.Equal(t, 1, h.useCase.calls)
	require.Equal(t, 1, h.view.count("show_progress"))
}

func TestCacheSurvivesDeactivate(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.controller.Activate(context.Background()))
	h.controller.Deactivate()
	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, 1, h.useCase.calls)
	require.Len(t, h.view.bound, 2)
	require.Equal(t, StateLoaded, h.controller.State())
	require.False(t, slices.Contains(h.useCase.registry.Listeners(), questions.Listener(h.controller)))
}

func TestActivateAfterFailureRetriesFetch(t *testing.T) {
	h := newHarness(t)
	h.useCase.failure = true
	require.NoError(t, h.controller.Activate(context.Background()))
	h.controller.Deactivate()

	h.useCase.failure = false
	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, 2, h.useCase.calls)
	require.Equal(t, [][]questions.Question{testQuestions}, h.view.bound)
	require.Equal(t, StateLoaded, h.controller.State())
}

func TestActivateRegistersListeners(t *testing.T) {
	h := newHarness(t)
	h.useCase.pending = true

	require.NoError(t, h.controller.Activate(context.Background()))

	require.True(t, slices.Contains(h.view.listeners.Listeners(), ClickListener(h.controller)))
	require.True(t, slices.Contains(h.useCase.registry.Listeners(), questions.Listener(h.controller)))
}

func TestDeactivateUnregistersListeners(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.controller.Activate(context.Background()))

	h.controller.Deactivate()

	require.False(t, slices.Contains(h.view.listeners.Listeners(), ClickListener(h.controller)))
	require.False(t, slices.Contains(h.useCase.registry.Listeners(), questions.Listener(h.controller)))
	require.Equal(t, StateIdle, h.controller.State())
}

func TestLateResultAfterDeactivateIsNotDelivered(t *testing.T) {
	h := newHarness(t)
	h.useCase.pending = true
	require.NoError(t, h.controller.Activate(context.Background()))

	h.controller.Deactivate()
	h.useCase.complete(testQuestions)

	require.Zero(t, h.view.count("bind"))
	require.Zero(t, h.view.count("hide_progress"))
	_, cached := h.controller.Cached()
	require.False(t, cached)
}

func TestRedeliveredQuestionsReplaceCache(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.controller.Activate(context.Background()))

	updated := []questions.Question{{ID: "id3", Title: "title3"}}
	h.useCase.complete(updated)

	got, ok := h.controller.Cached()
	require.True(t, ok)
	require.Equal(t, updated, got)
	require.Equal(t, updated, h.view.bound[len(h.view.bound)-1])
}

func TestEmptyResultIsCached(t *testing.T) {
	h := newHarness(t)
	h.useCase.questions = []questions.Question{}

	require.NoError(t, h.controller.Activate(context.Background()))
	require.NoError(t, h.controller.Activate(context.Background()))

	require.Equal(t, 1, h.useCase.calls)
	require.Len(t, h.view.bound, 2)
	require.Empty(t, h.view.bound[1])
}

func TestQuestionClickedNavigatesToDetails(t *testing.T) {
	h := newHarness(t)

	h.controller.OnQuestionClicked(testQuestions[0])

	require.Equal(t, []string{"id1"}, h.navigator.destinations)
}

func TestQuestionClickedThroughViewAfterActivate(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.controller.Activate(context.Background()))

	h.view.click(testQuestions[1])

	require.Equal(t, []string{"id2"}, h.navigator.destinations)
}

func TestActivateWithoutViewFails(t *testing.T) {
	useCase := newUseCaseTd()
	controller := NewController(useCase, &navigatorTd{}, &errorPresenterTd{}, newTestLogger())

	err := controller.Activate(context.Background())

	require.ErrorIs(t, err, ErrViewNotBound)
	require.Zero(t, useCase.calls)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "loading", StateLoading.String())
	require.Equal(t, "loaded", StateLoaded.String())
	require.Equal(t, "error", StateError.String())
	require.Equal(t, "unknown", State(42).String())
}

type harness struct {
	controller *Controller
	useCase    *useCaseTd
	view       *viewTd
	navigator  *navigatorTd
	errors     *errorPresenterTd
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	view := &viewTd{}
	h := &harness{
		useCase:   newUseCaseTd(),
		view:      view,
		navigator: &navigatorTd{},
		errors:    &errorPresenterTd{events: &view.events},
	}
	h.controller = NewController(h.useCase, h.navigator, h.errors, newTestLogger())
	h.controller.BindView(h.view)
	return h
}

// useCaseTd completes synchronously unless pending is set.
type useCaseTd struct {
	registry  observable.Registry[questions.Listener]
	questions []questions.Question
	failure   bool
	pending   bool
	calls     int
}

func newUseCaseTd() *useCaseTd {
	return &useCaseTd{questions: testQuestions}
}

func (u *useCaseTd) RegisterListener(listener questions.Listener) {
	u.registry.Register(listener)
}

func (u *useCaseTd) UnregisterListener(listener questions.Listener) {
	u.registry.Unregister(listener)
}

func (u *useCaseTd) FetchAndNotify(ctx context.Context) {
	u.calls++
	if u.pending {
		return
	}
	if u.failure {
		for _, l := range u.registry.Listeners() {
			l.OnLastActiveQuestionsFetchFailed()
		}
		return
	}
	u.complete(u.questions)
}

func (u *useCaseTd) complete(fetched []questions.Question) {
	for _, l := range u.registry.Listeners() {
		l.OnLastActiveQuestionsFetched(fetched)
	}
}

type viewTd struct {
	events    []string
	bound     [][]questions.Question
	listeners observable.Registry[ClickListener]
}

func (v *viewTd) ShowProgressIndication() { v.events = append(v.events, "show_progress") }

func (v *viewTd) HideProgressIndication() { v.events = append(v.events, "hide_progress") }

func (v *viewTd) BindQuestions(qs []questions.Question) {
	v.events = append(v.events, "bind")
	v.bound = append(v.bound, qs)
}

func (v *viewTd) RegisterListener(listener ClickListener) {
	v.events = append(v.events, "register")
	v.listeners.Register(listener)
}

func (v *viewTd) UnregisterListener(listener ClickListener) {
	v.events = append(v.events, "unregister")
	v.listeners.Unregister(listener)
}

func (v *viewTd) click(question questions.Question) {
	for _, l := range v.listeners.Listeners() {
		l.OnQuestionClicked(question)
	}
}

func (v *viewTd) count(event string) int {
	n := 0
	for _, e := range v.events {
		if e == event {
			n++
		}
	}
	return n
}

type navigatorTd struct {
	destinations []string
}

func (n *navigatorTd) ToQuestionDetails(questionID string) {
	n.destinations = append(n.destinations, questionID)
}

// errorPresenterTd logs into the view's event list when events is set.
type errorPresenterTd struct {
	shown  int
	events *[]string
}

func (e *errorPresenterTd) ShowUseCaseError() {
	e.shown++
	if e.events != nil {
		*e.events = append(*e.events, "error")
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
