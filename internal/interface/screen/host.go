package screen

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/internal/platform/dispatch"
	"github.com/yanqian/lastactive/internal/screens/questionslist"
	apperrors "github.com/yanqian/lastactive/pkg/errors"
)

// CodeQuestionNotFound is returned when a click targets a row that is not bound.
const CodeQuestionNotFound = "question_not_found"

// Snapshot is what the screen currently shows.
type Snapshot struct {
	State           string               `json:"state"`
	ProgressVisible bool                 `json:"progressVisible"`
	Questions       []questions.Question `json:"questions"`
	ErrorsShown     int                  `json:"errorsShown"`
	Destination     string               `json:"destination,omitempty"`
}

// Config tunes the host.
type Config struct {
	FetchTimeout time.Duration
}

// Host runs one questions list screen on a dispatch loop and lets other goroutines drive it.
type Host struct {
	loop       *dispatch.Loop
	controller *questionslist.Controller
	view       *HeadlessView
	recorder   *Recorder
	cfg        Config
	logger     *slog.Logger

	base      context.Context
	closeBase context.CancelFunc
	active    bool
	fetches   []pendingFetch
}

type pendingFetch struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHost binds view to controller. The loop must be running before the host is used.
func NewHost(cfg Config, loop *dispatch.Loop, controller *questionslist.Controller, view *HeadlessView, recorder *Recorder, logger *slog.Logger) *Host {
	controller.BindView(view)
	base, closeBase := context.WithCancel(context.Background())
	return &Host{
		base:       base,
		closeBase:  closeBase,
		loop:       loop,
		controller: controller,
		view:       view,
		recorder:   recorder,
		cfg:        cfg,
		logger:     logger.With("component", "screen.host"),
	}
}

// Start activates the controller. The fetch it may trigger outlives ctx and Stop; it ends at
// screen.fetchTimeout or on Close. Starting a screen that is already started leaves it untouched.
func (h *Host) Start(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	callErr := h.loop.Call(ctx, func() {
		if h.active {
			snap = h.snapshot()
			return
		}
		fetchCtx, cancel := h.fetchContext()
		if err = h.controller.Activate(fetchCtx); err != nil {
			cancel()
			return
		}
		h.active = true
		h.pruneFetches()
		h.fetches = append(h.fetches, pendingFetch{ctx: fetchCtx, cancel: cancel})
		snap = h.snapshot()
	})
	if callErr != nil {
		return Snapshot{}, callErr
	}
	if err != nil {
		return Snapshot{}, err
	}
	h.logger.Info("screen started", "state", snap.State)
	return snap, nil
}

// Stop deactivates the controller. A fetch still in flight runs on and its result reaches
// only listeners registered when it lands.
func (h *Host) Stop(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := h.loop.Call(ctx, func() {
		h.controller.Deactivate()
		h.active = false
		snap = h.snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	h.logger.Info("screen stopped")
	return snap, nil
}

// Snapshot reads the current screen.
func (h *Host) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := h.loop.Call(ctx, func() { snap = h.snapshot() }); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Click selects a bound question.
func (h *Host) Click(ctx context.Context, id string) (Snapshot, error) {
	var (
		snap  Snapshot
		found bool
	)
	err := h.loop.Call(ctx, func() {
		found = h.view.Click(id)
		snap = h.snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	if !found {
		return Snapshot{}, apperrors.Wrap(CodeQuestionNotFound, "question "+id+" is not on screen", nil)
	}
	return snap, nil
}

// Close cancels every fetch the host started. The host must not be started again.
func (h *Host) Close() {
	h.closeBase()
}

func (h *Host) fetchContext() (context.Context, context.CancelFunc) {
	if h.cfg.FetchTimeout > 0 {
		return context.WithTimeout(h.base, h.cfg.FetchTimeout)
	}
	return context.WithCancel(h.base)
}

// pruneFetches releases the timers of fetch contexts that already ended.
func (h *Host) pruneFetches() {
	kept := h.fetches[:0]
	for _, f := range h.fetches {
		if f.ctx.Err() != nil {
			f.cancel()
			continue
		}
		kept = append(kept, f)
	}
	for i := len(kept); i < len(h.fetches); i++ {
		h.fetches[i] = pendingFetch{}
	}
	h.fetches = kept
}

func (h *Host) snapshot() Snapshot {
	var qs []questions.Question
	if h.view.bound {
		qs = append([]questions.Question{}, h.view.questions...)
	}
	return Snapshot{
		State:           h.controller.State().String(),
		ProgressVisible: h.view.progressVisible,
		Questions:       qs,
		ErrorsShown:     h.recorder.errorsShown,
		Destination:     h.recorder.destination,
	}
}
