package questions

import (
	"context"
	"log/slog"

	"github.com/yanqian/lastactive/internal/platform/dispatch"
	apperrors "github.com/yanqian/lastactive/pkg/errors"
	"github.com/yanqian/lastactive/pkg/observable"
)

// Endpoint retrieves the raw last-active questions from a remote source.
type Endpoint interface {
	FetchLastActive(ctx context.Context) ([]RawQuestionRecord, error)
}

// Listener receives the outcome of a fetch.
type Listener interface {
	OnLastActiveQuestionsFetched(questions []Question)
	OnLastActiveQuestionsFetchFailed()
}

// FetchLastActiveUseCase fetches the last-active questions and broadcasts the outcome.
type FetchLastActiveUseCase interface {
	RegisterListener(listener Listener)
	UnregisterListener(listener Listener)
	FetchAndNotify(ctx context.Context)
}

type fetchLastActiveUseCase struct {
	endpoint   Endpoint
	dispatcher dispatch.Dispatcher
	listeners  observable.Registry[Listener]
	logger     *slog.Logger
}

// NewFetchLastActiveUseCase wires the use-case. Outcomes are delivered through dispatcher.
func NewFetchLastActiveUseCase(endpoint Endpoint, dispatcher dispatch.Dispatcher, logger *slog.Logger) FetchLastActiveUseCase {
	return &fetchLastActiveUseCase{
		endpoint:   endpoint,
		dispatcher: dispatcher,
		logger:     logger.With("component", "questions.fetch_last_active"),
	}
}

func (u *fetchLastActiveUseCase) RegisterListener(listener Listener) {
	u.listeners.Register(listener)
}

func (u *fetchLastActiveUseCase) UnregisterListener(listener Listener) {
	u.listeners.Unregister(listener)
}

// FetchAndNotify returns immediately; every call starts an independent fetch.
// Concurrent calls are not coalesced.
func (u *fetchLastActiveUseCase) FetchAndNotify(ctx context.Context) {
	go func() {
		records, err := u.endpoint.FetchLastActive(ctx)
		if err != nil {
			u.logger.Warn("last active questions fetch failed", "error", apperrors.Wrap(CodeFetchFailed, "endpoint error", err))
			u.dispatcher.Post(u.notifyFailure)
			return
		}
		questions := FromRecords(records)
		u.logger.Info("last active questions fetched", "count", len(questions))
		u.dispatcher.Post(func() { u.notifySuccess(questions) })
	}()
}

func (u *fetchLastActiveUseCase) notifySuccess(questions []Question) {
	for _, listener := range u.listeners.Listeners() {
		listener.OnLastActiveQuestionsFetched(questions)
	}
}

func (u *fetchLastActiveUseCase) notifyFailure() {
	for _, listener := range u.listeners.Listeners() {
		listener.OnLastActiveQuestionsFetchFailed()
	}
}
