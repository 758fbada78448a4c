//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/lastactive/internal/bootstrap"
	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/internal/infra/config"
	"github.com/yanqian/lastactive/internal/interface/console"
	httpiface "github.com/yanqian/lastactive/internal/interface/http"
	"github.com/yanqian/lastactive/internal/interface/screen"
	"github.com/yanqian/lastactive/internal/platform/dispatch"
	"github.com/yanqian/lastactive/internal/screens/questionslist"
)

var sourceSet = wire.NewSet(
	provideLogger,
	provideRegistry,
	provideEndpoint,
	provideLoop,
	questions.NewFetchLastActiveUseCase,
	wire.Bind(new(dispatch.Dispatcher), new(*dispatch.Loop)),
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
)

func initializeApp(cfg *config.Config) (*bootstrap.App, func(), error) {
	wire.Build(
		sourceSet,
		screen.NewHeadlessView,
		screen.NewRecorder,
		questionslist.NewController,
		provideHost,
		httpiface.NewScreenHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
		wire.Bind(new(questionslist.Navigator), new(*screen.Recorder)),
		wire.Bind(new(questionslist.ErrorPresenter), new(*screen.Recorder)),
		wire.Bind(new(httpiface.ScreenHost), new(*screen.Host)),
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	)
	return nil, nil, nil
}

func initializeLister(cfg *config.Config, view *console.Screen) (*lister, func(), error) {
	wire.Build(
		sourceSet,
		questionslist.NewController,
		newLister,
		wire.Bind(new(questionslist.Navigator), new(*console.Screen)),
		wire.Bind(new(questionslist.ErrorPresenter), new(*console.Screen)),
	)
	return nil, nil, nil
}
