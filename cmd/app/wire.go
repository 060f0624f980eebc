//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/astromaster/internal/bootstrap"
	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/infra/config"
	httpiface "github.com/yanqian/astromaster/internal/interface/http"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideAuthConfig,
		provideHoroscopeConfig,
		provideDatabases,
		provideAuthRepository,
		provideHoroscopeRepository,
		provideValkeyClient,
		provideHoroscopeCache,
		provideJobQueue,
		provideMetricsRegistry,
		provideRecorder,
		provideHoroscopeService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
