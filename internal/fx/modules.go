package fx

import (
	"go.uber.org/fx"

	"replay-coach/internal/api"
	"replay-coach/internal/config"
	"replay-coach/internal/database"
	"replay-coach/internal/logger"
	"replay-coach/internal/repository"
	"replay-coach/internal/server"
	"replay-coach/internal/service"
)

var Module = fx.Options(
	logger.Module,
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewReplayRepository),
	fx.Provide(repository.NewIndexRepository),
	fx.Provide(repository.NewBenchmarkRepository),
	// parser client
	fx.Provide(api.NewParserClient),
	// svc
	fx.Provide(service.NewReplayService),
	fx.Provide(service.NewAnalyticsService),
	fx.Provide(service.NewBenchmarkService),
	// server
	fx.Provide(server.NewAnalyticsServer),
)
