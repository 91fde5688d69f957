package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/opeak/internal/adapter/backend"
	"github.com/polkiloo/opeak/internal/adapter/events"
	"github.com/polkiloo/opeak/internal/app"
	"github.com/polkiloo/opeak/internal/config"
	"github.com/polkiloo/opeak/internal/logger"
	"github.com/polkiloo/opeak/internal/metrics"
	"github.com/polkiloo/opeak/internal/pkg/auth"
	"github.com/polkiloo/opeak/internal/server/http/router"
	"github.com/polkiloo/opeak/internal/storage/postgres"
	"github.com/polkiloo/opeak/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		backend.Module,
		events.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
