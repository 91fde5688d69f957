package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/opeak/internal/metrics"
	"github.com/polkiloo/opeak/internal/ordering"
)

// Module provides the ordering workflow use cases to the fx container.
var Module = fx.Provide(
	ordering.NewDraftRegistry,
	ordering.NewOrderBook,
	func(m *metrics.Metrics) Recorder { return m },
	NewCatalogUseCase,
	NewSessionUseCase,
	NewOrderUseCase,
	NewCartUseCase,
)
