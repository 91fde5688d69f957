package backend

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/opeak/internal/config"
	"github.com/polkiloo/opeak/internal/domain/repository"
	"github.com/polkiloo/opeak/internal/metrics"
)

// Module exposes the backend client under every repository it serves.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(
		func(c *HTTPClient) repository.CatalogRepository { return c },
		func(c *HTTPClient) repository.OrderRepository { return c },
		func(c *HTTPClient) repository.SessionVerifier { return c },
	),
)

type clientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newClient(p clientParams) (*HTTPClient, error) {
	var observer Observer
	if p.Metrics != nil {
		observer = p.Metrics
	}
	return NewHTTPClient(p.Config.BackendAddress, p.Config.BackendTimeout, p.Logger, observer)
}
