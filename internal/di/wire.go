//go:build wireinject
// +build wireinject

package di

import (
	"TrendCast/pkg/config"
	"TrendCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaConsumer,
		ProvideKafkaProducer,

		// Domain
		ProvideRenderer,
		ProvideSeriesSource,
		ProvideReportBuilder,
		ProvideLiveSeries,
		ProvidePipeline,
		ProvideObservationsHandler,

		// HTTP surface
		ProvideHub,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
