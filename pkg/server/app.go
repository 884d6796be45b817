package server

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TrendCast/internal/handler/api"
	mid "TrendCast/internal/middleware"
	"TrendCast/internal/usecase"
	"TrendCast/pkg/cache"
	pkgch "TrendCast/pkg/clickhouse"
	"TrendCast/pkg/config"
	xhttp "TrendCast/pkg/http"
	pkgkafka "TrendCast/pkg/kafka"
	applogger "TrendCast/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	hub         *api.Hub
	builder     *usecase.ReportBuilder
	live        *usecase.LiveSeries
	pipe        *mid.ObservationPipeline
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	producer    *pkgkafka.Producer
	chClient    *pkgch.Client
	cacheSvc    cache.Service
}

// New creates a new App instance with all dependencies. Kafka consumer,
// producer, pipeline, live series and ClickHouse client may be nil when
// the corresponding features are disabled.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	httpHandler xhttp.Handler,
	hub *api.Hub,
	builder *usecase.ReportBuilder,
	live *usecase.LiveSeries,
	pipe *mid.ObservationPipeline,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		httpHandler: httpHandler,
		hub:         hub,
		builder:     builder,
		live:        live,
		pipe:        pipe,
		consumer:    consumer,
		kh:          kh,
		producer:    producer,
		chClient:    chClient,
		cacheSvc:    cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	)

	if a.pipe != nil {
		a.pipe.Start(ctx)
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Push live report snapshots to websocket clients
	if a.live != nil && a.hub != nil {
		go a.livePump(ctx)
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.String("host", a.cfg.Server.Host),
		applogger.Int("port", a.cfg.Server.Port),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// livePump rebuilds the live report after each accepted observation and
// fans it out to websocket clients, at most once per pushInterval.
func (a *App) livePump(ctx context.Context) {
	const pushInterval = 500 * time.Millisecond

	notify := a.live.Subscribe()
	defer a.live.Unsubscribe(notify)

	params := usecase.BuildParams{
		Window:  a.cfg.Forecast.Window,
		Horizon: a.cfg.Forecast.Horizon,
		History: a.cfg.Forecast.History,
	}

	var lastPush time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-notify:
			if since := time.Since(lastPush); since < pushInterval {
				time.Sleep(pushInterval - since)
			}
			lastPush = time.Now()

			snapshot := a.live.Snapshot()
			if len(snapshot) == 0 {
				continue
			}
			report, err := a.builder.BuildFrom(snapshot, a.live.Name(), params)
			if err != nil {
				a.logger.Warn("live report build error", applogger.Error(err))
				continue
			}
			payload, err := json.Marshal(report)
			if err != nil {
				a.logger.Warn("live report marshal error", applogger.Error(err))
				continue
			}
			a.hub.Broadcast(payload)

			if a.producer != nil && a.cfg.Kafka.PublishTopic != "" {
				if err := a.producer.Publish(ctx, a.cfg.Kafka.PublishTopic, nil, payload); err != nil {
					a.logger.Warn("report publish error", applogger.Error(err))
				}
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.pipe != nil {
		a.pipe.Stop()
	}

	if a.consumer != nil {
		stopCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
		if err := a.consumer.Stop(stopCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
		cancel()
	}

	if a.hub != nil {
		a.hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
