package di

import (
	"context"
	"fmt"
	"time"

	"TrendCast/internal/domain/repository"
	"TrendCast/internal/handler/api"
	mid "TrendCast/internal/middleware"
	"TrendCast/internal/source"
	"TrendCast/internal/sparkline"
	"TrendCast/internal/usecase"
	"TrendCast/pkg/cache"
	pkgch "TrendCast/pkg/clickhouse"
	"TrendCast/pkg/config"
	xhttp "TrendCast/pkg/http"
	pkgkafka "TrendCast/pkg/kafka"
	applogger "TrendCast/pkg/logger"
	"TrendCast/pkg/metrics"
	"TrendCast/pkg/server"

	kafkago "github.com/segmentio/kafka-go"
)

// ProvideLogger creates the application logger with the in-memory
// collector attached for the dashboard log view.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: "stdout",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AttachCollector(200)
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRenderer creates the sparkline renderer from config.
func ProvideRenderer(cfg *config.Config) *sparkline.Renderer {
	opts := []sparkline.Option{}
	if cfg.Sparkline.Alphabet != "" {
		opts = append(opts, sparkline.WithAlphabet(cfg.Sparkline.Alphabet))
	}
	if cfg.Sparkline.Separator != "" {
		opts = append(opts, sparkline.WithSeparator([]rune(cfg.Sparkline.Separator)[0]))
	}
	return sparkline.New(opts...)
}

// ProvideClickHouseClient creates a ClickHouse client when the
// clickhouse source is configured; otherwise returns nil.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Source.Type != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ClickHouse.DialTimeout)
	defer cancel()
	if err := client.Health(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	if err := client.InitSchema(ctx, observationsSchema(cfg.ClickHouse.Table)); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func observationsSchema(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		date Date,
		value Float64
	) ENGINE = MergeTree() ORDER BY date`, table)}
}

// ProvideSeriesSource creates the configured series source.
func ProvideSeriesSource(cfg *config.Config, chClient *pkgch.Client) (repository.SeriesSource, error) {
	switch cfg.Source.Type {
	case "synthetic":
		var start time.Time
		if cfg.Source.Synthetic.Start != "" {
			var err error
			start, err = time.Parse("2006-01-02", cfg.Source.Synthetic.Start)
			if err != nil {
				return nil, fmt.Errorf("synthetic start date: %w", err)
			}
		}
		return source.NewSynthetic(start, cfg.Source.Synthetic.Length), nil
	case "csv":
		return source.NewCSV(cfg.Source.CSVPath), nil
	case "clickhouse":
		if chClient == nil {
			return nil, fmt.Errorf("clickhouse source requires a client")
		}
		return source.NewClickHouse(chClient.DB(), cfg.ClickHouse.Table), nil
	case "http":
		client := xhttp.NewClient(xhttp.WithTimeout(10 * time.Second))
		return source.NewHTTP(client, cfg.Source.HTTPURL), nil
	default:
		return nil, fmt.Errorf("unknown source type '%s'", cfg.Source.Type)
	}
}

// ProvideCache creates the report cache: layered memory+redis when redis
// is enabled, in-memory only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideReportBuilder creates the report pipeline.
func ProvideReportBuilder(
	src repository.SeriesSource,
	renderer *sparkline.Renderer,
	cacheSvc cache.Service,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.ReportBuilder {
	return usecase.NewReportBuilder(src, renderer, cacheSvc, m, logger, cfg.Cache.TTL)
}

// ProvideLiveSeries creates the live observation window, seeded from the
// configured source. Nil when live ingestion is disabled.
func ProvideLiveSeries(cfg *config.Config, src repository.SeriesSource, logger *applogger.Logger) *usecase.LiveSeries {
	if !cfg.Live.Enabled {
		return nil
	}
	live := usecase.NewLiveSeries(cfg.Live.MaxPoints)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if seed, err := src.Load(ctx); err != nil {
		logger.Warn("live seed load error", applogger.Error(err))
	} else {
		live.Seed(seed)
	}
	return live
}

// ProvidePipeline creates the ingestion pipeline in front of the live
// series. Nil when live ingestion is disabled.
func ProvidePipeline(live *usecase.LiveSeries, m repository.Metrics, cfg *config.Config) *mid.ObservationPipeline {
	if live == nil {
		return nil
	}
	return mid.NewObservationPipeline(live, m,
		mid.WithMaxRPS(cfg.Live.MaxRPS),
		mid.WithBufferSize(cfg.Live.BufferSize),
	)
}

// ProvideKafkaConsumer creates a Kafka consumer for live ingestion.
// Nil when live ingestion is disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Live.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideObservationsHandler creates the handler for the observations
// topic. Nil when live ingestion is disabled.
func ProvideObservationsHandler(pipe *mid.ObservationPipeline, m repository.Metrics, cfg *config.Config) pkgkafka.MessageHandler {
	if pipe == nil {
		return nil
	}
	return usecase.NewKafkaObservationsHandler(cfg.Kafka.Topic, pipe, m)
}

// ProvideKafkaProducer creates the snapshot publisher. Nil unless a
// publish topic is configured alongside live ingestion.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Live.Enabled || cfg.Kafka.PublishTopic == "" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression("gzip"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideHub creates the websocket fanout hub.
func ProvideHub(logger *applogger.Logger, m repository.Metrics) *api.Hub {
	return api.NewHub(logger, m)
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(
	logger *applogger.Logger,
	builder *usecase.ReportBuilder,
	src repository.SeriesSource,
	live *usecase.LiveSeries,
	hub *api.Hub,
) xhttp.Handler {
	return api.NewForecastEchoHandler(logger, builder, src, live, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
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
	m repository.Metrics,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.HookFuncs{
			After: func(_ context.Context, _ string, _ kafkago.Message, _ []byte, err error) {
				if err != nil {
					m.RecordError("kafka_handle")
				}
			},
			Err: func(_ context.Context, topic string, km kafkago.Message, _ []byte, err error) {
				logger.Error("kafka message failed",
					applogger.String("topic", topic),
					applogger.Int("partition", km.Partition),
					applogger.Error(err),
				)
			},
		})
	}
	return server.New(cfg, logger, httpHandler, hub, builder, live, pipe, consumer, kh, producer, chClient, cacheSvc)
}
