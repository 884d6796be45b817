package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"TrendCast/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Logging     struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Forecast struct {
		Window  int `yaml:"window"`
		Horizon int `yaml:"horizon"`
		History int `yaml:"history"`
	} `yaml:"forecast"`
	Sparkline struct {
		Alphabet  string `yaml:"alphabet"`
		Separator string `yaml:"separator"`
	} `yaml:"sparkline"`
	Source struct {
		Type      string `yaml:"type"` // synthetic, csv, clickhouse, http
		CSVPath   string `yaml:"csv_path"`
		HTTPURL   string `yaml:"http_url"`
		Synthetic struct {
			Length int    `yaml:"length"`
			Start  string `yaml:"start"` // YYYY-MM-DD
		} `yaml:"synthetic"`
	} `yaml:"source"`
	ClickHouse struct {
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		Table       string        `yaml:"table"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"clickhouse"`
	Cache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Live struct {
		Enabled    bool `yaml:"enabled"`
		MaxPoints  int  `yaml:"max_points"`
		MaxRPS     int  `yaml:"max_rps"`
		BufferSize int  `yaml:"buffer_size"`
	} `yaml:"live"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		PublishTopic string   `yaml:"publish_topic"`
		Consumer     struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
}

// Default returns a configuration that works without a config file:
// the synthetic source, CLI-friendly forecast defaults, no external
// infrastructure.
func Default() *Config {
	c := &Config{Environment: "development"}
	c.Logging.Level = "info"
	c.Logging.Format = "console"
	c.Server.Host = "0.0.0.0"
	c.Server.Port = 8080
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 10 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"
	c.Forecast.Window = 3
	c.Forecast.Horizon = 6
	c.Forecast.History = 10
	c.Source.Type = "synthetic"
	c.Source.Synthetic.Length = 36
	c.ClickHouse.Port = 9000
	c.ClickHouse.Table = "observations"
	c.ClickHouse.DialTimeout = 5 * time.Second
	c.ClickHouse.ReadTimeout = 10 * time.Second
	c.Cache.TTL = 30 * time.Second
	c.Live.MaxPoints = 500
	c.Live.MaxRPS = 50
	c.Live.BufferSize = 1000
	return c
}

// Load reads and parses a YAML configuration file. Missing fields fall
// back to defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TRENDCAST_SOURCE"); v != "" {
		c.Source.Type = v
	}
	if v := os.Getenv("TRENDCAST_CSV_PATH"); v != "" {
		c.Source.CSVPath = v
	}
	if v := os.Getenv("TRENDCAST_HTTP_URL"); v != "" {
		c.Source.HTTPURL = v
	}
	c.Forecast.Window = util.ParseIntDefault(os.Getenv("TRENDCAST_WINDOW"), c.Forecast.Window)
	c.Forecast.Horizon = util.ParseIntDefault(os.Getenv("TRENDCAST_HORIZON"), c.Forecast.Horizon)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Source.Type {
	case "synthetic", "csv", "clickhouse", "http":
	default:
		return fmt.Errorf("source.type must be one of synthetic, csv, clickhouse, http; got '%s'", c.Source.Type)
	}
	if c.Source.Type == "csv" && c.Source.CSVPath == "" {
		return fmt.Errorf("source.csv_path is required for the csv source")
	}
	if c.Source.Type == "http" && c.Source.HTTPURL == "" {
		return fmt.Errorf("source.http_url is required for the http source")
	}
	if c.Source.Type == "clickhouse" && (c.ClickHouse.Host == "" || c.ClickHouse.Table == "") {
		return fmt.Errorf("clickhouse.host and clickhouse.table are required for the clickhouse source")
	}
	if c.Forecast.Window < 1 {
		return fmt.Errorf("forecast.window must be at least 1, got %d", c.Forecast.Window)
	}
	if c.Forecast.Horizon < 0 {
		return fmt.Errorf("forecast.horizon must be non-negative, got %d", c.Forecast.Horizon)
	}
	if c.Live.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when live ingestion is enabled")
	}
	if c.Live.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when live ingestion is enabled")
	}
	return nil
}
