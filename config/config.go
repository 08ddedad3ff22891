package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverCNB = "cnb"
	DriverS3  = "s3"
)

type (
	Config struct {
		HTTP    HTTP
		Log     Log
		Storage Storage
		CNB     CNB
		S3      S3
		Site    Site
		Kafka   Kafka
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT" envDefault:"8080"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	Storage struct {
		Driver string `env:"STORAGE_DRIVER" envDefault:"cnb"`
	}

	CNB struct {
		APIBase        string        `env:"CNB_API_BASE" envDefault:"https://api.cnb.cool"`
		Slug           string        `env:"SLUG_IMG"`
		Token          string        `env:"TOKEN_IMG"`
		RequestTimeout time.Duration `env:"CNB_REQUEST_TIMEOUT" envDefault:"10s"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT"`
		AccessKey      string        `env:"S3_ACCESS_KEY"`
		SecretKey      string        `env:"S3_SECRET_KEY"`
		Bucket         string        `env:"S3_BUCKET"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Site struct {
		Password string `env:"SITE_PASSWORD"`
		BaseURL  string `env:"BASE_IMG_URL"`
	}

	Kafka struct {
		Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
		Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
		Topic   string   `env:"KAFKA_TOPIC" envDefault:"imgbed.events"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverCNB:
		if c.CNB.Slug == "" {
			return fmt.Errorf("SLUG_IMG is required for the %s storage driver", DriverCNB)
		}
	case DriverS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return fmt.Errorf("S3_ENDPOINT and S3_BUCKET are required for the %s storage driver", DriverS3)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}

	return nil
}
