package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jacky088/Edgeone-Imgbed/config"
	"github.com/Jacky088/Edgeone-Imgbed/internal/controller/restapi"
	"github.com/Jacky088/Edgeone-Imgbed/internal/infrastructure"
	infrakafka "github.com/Jacky088/Edgeone-Imgbed/internal/infrastructure/kafka"
	"github.com/Jacky088/Edgeone-Imgbed/internal/repo"
	"github.com/Jacky088/Edgeone-Imgbed/internal/repo/persistent"
	"github.com/Jacky088/Edgeone-Imgbed/internal/usecase/image"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/httpserver"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/kafka/producer"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/logger"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// blob store
	var blob repo.BlobRepo

	switch cfg.Storage.Driver {
	case config.DriverS3:
		s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
		defer s3Cancel()

		s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
		}

		blob = persistent.NewS3Repo(s3c, cfg.S3.Bucket)
	default:
		blob = persistent.NewCNBRepo(cfg.CNB.APIBase, cfg.CNB.Slug, cfg.CNB.Token, cfg.CNB.RequestTimeout)
	}

	// record snapshot
	records := persistent.NewSnapshotStore(blob, l)

	// Events (optional)
	var events infrastructure.EventsSender

	if cfg.Kafka.Enabled {
		kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
		}

		events = infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic)
	}

	// Use-Case
	imageUseCase := image.New(blob, records, events, cfg.Site.BaseURL, l)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, imageUseCase, l)

	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err := <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	if err := httpServer.Shutdown(); err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	if events != nil {
		if err := events.Close(); err != nil {
			l.Error(fmt.Errorf("app - Run - events.Close: %w", err))
		}
	}
}
