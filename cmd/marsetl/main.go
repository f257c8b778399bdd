package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mars-weather-etl/internal/adapter/csvfile"
	httpadapter "mars-weather-etl/internal/adapter/http"
	kafkaadapter "mars-weather-etl/internal/adapter/kafka"
	"mars-weather-etl/internal/config"
	"mars-weather-etl/internal/domain"
	"mars-weather-etl/internal/export"
	"mars-weather-etl/internal/observability"
	"mars-weather-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Optional Kafka sink for cleaned observations (feature-flagged).
	var publisher pipeline.Publisher
	var kafkaPub *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka sink disabled")
	}

	reader := csvfile.NewReader(cfg.CSVPath, logger)
	transformer := pipeline.NewTransformer()
	p := pipeline.New(reader, transformer, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	if cfg.ExportEnabled {
		writer := export.NewWriter(cfg.ExportDir, logger, metrics)
		ds := domain.Dataset{Observations: result.Observations, HasOpacity: result.HasOpacity}
		if err := writer.WriteAll(ds); err != nil {
			logger.Error("chart dataset export failed", "error", err)
			os.Exit(1)
		}
	}

	// Serve the derived views until interrupted.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
