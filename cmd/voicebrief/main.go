package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"voicebrief/internal/config"
	"voicebrief/internal/ingest"
	"voicebrief/internal/logger"
	"voicebrief/internal/metrics"
	"voicebrief/internal/processor"
	"voicebrief/internal/retry"
	"voicebrief/internal/store"
	"voicebrief/internal/summarizer"
	"voicebrief/internal/transcoder"
	"voicebrief/internal/transcription"
	"voicebrief/pkg/executor"
)

func main() {
	ctx := context.Background()

	// A .env file is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Meeting summarization pipeline starting")
	log.Info(ctx, "Transcription: %s (%s)", cfg.Transcription.Endpoint, cfg.Transcription.Model)
	log.Info(ctx, "Summary: %s provider, model %s", cfg.Summary.Provider, cfg.Summary.Model)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Error(ctx, "Metrics server stopped: %v", err)
			}
		}()
		log.Info(ctx, "Metrics exposed on %s", cfg.Metrics.Addr)
	}

	summ, err := summarizer.New(summarizer.Config{
		Provider: cfg.Summary.Provider,
		APIKey:   cfg.Summary.APIKey,
		Endpoint: cfg.Summary.Endpoint,
		Model:    cfg.Summary.Model,
		Timeout:  time.Duration(cfg.Summary.TimeoutSec) * time.Second,
		Retry:    retry.Policy{MaxAttempts: cfg.Summary.MaxAttempts},
	}, log, m)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}

	gateway := ingest.NewLocalGateway(cfg.Paths.Output, log)
	proc := processor.New(cfg, processor.Deps{
		Transcoder: transcoder.New(executor.New(), log),
		Transcriber: transcription.NewClient(transcription.Config{
			Endpoint: cfg.Transcription.Endpoint,
			APIKey:   cfg.Transcription.APIKey,
			Model:    cfg.Transcription.Model,
			Timeout:  time.Duration(cfg.Transcription.TimeoutSec) * time.Second,
			Retry:    retry.Policy{MaxAttempts: cfg.Transcription.MaxAttempts},
		}, log, m),
		Summarizer: summ,
		Store:      store.New(),
		Downloader: gateway,
		Replier:    gateway,
		Metrics:    m,
	}, log)

	w, err := ingest.New(cfg.Paths.Inbox, proc.HandleMedia, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create inbox watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Pipeline ready. Inbox: %s, output: %s", cfg.Paths.Inbox, cfg.Paths.Output)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	log.Info(ctx, "Pipeline stopped")
}

// ensureDirectories creates the working directories if they don't exist.
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Temp,
		cfg.Paths.Inbox,
		cfg.Paths.Output,
	}
	if cfg.Summary.ExportDir != "" {
		dirs = append(dirs, cfg.Summary.ExportDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
