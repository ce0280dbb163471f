package summarizer

import (
	"fmt"
	"net/http"
	"time"

	"voicebrief/internal/logger"
	"voicebrief/internal/metrics"
	"voicebrief/internal/retry"
)

const defaultTimeout = 120 * time.Second

// Config carries the settings shared by all summarizer providers.
type Config struct {
	Provider string
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
	Retry    retry.Policy
}

// New selects a Summarizer implementation from cfg.Provider.
func New(cfg Config, log logger.Logger, m *metrics.Metrics) (Summarizer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	switch cfg.Provider {
	case "", "openai":
		return &implOpenAI{
			cfg:        cfg,
			httpClient: &http.Client{Timeout: cfg.Timeout},
			logger:     log,
			metrics:    m,
		}, nil
	case "gemini":
		return &implGemini{
			cfg:     cfg,
			logger:  log,
			metrics: m,
		}, nil
	default:
		return nil, fmt.Errorf("unknown summary provider: %s", cfg.Provider)
	}
}
