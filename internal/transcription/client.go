// Package transcription calls the remote speech-to-text API.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voicebrief/internal/logger"
	"voicebrief/internal/metrics"
	"voicebrief/internal/retry"
)

const defaultTimeout = 300 * time.Second

// Config contains transcription client configuration.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
	Retry    retry.Policy
}

// Client uploads audio files to the transcription endpoint with retries.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a transcription client. The request timeout defaults to
// five minutes, matching the long uploads meeting recordings produce.
func NewClient(cfg Config, log logger.Logger, m *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log,
		metrics:    m,
	}
}

// Transcribe uploads the audio file and returns the transcribed text. The
// boolean is false once the retry budget is exhausted; recoverable failures
// (non-200 status, empty text, timeouts, transport errors) are logged here
// and never returned to the caller.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, bool) {
	c.logger.Info(ctx, "Transcribing audio: %s", audioPath)

	var text string
	err := c.cfg.Retry.Do(ctx, func() error {
		t, err := c.doRequest(ctx, audioPath)
		if err != nil {
			return err
		}
		text = t
		return nil
	}, func(err error, next time.Duration) {
		c.metrics.APIRetries.WithLabelValues("transcription").Inc()
		c.logger.Warn(ctx, "Transcription attempt failed: %v; retrying in %s", err, next)
	})
	if err != nil {
		c.logger.Error(ctx, "All transcription attempts for %s failed: %v", audioPath, err)
		return "", false
	}

	c.logger.Info(ctx, "Transcription successful: %d characters", len(text))
	return text, true
}

// doRequest performs a single multipart upload to the transcription API.
func (c *Client) doRequest(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(audioPath)))
	header.Set("Content-Type", "audio/mpeg")
	part, err := w.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy audio into form: %w", err)
	}
	if err := w.WriteField("model", c.cfg.Model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription status %d: %s", resp.StatusCode, truncate(raw, 512))
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	if strings.TrimSpace(payload.Text) == "" {
		return "", errors.New("empty transcription text")
	}
	return payload.Text, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
