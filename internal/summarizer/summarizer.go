package summarizer

import (
	"context"
	"time"

	"voicebrief/internal/logger"
	"voicebrief/internal/metrics"
	"voicebrief/internal/retry"
)

// retrySummarize wraps a single-attempt completion call in the shared retry
// policy and converts exhaustion into the sentinel return.
func retrySummarize(
	ctx context.Context,
	log logger.Logger,
	m *metrics.Metrics,
	policy retry.Policy,
	call func(context.Context) (string, error),
) (string, bool) {
	var summary string
	err := policy.Do(ctx, func() error {
		s, err := call(ctx)
		if err != nil {
			return err
		}
		summary = s
		return nil
	}, func(err error, next time.Duration) {
		m.APIRetries.WithLabelValues("summarization").Inc()
		log.Warn(ctx, "Summarization attempt failed: %v; retrying in %s", err, next)
	})
	if err != nil {
		log.Error(ctx, "All summarization attempts failed: %v", err)
		return "", false
	}

	log.Info(ctx, "Summary generated: %d characters", len(summary))
	return summary, true
}
