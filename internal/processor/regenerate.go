package processor

import (
	"context"

	"voicebrief/internal/messaging"
	"voicebrief/internal/store"
)

func (i *implProcessor) HandleRegenerate(ctx context.Context, msg messaging.Incoming) {
	if i.skipThread(msg) {
		i.logger.Debug(ctx, "Ignoring regenerate request from thread %d", msg.ThreadID)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error(ctx, "Panic while regenerating summary for chat %d: %v", msg.ChatID, r)
			i.reply(ctx, msg, msgProcessingFailed)
		}
	}()

	text, ok := i.deps.Store.Get(store.NewKey(msg.ChatID, msg.ThreadID))
	if !ok {
		i.logger.Info(ctx, "No cached transcript for chat %d", msg.ChatID)
		i.reply(ctx, msg, msgNoTranscript)
		return
	}

	i.reply(ctx, msg, msgSummarizing)

	summary, ok := i.deps.Summarizer.Summarize(ctx, text)
	if !ok {
		i.deps.Metrics.StageFailures.WithLabelValues("summarization").Inc()
		i.reply(ctx, msg, msgSummarizeFailed)
		return
	}

	i.deliver(ctx, msg, "regenerated-summary", summary)
}
