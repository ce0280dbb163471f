package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"voicebrief/internal/messaging"
	"voicebrief/internal/store"
	"voicebrief/internal/summarizer"
	"voicebrief/internal/transcoder"
)

// User-facing texts. Each failure path emits exactly one of these, named
// after the failing stage so the user knows whether to resend the file or
// retry regeneration.
const (
	msgDownloading      = "Downloading file..."
	msgConverting       = "Converting file to MP3..."
	msgTranscribing     = "Transcribing audio..."
	msgSummarizing      = "Generating summary..."
	msgConvertFailed    = "Could not convert the file to MP3. Please try another format."
	msgTranscribeFailed = "Audio transcription failed. Please try again later."
	msgSummarizeFailed  = "Summary generation failed. Please try again later or regenerate with /summary."
	msgProcessingFailed = "Something went wrong while processing the file."
	msgNoTranscript     = "No transcription available. Send a video or audio file first."

	summaryFormat = "📋 **Meeting summary**\n\n%s\n\n_Generated automatically_"
)

func (i *implProcessor) HandleMedia(ctx context.Context, msg messaging.Incoming) {
	if i.skipThread(msg) {
		i.logger.Debug(ctx, "Ignoring media from thread %d", msg.ThreadID)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error(ctx, "Panic while processing %s: %v", msg.FileName, r)
			i.reply(ctx, msg, msgProcessingFailed)
		}
	}()

	start := time.Now()
	i.logger.Info(ctx, "Processing media %s from chat %d", msg.FileName, msg.ChatID)

	if err := os.MkdirAll(i.tempDir, 0755); err != nil {
		i.logger.Error(ctx, "Failed to create temp dir %s: %v", i.tempDir, err)
		i.reply(ctx, msg, msgProcessingFailed)
		return
	}

	i.reply(ctx, msg, msgDownloading)

	name := sanitizeName(msg.FileName)
	inputPath := filepath.Join(i.tempDir, uuid.NewString()+"_"+name)
	if err := i.deps.Downloader.Download(ctx, msg.FileID, inputPath); err != nil {
		i.logger.Error(ctx, "Download of %s failed: %v", msg.FileID, err)
		i.deps.Metrics.StageFailures.WithLabelValues("download").Inc()
		i.deps.Metrics.JobsProcessed.WithLabelValues("failed").Inc()
		i.reply(ctx, msg, msgProcessingFailed)
		return
	}

	job := &mediaJob{
		inputPath:    inputPath,
		originalName: name,
		ext:          transcoder.FileExtension(name),
		phase:        phaseReceived,
	}
	i.run(ctx, msg, job)

	elapsed := time.Since(start)
	i.deps.Metrics.ProcessingDuration.Observe(elapsed.Seconds())
	i.logger.Info(ctx, "Finished %s in %s (final state: %s)", name, elapsed.Round(time.Millisecond), job.phase)
}

// run drives the job through the pipeline. Temp artifacts are removed when it
// returns, whether the job delivered, failed or panicked.
func (i *implProcessor) run(ctx context.Context, msg messaging.Incoming, job *mediaJob) {
	defer i.cleanup(ctx, job)

	if transcoder.NeedsConversion(job.ext) {
		job.advance(ctx, i.logger, phaseConverting)
		i.reply(ctx, msg, msgConverting)

		mp3Path := strings.TrimSuffix(job.inputPath, filepath.Ext(job.inputPath)) + ".mp3"
		if !i.deps.Transcoder.Convert(ctx, job.inputPath, mp3Path) {
			i.fail(ctx, msg, job, "conversion", msgConvertFailed)
			return
		}
		job.convertedPath = mp3Path
	}

	job.advance(ctx, i.logger, phaseTranscribing)
	i.reply(ctx, msg, msgTranscribing)

	text, ok := i.deps.Transcriber.Transcribe(ctx, job.audioPath())
	if !ok {
		i.fail(ctx, msg, job, "transcription", msgTranscribeFailed)
		return
	}

	// The transcript is cached before summarization so a summarization
	// failure still leaves a regeneration path.
	job.advance(ctx, i.logger, phaseStoring)
	i.deps.Store.Put(store.NewKey(msg.ChatID, msg.ThreadID), text)

	job.advance(ctx, i.logger, phaseSummarizing)
	i.reply(ctx, msg, msgSummarizing)

	summary, ok := i.deps.Summarizer.Summarize(ctx, text)
	if !ok {
		i.fail(ctx, msg, job, "summarization", msgSummarizeFailed)
		return
	}

	i.deliver(ctx, msg, job.originalName, summary)
	job.advance(ctx, i.logger, phaseDelivered)
	i.deps.Metrics.JobsProcessed.WithLabelValues("delivered").Inc()
}

func (i *implProcessor) deliver(ctx context.Context, msg messaging.Incoming, name, summary string) {
	if err := i.deps.Replier.ReplyMarkdown(ctx, msg, fmt.Sprintf(summaryFormat, summary)); err != nil {
		i.logger.Error(ctx, "Failed to deliver summary for %s: %v", name, err)
		return
	}
	i.export(ctx, name, summary)
}

// export archives a delivered summary as docx when an export dir is set.
func (i *implProcessor) export(ctx context.Context, name, summary string) {
	if i.exportDir == "" {
		return
	}
	if err := os.MkdirAll(i.exportDir, 0755); err != nil {
		i.logger.Warn(ctx, "Failed to create export dir %s: %v", i.exportDir, err)
		return
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	path := filepath.Join(i.exportDir, fmt.Sprintf("%s_%s.docx", time.Now().Format("20060102-150405"), base))
	if err := summarizer.ExportDocx(base, summary, path); err != nil {
		i.logger.Warn(ctx, "Failed to export summary to %s: %v", path, err)
		return
	}
	i.logger.Info(ctx, "Summary exported: %s", path)
}

func (i *implProcessor) fail(ctx context.Context, msg messaging.Incoming, job *mediaJob, stage, userMsg string) {
	job.advance(ctx, i.logger, phaseFailed)
	i.deps.Metrics.StageFailures.WithLabelValues(stage).Inc()
	i.deps.Metrics.JobsProcessed.WithLabelValues("failed").Inc()
	i.reply(ctx, msg, userMsg)
}

func (i *implProcessor) reply(ctx context.Context, msg messaging.Incoming, text string) {
	if err := i.deps.Replier.Reply(ctx, msg, text); err != nil {
		i.logger.Warn(ctx, "Failed to send reply to chat %d: %v", msg.ChatID, err)
	}
}

// skipThread applies the optional target-thread filter.
func (i *implProcessor) skipThread(msg messaging.Incoming) bool {
	return i.targetThread != 0 && msg.ThreadID != i.targetThread
}
