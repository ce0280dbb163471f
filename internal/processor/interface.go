package processor

import (
	"context"

	"voicebrief/internal/messaging"
)

// Processor handles incoming media messages and summary regeneration.
type Processor interface {
	// HandleMedia runs the full pipeline for one received media file:
	// download, conversion when needed, transcription, caching of the
	// transcript, summarization and delivery. Every outcome, including a
	// panic, produces exactly one user-facing notice or the summary, and the
	// temp artifacts are always removed.
	HandleMedia(ctx context.Context, msg messaging.Incoming)

	// HandleRegenerate re-runs summarization from the cached transcript of
	// the message's conversation, skipping download, conversion and
	// transcription entirely.
	HandleRegenerate(ctx context.Context, msg messaging.Incoming)
}

// Transcriber converts an audio file to text. The boolean is the terminal
// success/failure signal; retries happen inside the implementation.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, bool)
}
