package processor

import (
	"context"
	"strings"

	"voicebrief/internal/logger"
)

// phase names the orchestration states a media job moves through.
type phase string

const (
	phaseReceived     phase = "received"
	phaseConverting   phase = "converting"
	phaseTranscribing phase = "transcribing"
	phaseStoring      phase = "storing"
	phaseSummarizing  phase = "summarizing"
	phaseDelivered    phase = "delivered"
	phaseFailed       phase = "failed"
)

// mediaJob tracks the temp artifacts and state of one orchestration run. It
// exists only for the duration of that run; cleanup removes its files no
// matter which phase it ended in.
type mediaJob struct {
	inputPath     string
	convertedPath string // empty until a conversion produced an MP3
	originalName  string
	ext           string
	phase         phase
}

func (j *mediaJob) advance(ctx context.Context, log logger.Logger, to phase) {
	log.Debug(ctx, "Job %s: %s -> %s", j.originalName, j.phase, to)
	j.phase = to
}

// audioPath returns the file that goes to transcription.
func (j *mediaJob) audioPath() string {
	if j.convertedPath != "" {
		return j.convertedPath
	}
	return j.inputPath
}

// sanitizeName strips path separators from a client-supplied filename before
// it is embedded in a temp path.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "media"
	}
	return name
}
