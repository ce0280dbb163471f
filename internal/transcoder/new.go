package transcoder

import (
	"voicebrief/internal/logger"
	"voicebrief/pkg/executor"
)

// Target bitrate for the MP3 stream handed to the transcription API.
const audioBitrate = "192k"

type implTranscoder struct {
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcoder backed by the ffmpeg binary on PATH.
func New(exec executor.Executor, log logger.Logger) Transcoder {
	return &implTranscoder{
		executor: exec,
		logger:   log,
	}
}
