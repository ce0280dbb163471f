package processor

import (
	"voicebrief/internal/config"
	"voicebrief/internal/logger"
	"voicebrief/internal/messaging"
	"voicebrief/internal/metrics"
	"voicebrief/internal/store"
	"voicebrief/internal/summarizer"
	"voicebrief/internal/transcoder"
)

// Deps are the collaborators one Processor orchestrates.
type Deps struct {
	Transcoder  transcoder.Transcoder
	Transcriber Transcriber
	Summarizer  summarizer.Summarizer
	Store       *store.TranscriptStore
	Downloader  messaging.Downloader
	Replier     messaging.Replier
	Metrics     *metrics.Metrics
}

type implProcessor struct {
	deps         Deps
	tempDir      string
	exportDir    string
	targetThread int64
	logger       logger.Logger
}

// New creates a Processor instance.
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		deps:         deps,
		tempDir:      cfg.Paths.Temp,
		exportDir:    cfg.Summary.ExportDir,
		targetThread: cfg.Bot.TargetThreadID,
		logger:       log,
	}
}
