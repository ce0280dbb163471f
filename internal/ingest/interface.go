package ingest

import (
	"context"

	"voicebrief/internal/messaging"
)

// Watcher monitors the inbox directory and dispatches new media files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler receives one inbox drop, translated into an incoming message.
type Handler func(ctx context.Context, msg messaging.Incoming)
