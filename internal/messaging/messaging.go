// Package messaging defines the boundary with the messaging client. The
// transport itself (polling, file download primitives, outgoing formatting)
// lives outside this repository; the pipeline only sees these types.
package messaging

import "context"

// Incoming describes one media message delivered by the messaging client.
type Incoming struct {
	ChatID   int64
	ThreadID int64 // 0 when the chat has no threads
	FileID   string
	FileName string
}

// Downloader fetches the raw bytes of a received file into destPath.
type Downloader interface {
	Download(ctx context.Context, fileID, destPath string) error
}

// Replier delivers outgoing text to the conversation a message came from.
// ReplyMarkdown requests the client's lightweight-markup rendering mode.
type Replier interface {
	Reply(ctx context.Context, msg Incoming, text string) error
	ReplyMarkdown(ctx context.Context, msg Incoming, text string) error
}
