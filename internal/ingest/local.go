package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voicebrief/internal/logger"
	"voicebrief/internal/messaging"
)

// LocalGateway adapts the inbox/output directories to the messaging
// interfaces, so the pipeline runs unchanged against a local drop folder.
// Download moves the dropped file out of the inbox, Reply logs the status
// texts and ReplyMarkdown persists the summary under the output directory.
type LocalGateway struct {
	outputDir string
	logger    logger.Logger
}

func NewLocalGateway(outputDir string, log logger.Logger) *LocalGateway {
	return &LocalGateway{outputDir: outputDir, logger: log}
}

// Download moves the inbox file (fileID is its path) to destPath. Rename is
// attempted first; a cross-device move falls back to copy and remove.
func (g *LocalGateway) Download(_ context.Context, fileID, destPath string) error {
	if err := os.Rename(fileID, destPath); err == nil {
		return nil
	}
	if err := copyFile(fileID, destPath); err != nil {
		return fmt.Errorf("move %s: %w", fileID, err)
	}
	return os.Remove(fileID)
}

func (g *LocalGateway) Reply(ctx context.Context, msg messaging.Incoming, text string) error {
	g.logger.Info(ctx, "[%s] %s", msg.FileName, text)
	return nil
}

// ReplyMarkdown writes the delivered summary as a Markdown file next to the
// other results of this inbox file.
func (g *LocalGateway) ReplyMarkdown(ctx context.Context, msg messaging.Incoming, text string) error {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(msg.FileName, filepath.Ext(msg.FileName))
	if base == "" {
		base = "summary"
	}
	path := filepath.Join(g.outputDir, fmt.Sprintf("%s_%s.md", time.Now().Format("20060102-150405"), base))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	g.logger.Info(ctx, "Summary written: %s", path)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
