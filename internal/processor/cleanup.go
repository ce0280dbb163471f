package processor

import (
	"context"
	"os"
)

// cleanup removes every temp artifact of a job. It runs on all exits from a
// run, so the removals must be idempotent.
func (i *implProcessor) cleanup(ctx context.Context, job *mediaJob) {
	i.removeFile(ctx, job.inputPath)
	i.removeFile(ctx, job.convertedPath)
}

// removeFile deletes a temp file; a path that is already gone is not an
// error. Other removal failures are logged and never escalated.
func (i *implProcessor) removeFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			i.logger.Debug(ctx, "Temp file already gone: %s", path)
			return
		}
		i.logger.Warn(ctx, "Failed to clean up temp file %s: %v", path, err)
		return
	}
	i.logger.Debug(ctx, "Cleaned up temp file: %s", path)
}
