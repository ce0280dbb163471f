package transcoder

import "context"

// Transcoder normalizes received media files to MP3 audio.
type Transcoder interface {
	// Convert transcodes inputPath into an MP3 at outputPath, overwriting any
	// existing file there. It reports success; expected engine failures are
	// logged internally and never surfaced as errors. After a failed attempt
	// the state of outputPath is unspecified, so callers must not treat its
	// existence as success.
	Convert(ctx context.Context, inputPath, outputPath string) bool
}
