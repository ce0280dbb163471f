package transcoder

import (
	"path/filepath"
	"strings"
)

// The transcription API accepts MP3 directly; everything else goes through
// ffmpeg first.
const passThroughExt = "mp3"

// FileExtension returns the lowercased extension of name without the dot.
func FileExtension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// NeedsConversion reports whether a file with the given extension (no dot)
// must be transcoded before transcription.
func NeedsConversion(ext string) bool {
	return strings.ToLower(ext) != passThroughExt
}
