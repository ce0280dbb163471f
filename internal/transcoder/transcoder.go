package transcoder

import "context"

func (t *implTranscoder) Convert(ctx context.Context, inputPath, outputPath string) bool {
	t.logger.Info(ctx, "Converting to MP3: %s -> %s", inputPath, outputPath)

	// -vn: drop any video stream
	// -y: overwrite an existing output file
	args := []string{
		"-i", inputPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", audioBitrate,
		"-y",
		outputPath,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		t.logger.Error(ctx, "ffmpeg conversion of %s failed: %v", inputPath, err)
		return false
	}

	t.logger.Info(ctx, "Conversion successful: %s", outputPath)
	return true
}
