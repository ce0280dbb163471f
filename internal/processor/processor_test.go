package processor

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"voicebrief/internal/config"
	"voicebrief/internal/logger"
	"voicebrief/internal/messaging"
	"voicebrief/internal/metrics"
	"voicebrief/internal/store"
)

type stubDownloader struct {
	calls int
	err   error
}

func (d *stubDownloader) Download(_ context.Context, _ string, destPath string) error {
	d.calls++
	if d.err != nil {
		return d.err
	}
	return os.WriteFile(destPath, []byte("media bytes"), 0644)
}

type stubTranscoder struct {
	calls   int
	ok      bool
	lastIn  string
	lastOut string
}

func (t *stubTranscoder) Convert(_ context.Context, inputPath, outputPath string) bool {
	t.calls++
	t.lastIn = inputPath
	t.lastOut = outputPath
	if t.ok {
		_ = os.WriteFile(outputPath, []byte("mp3 bytes"), 0644)
	}
	return t.ok
}

type stubTranscriber struct {
	calls    int
	text     string
	ok       bool
	lastPath string
}

func (t *stubTranscriber) Transcribe(_ context.Context, audioPath string) (string, bool) {
	t.calls++
	t.lastPath = audioPath
	return t.text, t.ok
}

type stubSummarizer struct {
	calls    int
	text     string
	ok       bool
	panicMsg string
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, bool) {
	s.calls++
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.text, s.ok
}

type stubReplier struct {
	replies  []string
	markdown []string
}

func (r *stubReplier) Reply(_ context.Context, _ messaging.Incoming, text string) error {
	r.replies = append(r.replies, text)
	return nil
}

func (r *stubReplier) ReplyMarkdown(_ context.Context, _ messaging.Incoming, text string) error {
	r.markdown = append(r.markdown, text)
	return nil
}

type fixture struct {
	proc        Processor
	tempDir     string
	downloader  *stubDownloader
	transcoder  *stubTranscoder
	transcriber *stubTranscriber
	summarizer  *stubSummarizer
	replier     *stubReplier
	store       *store.TranscriptStore
}

func newFixture(t *testing.T, targetThread int64) *fixture {
	t.Helper()

	f := &fixture{
		tempDir:     t.TempDir(),
		downloader:  &stubDownloader{},
		transcoder:  &stubTranscoder{ok: true},
		transcriber: &stubTranscriber{text: "Hello world.", ok: true},
		summarizer:  &stubSummarizer{text: "Summary.", ok: true},
		replier:     &stubReplier{},
		store:       store.New(),
	}

	cfg := &config.Config{}
	cfg.Paths.Temp = f.tempDir
	cfg.Bot.TargetThreadID = targetThread

	f.proc = New(cfg, Deps{
		Transcoder:  f.transcoder,
		Transcriber: f.transcriber,
		Summarizer:  f.summarizer,
		Store:       f.store,
		Downloader:  f.downloader,
		Replier:     f.replier,
		Metrics:     metrics.New(prometheus.NewRegistry()),
	}, logger.New("error", "text"))

	return f
}

func (f *fixture) tempFileCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	return len(entries)
}

func lastContains(t *testing.T, msgs []string, want string) {
	t.Helper()
	require.NotEmpty(t, msgs)
	require.Contains(t, msgs[len(msgs)-1], want)
}

func TestHandleMediaEndToEnd(t *testing.T) {
	f := newFixture(t, 0)
	msg := messaging.Incoming{ChatID: 100, FileID: "file-1", FileName: "meeting.mp4"}

	f.proc.HandleMedia(context.Background(), msg)

	require.Equal(t, 1, f.transcoder.calls)
	require.True(t, strings.HasSuffix(f.transcoder.lastIn, "_meeting.mp4"))
	require.True(t, strings.HasSuffix(f.transcoder.lastOut, ".mp3"))

	require.Equal(t, 1, f.transcriber.calls)
	require.Equal(t, f.transcoder.lastOut, f.transcriber.lastPath, "the converted MP3 goes to transcription")

	cached, ok := f.store.Get(store.NewKey(100, 0))
	require.True(t, ok)
	require.Equal(t, "Hello world.", cached)

	require.Len(t, f.replier.markdown, 1)
	require.Contains(t, f.replier.markdown[0], "Summary.")

	require.Equal(t, 0, f.tempFileCount(t), "downloaded original and converted MP3 are both removed")
}

func TestHandleMediaMP3SkipsConversion(t *testing.T) {
	f := newFixture(t, 0)
	msg := messaging.Incoming{ChatID: 100, FileID: "file-1", FileName: "talk.mp3"}

	f.proc.HandleMedia(context.Background(), msg)

	require.Equal(t, 0, f.transcoder.calls)
	require.Equal(t, 1, f.transcriber.calls)
	require.True(t, strings.HasSuffix(f.transcriber.lastPath, "_talk.mp3"))
	require.Equal(t, 0, f.tempFileCount(t))
}

func TestHandleMediaConversionFailure(t *testing.T) {
	f := newFixture(t, 0)
	f.transcoder.ok = false
	msg := messaging.Incoming{ChatID: 100, FileID: "file-1", FileName: "meeting.webm"}

	f.proc.HandleMedia(context.Background(), msg)

	require.Equal(t, 0, f.transcriber.calls, "failed conversion never reaches transcription")
	require.Empty(t, f.replier.markdown)
	lastContains(t, f.replier.replies, msgConvertFailed)
	require.Equal(t, 0, f.tempFileCount(t))
}

func TestHandleMediaTranscriptionFailure(t *testing.T) {
	f := newFixture(t, 0)
	f.transcriber.ok = false
	f.transcriber.text = ""
	msg := messaging.Incoming{ChatID: 100, FileID: "file-1", FileName: "meeting.mp4"}

	f.proc.HandleMedia(context.Background(), msg)

	require.Equal(t, 0, f.summarizer.calls)
	_, ok := f.store.Get(store.NewKey(100, 0))
	require.False(t, ok, "no record is cached for a failed transcription")
	lastContains(t, f.replier.replies, msgTranscribeFailed)
	require.Equal(t, 0, f.tempFileCount(t))
}

func TestHandleMediaSummarizationFailureKeepsTranscript(t *testing.T) {
	f := newFixture(t, 0)
	f.summarizer.ok = false
	f.summarizer.text = ""
	msg := messaging.Incoming{ChatID: 100, ThreadID: 3, FileID: "file-1", FileName: "meeting.mp4"}

	f.proc.HandleMedia(context.Background(), msg)

	cached, ok := f.store.Get(store.NewKey(100, 3))
	require.True(t, ok, "the transcript stays cached for manual regeneration")
	require.Equal(t, "Hello world.", cached)
	lastContains(t, f.replier.replies, msgSummarizeFailed)
	require.Equal(t, 0, f.tempFileCount(t))
}

func TestHandleMediaDownloadFailure(t *testing.T) {
	f := newFixture(t, 0)
	f.downloader.err = errors.New("network down")
	msg := messaging.Incoming{ChatID: 100, FileID: "file-1", FileName: "meeting.mp4"}

	f.proc.HandleMedia(context.Background(), msg)

	require.Equal(t, 0, f.transcoder.calls)
	require.Equal(t, 0, f.transcriber.calls)
	lastContains(t, f.replier.replies, msgProcessingFailed)
}

func TestHandleMediaPanicIsRecovered(t *testing.T) {
	f := newFixture(t, 0)
	f.summarizer.panicMsg = "summarizer blew up"
	msg := messaging.Incoming{ChatID: 100, FileID: "file-1", FileName: "meeting.mp4"}

	require.NotPanics(t, func() {
		f.proc.HandleMedia(context.Background(), msg)
	})

	lastContains(t, f.replier.replies, msgProcessingFailed)
	require.Equal(t, 0, f.tempFileCount(t), "cleanup still runs when a stage panics")
}

func TestHandleRegenerateFromCache(t *testing.T) {
	f := newFixture(t, 0)
	f.summarizer.text = "New summary."
	f.store.Put(store.NewKey(100, 0), "Hello world.")
	msg := messaging.Incoming{ChatID: 100}

	f.proc.HandleRegenerate(context.Background(), msg)

	require.Equal(t, 0, f.downloader.calls)
	require.Equal(t, 0, f.transcoder.calls)
	require.Equal(t, 0, f.transcriber.calls)
	require.Equal(t, 1, f.summarizer.calls)
	require.Len(t, f.replier.markdown, 1)
	require.Contains(t, f.replier.markdown[0], "New summary.")
}

func TestHandleRegenerateUnknownKey(t *testing.T) {
	f := newFixture(t, 0)
	msg := messaging.Incoming{ChatID: 555}

	f.proc.HandleRegenerate(context.Background(), msg)

	require.Equal(t, 0, f.summarizer.calls)
	require.Empty(t, f.replier.markdown)
	lastContains(t, f.replier.replies, msgNoTranscript)
}

func TestThreadFilterSkipsOtherThreads(t *testing.T) {
	f := newFixture(t, 42)
	msg := messaging.Incoming{ChatID: 100, ThreadID: 7, FileID: "file-1", FileName: "meeting.mp4"}

	f.proc.HandleMedia(context.Background(), msg)
	f.proc.HandleRegenerate(context.Background(), msg)

	require.Equal(t, 0, f.downloader.calls)
	require.Equal(t, 0, f.transcoder.calls)
	require.Equal(t, 0, f.transcriber.calls)
	require.Equal(t, 0, f.summarizer.calls)
	require.Empty(t, f.replier.replies)
}

func TestThreadFilterAllowsMatchingThread(t *testing.T) {
	f := newFixture(t, 42)
	msg := messaging.Incoming{ChatID: 100, ThreadID: 42, FileID: "file-1", FileName: "meeting.mp4"}

	f.proc.HandleMedia(context.Background(), msg)

	require.Equal(t, 1, f.transcriber.calls)
	require.Len(t, f.replier.markdown, 1)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"meeting.mp4", "meeting.mp4"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"a\\b.mp3", "a_b.mp3"},
		{"", "media"},
	}

	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
