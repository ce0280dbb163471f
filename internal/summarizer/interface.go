package summarizer

import "context"

// Summarizer turns a raw meeting transcript into a structured summary. The
// boolean is false once the retry budget is exhausted; expected remote
// failures are logged inside the implementation and never returned.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, bool)
}
