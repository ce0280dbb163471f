package summarizer

// Sampling settings shared by all providers.
const (
	samplingTemperature = 0.7
	maxOutputTokens     = 2000
)

// systemPrompt fixes the structure of every generated summary.
const systemPrompt = `You are an assistant that writes a concise, structured summary of a meeting.
Use Markdown and highlight the main points and decisions.
The answer must include:
- Main topics discussed
- Decisions made
- Next steps
- Assigned tasks and their owners, if any

Keep the answer between 500 and 1000 words.`

const userPromptFormat = "Write a summary of the following meeting transcript:\n\n%s"
