package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"voicebrief/internal/logger"
	"voicebrief/internal/metrics"
)

// implGemini produces summaries through the Gemini API.
type implGemini struct {
	cfg     Config
	logger  logger.Logger
	metrics *metrics.Metrics
}

func (s *implGemini) Summarize(ctx context.Context, transcript string) (string, bool) {
	s.logger.Info(ctx, "Generating summary via Gemini (%d transcript characters)", len(transcript))
	return retrySummarize(ctx, s.logger, s.metrics, s.cfg.Retry, func(ctx context.Context) (string, error) {
		return s.generate(ctx, transcript)
	})
}

// generate performs one Gemini call with the same prompt and sampling
// settings as the chat-completions provider.
func (s *implGemini) generate(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	temperature := float32(samplingTemperature)
	result, err := client.Models.GenerateContent(ctx, s.cfg.Model,
		genai.Text(fmt.Sprintf(userPromptFormat, transcript)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       &temperature,
			MaxOutputTokens:   maxOutputTokens,
		})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty summary received")
	}
	return text, nil
}
