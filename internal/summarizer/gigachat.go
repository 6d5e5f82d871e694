package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pramod3245/Doc-agents/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const gigaChatSystemInstruction = `You are a professional document analyst. You produce faithful, well-structured summaries of documents.

Rules:
- Summarize only what the document states. Never invent facts, numbers or names.
- Preserve key figures, dates and conclusions.
- Write plain text without markdown markup, headings or bullet points.
- If the text is fragmentary, summarize the fragments you can read.
- Respond in the language of the source document.`

// GigaChat is the model-backed summarization backend.
type GigaChat struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewGigaChat(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChat, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = gigaChatSystemInstruction
	model.Temperature = 0.3

	return &GigaChat{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (b *GigaChat) Summarize(ctx context.Context, text string, cfg Config) (string, error) {
	var prompt strings.Builder
	switch cfg.Style {
	case StyleExtractive:
		prompt.WriteString("Pick the sentences that carry the key facts of the document below and return them verbatim, in their original order.")
	default:
		prompt.WriteString("Write a concise summary of the document below in your own words.")
	}
	if cfg.MaxSummaryLength > 0 {
		fmt.Fprintf(&prompt, " Keep the summary under %d characters.", cfg.MaxSummaryLength)
	}
	prompt.WriteString("\n\nDocument:\n")
	prompt.WriteString(text)

	return b.generate(ctx, prompt.String())
}

// Generate sends a raw prompt to the model. Translation and other
// non-summary generation go through here.
func (b *GigaChat) Generate(ctx context.Context, prompt string) (string, error) {
	return b.generate(ctx, prompt)
}

func (b *GigaChat) generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := b.model.Generate(ctx, messages)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response from model", ErrFailed)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" || isRefusal(content) {
		b.logger.Warn("Model returned no usable text", zap.String("content", content))
		return "", fmt.Errorf("%w: model returned no usable text", ErrFailed)
	}

	return content, nil
}

// isRefusal detects answers where the model declined instead of
// producing text.
func isRefusal(content string) bool {
	lower := strings.ToLower(content)
	phrases := []string{
		"cannot help",
		"can't help",
		"cannot process",
		"please provide",
	}
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func (b *GigaChat) Close() error {
	if b.client != nil {
		b.client.Close()
	}
	return nil
}
