package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pramod3245/Doc-agents/pkg/config"

	"go.uber.org/zap"
)

// Kind selects which Backend implementation serves summarization.
type Kind string

const (
	KindExtractive Kind = "extractive"
	KindGigaChat   Kind = "gigachat"
	KindRemote     Kind = "remote"
)

// NewBackend creates the backend named by configuration. Callers never
// choose a backend in code; the deployment does.
func NewBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, error) {
	switch Kind(cfg.Summarizer.Backend) {
	case KindExtractive:
		return NewExtractive(), nil
	case KindGigaChat:
		if cfg.GigaChat.APIKey == "" {
			return nil, errors.New("GIGACHAT_API_KEY not set")
		}
		return NewGigaChat(ctx, &cfg.GigaChat, logger)
	case KindRemote:
		return NewRemote(&cfg.Remote, logger), nil
	default:
		return nil, fmt.Errorf("unsupported summarizer backend: %q", cfg.Summarizer.Backend)
	}
}

// FromConfig builds the default summarization parameters out of service
// configuration. Unknown styles fall back to extractive.
func FromConfig(cfg *config.SummarizerConfig) Config {
	style := Style(cfg.Style)
	if style != StyleExtractive && style != StyleAbstractive {
		style = StyleExtractive
	}
	return Config{
		MaxSummaryLength: cfg.MaxSummaryLength,
		Style:            style,
	}
}
