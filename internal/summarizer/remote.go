package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Pramod3245/Doc-agents/pkg/config"

	"go.uber.org/zap"
)

// Remote delegates summarization to an external HTTP service.
type Remote struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewRemote(cfg *config.RemoteConfig, logger *zap.Logger) *Remote {
	return &Remote{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type remoteRequest struct {
	Text      string `json:"text"`
	MaxLength int    `json:"max_length,omitempty"`
	Style     string `json:"style,omitempty"`
}

type remoteResponse struct {
	Summary string `json:"summary"`
}

func (b *Remote) Summarize(ctx context.Context, text string, cfg Config) (string, error) {
	body, err := json.Marshal(remoteRequest{
		Text:      text,
		MaxLength: cfg.MaxSummaryLength,
		Style:     string(cfg.Style),
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// 5xx means the service itself is in trouble; anything else non-200
	// means it rejected this particular input.
	if resp.StatusCode >= http.StatusInternalServerError {
		return "", fmt.Errorf("%w: summarizer returned status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: summarizer returned status %d", ErrFailed, resp.StatusCode)
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrFailed, err)
	}

	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary in response", ErrFailed)
	}

	return summary, nil
}
