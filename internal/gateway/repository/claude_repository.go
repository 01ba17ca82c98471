package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
)

type claudeRepository struct {
	*upstream
	cfg config.Claude
	ai  config.AI
}

// NewClaudeRepository creates the Anthropic messages API provider.
func NewClaudeRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) ChatRepository {
	return &claudeRepository{
		upstream: newUpstream(common.ProviderClaude, cfg.Upstream.LLMTimeout, cfg.Claude.MaxRequestPerMinute, log, rec),
		cfg:      cfg.Claude,
		ai:       cfg.AI,
	}
}

func (r *claudeRepository) Name() string  { return common.ProviderClaude }
func (r *claudeRepository) Model() string { return r.cfg.Model }

func (r *claudeRepository) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if r.cfg.APIKey == "" {
		return nil, missingKey("ANTHROPIC")
	}

	system := req.System
	if req.JSON {
		system = strings.TrimSpace(system + "\nRespond with a single JSON object and nothing else.")
	}
	payload := dto.ClaudeRequest{
		Model:       r.cfg.Model,
		MaxTokens:   firstPositive(req.MaxTokens, r.ai.MaxTokens, 1024),
		System:      system,
		Temperature: req.Temperature,
	}
	for _, m := range req.Messages {
		payload.Messages = append(payload.Messages, dto.ClaudeMessage{Role: m.Role, Content: m.Content})
	}

	header := http.Header{}
	header.Set("x-api-key", r.cfg.APIKey)
	header.Set("anthropic-version", r.cfg.Version)

	var resp dto.ClaudeResponse
	if err := r.postJSON(ctx, r.cfg.BaseURL, header, payload, &resp); err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("%w: no text content in claude response", ErrInvalidResponse)
	}

	model := resp.Model
	if model == "" {
		model = r.cfg.Model
	}
	return &dto.ChatResponse{
		Provider:    common.ProviderClaude,
		Model:       model,
		Reply:       b.String(),
		TotalTokens: resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}
