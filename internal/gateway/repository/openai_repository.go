package repository

import (
	"context"
	"fmt"
	"net/http"

	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/ratelimit"
)

// openAICompatibleRepository talks to any chat completions API shaped like OpenAI's.
type openAICompatibleRepository struct {
	*upstream
	name         string
	cfg          config.OpenAICompatible
	ai           config.AI
	tokenLimiter *ratelimit.TokenLimiter
}

// NewOpenAIRepository creates the OpenAI chat provider.
func NewOpenAIRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) ChatRepository {
	return newOpenAICompatible(common.ProviderOpenAI, cfg.OpenAI, cfg, log, rec)
}

// NewGroqRepository creates the Groq chat provider.
func NewGroqRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) ChatRepository {
	return newOpenAICompatible(common.ProviderGroq, cfg.Groq, cfg, log, rec)
}

func newOpenAICompatible(name string, p config.OpenAICompatible, cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) *openAICompatibleRepository {
	return &openAICompatibleRepository{
		upstream:     newUpstream(name, cfg.Upstream.LLMTimeout, p.MaxRequestPerMinute, log, rec),
		name:         name,
		cfg:          p,
		ai:           cfg.AI,
		tokenLimiter: ratelimit.NewTokenLimiter(p.MaxTokenPerMinute),
	}
}

func (r *openAICompatibleRepository) Name() string  { return r.name }
func (r *openAICompatibleRepository) Model() string { return r.cfg.Model }

func (r *openAICompatibleRepository) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if r.cfg.APIKey == "" {
		return nil, missingKey(r.name)
	}

	payload := dto.OpenAIRequest{
		Model:       r.cfg.Model,
		MaxTokens:   firstPositive(req.MaxTokens, r.ai.MaxTokens),
		Temperature: req.Temperature,
	}
	if req.System != "" {
		payload.Messages = append(payload.Messages, dto.OpenAIMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		payload.Messages = append(payload.Messages, dto.OpenAIMessage{Role: m.Role, Content: m.Content})
	}
	if req.JSON {
		payload.ResponseFormat = &dto.ResponseFormat{Type: "json_object"}
	}

	if err := r.tokenLimiter.Wait(ctx, 0); err != nil {
		return nil, fmt.Errorf("%w: %s token budget: %v", ErrRateLimited, r.name, err)
	}

	header := http.Header{}
	header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfg.APIKey))

	var resp dto.OpenAIResponse
	if err := r.postJSON(ctx, r.cfg.BaseURL, header, payload, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in %s response", ErrInvalidResponse, r.name)
	}

	if r.cfg.MaxTokenPerMinute > 0 && resp.Usage.TotalTokens > r.cfg.MaxTokenPerMinute/2 {
		r.logger.WarnContext(ctx, "Token has exceeded 50% of the limit", logger.StringField("provider", r.name), logger.IntField("remaining", r.tokenLimiter.GetRemaining()))
	}
	r.tokenLimiter.Record(resp.Usage.TotalTokens)

	model := resp.Model
	if model == "" {
		model = r.cfg.Model
	}
	return &dto.ChatResponse{
		Provider:    r.name,
		Model:       model,
		Reply:       resp.Choices[0].Message.Content,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
