package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/ratelimit"
)

// geminiRepository calls generateContent over REST and, when a genai client is
// available, counts prompt tokens first so the token budget is respected.
type geminiRepository struct {
	*upstream
	cfg          config.Gemini
	ai           config.AI
	tokenLimiter *ratelimit.TokenLimiter
	genAiClient  *genai.Client
}

// NewGeminiRepository creates the Gemini provider. genAiClient may be nil.
func NewGeminiRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder, genAiClient *genai.Client) ChatRepository {
	return &geminiRepository{
		upstream:     newUpstream(common.ProviderGemini, cfg.Upstream.LLMTimeout, cfg.Gemini.MaxRequestPerMinute, log, rec),
		cfg:          cfg.Gemini,
		ai:           cfg.AI,
		tokenLimiter: ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		genAiClient:  genAiClient,
	}
}

func (r *geminiRepository) Name() string  { return common.ProviderGemini }
func (r *geminiRepository) Model() string { return r.cfg.Model }

func (r *geminiRepository) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if r.cfg.APIKey == "" {
		return nil, missingKey(common.ProviderGemini)
	}

	payload := dto.GeminiAPIRequest{
		GenerationConfig: &dto.GenerationConfig{
			MaxOutputTokens: firstPositive(req.MaxTokens, r.ai.MaxTokens),
			Temperature:     req.Temperature,
		},
	}
	if req.JSON {
		payload.GenerationConfig.ResponseMimeType = "application/json"
	}
	if req.System != "" {
		payload.SystemInstruction = &dto.Content{Parts: []dto.Part{{Text: req.System}}}
	}
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		payload.Contents = append(payload.Contents, dto.Content{Role: role, Parts: []dto.Part{{Text: m.Content}}})
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}

	reserved, err := r.reserveTokens(ctx, contents)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("x-goog-api-key", r.cfg.APIKey)
	apiURL := fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(r.cfg.BaseURL, "/"), r.cfg.Model)

	var resp dto.GeminiAPIResponse
	if err := r.postJSON(ctx, apiURL, header, payload, &resp); err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no content found in gemini response", ErrInvalidResponse)
	}

	r.tokenLimiter.Record(resp.UsageMetadata.TotalTokenCount - reserved)

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	model := resp.ModelVersion
	if model == "" {
		model = r.cfg.Model
	}
	return &dto.ChatResponse{
		Provider:    common.ProviderGemini,
		Model:       model,
		Reply:       b.String(),
		TotalTokens: resp.UsageMetadata.TotalTokenCount,
	}, nil
}

// reserveTokens waits for the counted prompt tokens to fit the budget and
// returns how many were charged. Without an SDK client only earlier debt is
// waited on.
func (r *geminiRepository) reserveTokens(ctx context.Context, contents []*genai.Content) (int, error) {
	total := 0
	if r.genAiClient != nil {
		tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Model, contents, nil)
		if err != nil {
			r.logger.WarnContext(ctx, "failed to count gemini tokens", logger.ErrorField(err))
		} else {
			total = int(tokenResp.TotalTokens)
		}
	}

	r.logger.DebugContext(ctx, "Gemini token count",
		logger.IntField("total_tokens", total),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if r.cfg.MaxTokenPerMinute > 0 && total > r.cfg.MaxTokenPerMinute/2 {
		r.logger.WarnContext(ctx, "Token has exceeded 50% of the limit", logger.IntField("remaining", r.tokenLimiter.GetRemaining()))
	}
	if err := r.tokenLimiter.Wait(ctx, total); err != nil {
		return 0, fmt.Errorf("%w: gemini token budget: %v", ErrRateLimited, err)
	}
	return total, nil
}
