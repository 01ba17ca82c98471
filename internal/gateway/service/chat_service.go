package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
)

// ChatService defines the interface for free-form chat and structured AI analysis.
type ChatService interface {
	Chat(ctx context.Context, body dto.ChatBody) (*dto.ChatReply, error)
	Analyze(ctx context.Context, body dto.AnalysisBody) (*dto.AnalysisResponse, error)
}

type chatService struct {
	cfg       *config.Config
	log       *logger.Logger
	providers repository.ChatProviders
	signals   SignalService
	plays     PlaysService
}

// NewChatService creates a new ChatService.
func NewChatService(cfg *config.Config, log *logger.Logger, providers repository.ChatProviders, signals SignalService, plays PlaysService) ChatService {
	return &chatService{
		cfg:       cfg,
		log:       log,
		providers: providers,
		signals:   signals,
		plays:     plays,
	}
}

func (s *chatService) provider(name string) (repository.ChatRepository, error) {
	if strings.TrimSpace(name) == "" {
		name = s.cfg.AI.Provider
	}
	return s.providers.Get(name)
}

// Chat sends the message with its history to the selected provider.
func (s *chatService) Chat(ctx context.Context, body dto.ChatBody) (*dto.ChatReply, error) {
	if strings.TrimSpace(body.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", repository.ErrInvalidInput)
	}
	p, err := s.provider(body.Provider)
	if err != nil {
		return nil, err
	}

	system := body.System
	if system == "" {
		system = repository.ChatSystemPrompt
	}
	messages := append([]dto.ChatMessage{}, body.History...)
	messages = append(messages, dto.ChatMessage{Role: "user", Content: body.Message})

	resp, err := s.call(ctx, p, dto.ChatRequest{System: system, Messages: messages})
	if err != nil {
		return nil, err
	}
	return &dto.ChatReply{Provider: resp.Provider, Model: resp.Model, Reply: resp.Reply}, nil
}

// Analyze builds in-process context for the requested type, asks for JSON and
// parses it. An unparseable answer yields a nil Result and the raw text.
func (s *chatService) Analyze(ctx context.Context, body dto.AnalysisBody) (*dto.AnalysisResponse, error) {
	typ := strings.ToLower(strings.TrimSpace(body.Type))
	if typ == "" {
		typ = common.AnalysisTypeAnalysis
	}
	p, err := s.provider(body.Provider)
	if err != nil {
		return nil, err
	}

	var (
		prompt string
		result interface{}
		symbol string
	)
	switch typ {
	case common.AnalysisTypeAnalysis:
		if strings.TrimSpace(body.Symbol) == "" {
			return nil, fmt.Errorf("%w: symbol is required for analysis", repository.ErrInvalidInput)
		}
		report, err := s.signals.Report(ctx, body.Symbol)
		if err != nil {
			return nil, err
		}
		symbol = report.Symbol
		prompt = repository.AnalysisPrompt(report.Symbol, report.Report)
		result = &dto.AnalysisResult{}
	case common.AnalysisTypeSmartPlays:
		plays, err := s.plays.SmartPlays(ctx)
		if err != nil {
			return nil, err
		}
		raw, _ := json.MarshalIndent(plays.Plays, "", "  ")
		prompt = repository.SmartPlaysPrompt(string(plays.Session.Session), string(raw))
		result = &dto.SmartPlaysResult{}
	case common.AnalysisTypeAlerts:
		alerts, err := s.plays.Alerts(ctx)
		if err != nil {
			return nil, err
		}
		raw, _ := json.MarshalIndent(alerts.Alerts, "", "  ")
		prompt = repository.AlertsPrompt(string(raw))
		result = &dto.AlertsResult{}
	default:
		return nil, fmt.Errorf("%w: unknown analysis type %q", repository.ErrInvalidInput, body.Type)
	}

	resp, err := s.call(ctx, p, dto.ChatRequest{
		System:   repository.AnalysisSystemPrompt,
		Messages: []dto.ChatMessage{{Role: "user", Content: prompt}},
		JSON:     true,
	})
	if err != nil {
		return nil, err
	}

	out := &dto.AnalysisResponse{
		Symbol:   symbol,
		Type:     typ,
		Provider: resp.Provider,
		Model:    resp.Model,
	}
	if err := json.Unmarshal([]byte(repository.StripCodeFence(resp.Reply)), result); err != nil {
		s.log.WarnContext(ctx, "Failed to parse AI analysis", logger.StringField("provider", resp.Provider), logger.StringField("type", typ), logger.ErrorField(err))
		out.Raw = resp.Reply
		return out, nil
	}
	out.Result = result
	return out, nil
}

func (s *chatService) call(ctx context.Context, p repository.ChatRepository, req dto.ChatRequest) (*dto.ChatResponse, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.Upstream.LLMTimeout)
	defer cancel()

	if req.MaxTokens == 0 {
		req.MaxTokens = s.cfg.AI.MaxTokens
	}
	if req.Temperature == 0 {
		req.Temperature = s.cfg.AI.Temperature
	}
	resp, err := p.Chat(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "Chat provider call failed", logger.StringField("provider", p.Name()), logger.ErrorField(err))
		return nil, err
	}
	return resp, nil
}
