package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang-trading-assistant/internal/gateway/dto"
)

// ChatRepository is one LLM chat provider.
type ChatRepository interface {
	Name() string
	Model() string
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
}

// ChatProviders looks chat repositories up by name.
type ChatProviders map[string]ChatRepository

// NewChatProviders indexes repos by their Name.
func NewChatProviders(repos ...ChatRepository) ChatProviders {
	p := make(ChatProviders, len(repos))
	for _, r := range repos {
		p[r.Name()] = r
	}
	return p
}

// Get returns the named provider or ErrUnknownProvider.
func (p ChatProviders) Get(name string) (ChatRepository, error) {
	r, ok := p[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of: %s", ErrUnknownProvider, name, strings.Join(p.Names(), ", "))
	}
	return r, nil
}

// Names returns the registered provider names, sorted.
func (p ChatProviders) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// StripCodeFence removes the markdown fence models like to wrap JSON answers in.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimPrefix(s, "JSON")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.Trim(strings.TrimSpace(s), "`")
}
