// Package assistant relays chat messages to a generative text backend with
// a fixed business system prompt. It keeps no conversation state.
package assistant

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/citraoverseas/placement/internal/config"
)

// Generator produces a single reply for a single message.
type Generator interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Engine wraps the Ollama API client.
type Engine struct {
	client  *api.Client
	model   string
	system  string
	timeout time.Duration
}

var _ Generator = (*Engine)(nil)

func NewEngine(cfg config.AssistantConfig) (*Engine, error) {
	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid assistant base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	system := cfg.SystemPrompt
	if system == "" {
		system = config.DefaultSystemPrompt
	}
	return &Engine{
		client:  api.NewClient(u, &http.Client{Timeout: timeout}),
		model:   cfg.Model,
		system:  system,
		timeout: timeout,
	}, nil
}

// Reply sends the message to the model and returns the full response text.
func (e *Engine) Reply(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  e.model,
		Prompt: message,
		System: e.system,
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0.7,
			"num_predict": 512,
		},
	}

	var out strings.Builder
	err := e.client.Generate(ctx, req, func(res api.GenerateResponse) error {
		out.WriteString(res.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	reply := strings.TrimSpace(out.String())
	if reply == "" {
		return "", fmt.Errorf("empty reply from model")
	}
	return reply, nil
}
