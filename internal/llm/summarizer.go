// Package llm generates optional human explanations of a conciliation
// verdict. The explanation is produced after the engine ran and never
// affects the status: a summarizer failure degrades to a missing summary.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/nfetools/conciliador/internal/model"
)

// Config configures the summarizer.
type Config struct {
	Provider          string // "openai" or "ollama"; empty disables
	Model             string
	APIKey            string
	BaseURL           string // for ollama / openai-compatible servers
	RequestsPerSecond float64
	Burst             int
}

// Summarizer turns a verdict into a short explanation for the report.
type Summarizer struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewSummarizer creates a summarizer, or an error when the provider is
// unknown or the API key is missing.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
	case "ollama":
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434/v1"
		}
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama" // the server ignores it, the client requires one
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Summarizer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

const systemPrompt = `Você é um assistente de conciliação fiscal. Explique em
no máximo três frases, em português, o resultado da conciliação abaixo para
uma pessoa do financeiro. Não invente valores nem altere o status.`

// Explain generates a short explanation of the verdict. Calls are rate
// limited so batch runs stay within provider quotas.
func (s *Summarizer) Explain(ctx context.Context, verdict *model.Verdict) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s\n", verdict.Status)
	fmt.Fprintf(&b, "Valor compra: R$ %.2f\n", verdict.ValorCompra)
	fmt.Fprintf(&b, "Valor boleto: R$ %.2f\n", verdict.ValorBoleto)
	fmt.Fprintf(&b, "Diferença: R$ %.2f\n", verdict.Diferenca)
	if d := verdict.Divergencia(); d != "" {
		fmt.Fprintf(&b, "Observações: %s\n", d)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		MaxTokens:   200,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
