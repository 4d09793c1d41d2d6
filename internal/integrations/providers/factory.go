// Package providers builds per-turn model clients from resolved model
// configurations.
package providers

import (
	"fmt"
	"net/http"
	"time"

	"recipe-wizard/internal/domain"
	"recipe-wizard/internal/integrations/gemini"
	"recipe-wizard/internal/integrations/openai"
	"recipe-wizard/internal/usecase"
)

// Factory constructs clients without performing network I/O.
type Factory struct {
	httpClient    *http.Client
	openaiBaseURL string
	geminiBaseURL string
}

type Option func(*Factory)

func WithOpenAIBaseURL(u string) Option {
	return func(f *Factory) { f.openaiBaseURL = u }
}

func WithGeminiBaseURL(u string) Option {
	return func(f *Factory) { f.geminiBaseURL = u }
}

// New returns a Factory whose clients share one HTTP client with the given
// timeout.
func New(timeout time.Duration, opts ...Option) *Factory {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	f := &Factory{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) ChatClient(cfg domain.ModelConfig) (usecase.ChatClient, error) {
	switch cfg.Provider {
	case domain.ProviderOpenAI:
		c, err := f.openaiClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case domain.ProviderGemini:
		opts := []gemini.Option{gemini.WithHTTPClient(f.httpClient)}
		if f.geminiBaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(f.geminiBaseURL))
		}
		c, err := gemini.NewClient(cfg.APIKey, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("providers: no chat client for provider %s", cfg.Provider)
	}
}

func (f *Factory) ImageClient(cfg domain.ModelConfig) (usecase.ImageClient, error) {
	switch cfg.Provider {
	case domain.ProviderOpenAI:
		c, err := f.openaiClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("providers: no image client for provider %s", cfg.Provider)
	}
}

func (f *Factory) openaiClient(cfg domain.ModelConfig) (*openai.Client, error) {
	opts := []openai.Option{openai.WithHTTPClient(f.httpClient)}
	if f.openaiBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(f.openaiBaseURL))
	}
	return openai.NewClient(cfg.APIKey, opts...)
}
