package domain

// Provider identifies the backend that serves a model. It is resolved once
// from the model identifier when a turn's configuration is built.
type Provider int

const (
	ProviderUnknown Provider = iota
	ProviderOpenAI
	ProviderGemini
)

func (p Provider) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// ModelConfig is a resolved (provider, model, key) triple for one turn.
// It is passed by value and never stored.
type ModelConfig struct {
	Provider Provider
	Model    string
	APIKey   string
}
