package usecase

import (
	"strings"

	"recipe-wizard/internal/domain"
)

// NoImageModel is the image model choice that disables image generation.
const NoImageModel = "No Image"

// imageModel is the only image model requested, whichever dall-e identifier
// was selected.
const imageModel = "dall-e-3"

type prefixRule struct {
	prefix   string
	provider domain.Provider
}

var chatModelRules = []prefixRule{
	{prefix: "gpt-", provider: domain.ProviderOpenAI},
	{prefix: "gemini-", provider: domain.ProviderGemini},
}

var imageModelRules = []prefixRule{
	{prefix: "dall-e-", provider: domain.ProviderOpenAI},
}

func matchProvider(rules []prefixRule, model string) domain.Provider {
	for _, r := range rules {
		if strings.HasPrefix(model, r.prefix) {
			return r.provider
		}
	}
	return domain.ProviderUnknown
}

// ResolveChatModel maps a chat model identifier to its provider.
func ResolveChatModel(model, apiKey string) (domain.ModelConfig, error) {
	model = strings.TrimSpace(model)
	p := matchProvider(chatModelRules, model)
	if p == domain.ProviderUnknown {
		return domain.ModelConfig{}, UnsupportedModelError("chat", model)
	}
	return domain.ModelConfig{Provider: p, Model: model, APIKey: strings.TrimSpace(apiKey)}, nil
}

// ResolveImageModel maps an image model identifier to its provider. The
// second return value is false when image generation is disabled.
func ResolveImageModel(model, apiKey string) (domain.ModelConfig, bool, error) {
	model = strings.TrimSpace(model)
	if model == "" || model == NoImageModel {
		return domain.ModelConfig{}, false, nil
	}
	p := matchProvider(imageModelRules, model)
	if p == domain.ProviderUnknown {
		return domain.ModelConfig{}, false, UnsupportedModelError("image", model)
	}
	return domain.ModelConfig{Provider: p, Model: imageModel, APIKey: strings.TrimSpace(apiKey)}, true, nil
}
