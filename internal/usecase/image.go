package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"recipe-wizard/internal/domain"
)

// ImageResult is the outcome of a best-effort image request. Degraded results
// carry an empty URL and the reason.
type ImageResult struct {
	URL      string
	Degraded bool
	Reason   string
}

func imagePrompt(dishName string) string {
	return "Authentic dish image of " + strings.TrimSpace(dishName)
}

// RequestImage asks the image model for a picture of subject. It never fails:
// every error is logged and reported as a degraded result.
func (s *ChatService) RequestImage(ctx context.Context, cfg domain.ModelConfig, subject string) ImageResult {
	url, err := s.generateImage(ctx, cfg, subject)
	if err != nil {
		imgErr := &ImageGenerationError{Model: cfg.Model, Err: err}
		slog.WarnContext(ctx, "image generation degraded", "model", cfg.Model, "err", imgErr)
		return ImageResult{Degraded: true, Reason: imgErr.Error()}
	}
	return ImageResult{URL: url}
}

func (s *ChatService) generateImage(ctx context.Context, cfg domain.ModelConfig, subject string) (url string, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "image client panicked", "panic", r)
			url, err = "", errors.New("image client panicked")
		}
	}()

	client, err := s.clients.ImageClient(cfg)
	if err != nil {
		return "", err
	}
	url, err = client.GenerateImage(ctx, cfg.Model, imagePrompt(subject))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(url) == "" {
		return "", errors.New("empty image url")
	}
	return url, nil
}
