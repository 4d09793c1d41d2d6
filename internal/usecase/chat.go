package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"recipe-wizard/internal/domain"
)

const (
	defaultMaxMessage      = 2000
	defaultMaxHistoryTurns = 20
	archiveTTL             = 30 * 24 * time.Hour
)

var (
	defaultChatModels  = []string{"gpt-4o-mini", "gemini-1.5-pro"}
	defaultImageModels = []string{NoImageModel, "dall-e-3"}
)

type ChatClient interface {
	Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error)
}

type ImageClient interface {
	GenerateImage(ctx context.Context, model, prompt string) (string, error)
}

// ClientFactory builds clients for resolved model configurations without
// network I/O.
type ClientFactory interface {
	ChatClient(cfg domain.ModelConfig) (ChatClient, error)
	ImageClient(cfg domain.ModelConfig) (ImageClient, error)
}

type ParamGetter interface {
	GetParameters(ctx context.Context, names ...string) (map[string]string, error)
}

type RecipeArchiver interface {
	SaveRecipe(ctx context.Context, rec domain.RecipeRecord) error
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

// Config holds the orchestrator limits. A blank ParamPrefix keeps the
// built-in prompt settings.
type Config struct {
	ParamPrefix     string
	MaxMessageLen   int
	MaxHistoryTurns int
}

// Settings is the prompt configuration shown to and used for every turn.
type Settings struct {
	SystemPrompt string
	ChatModels   []string
	ImageModels  []string
}

type ChatService struct {
	clients         ClientFactory
	params          ParamGetter
	archive         RecipeArchiver
	paramPrefix     string
	maxMessageLen   int
	maxHistoryTurns int

	cacheMu     sync.RWMutex
	cacheLoaded bool
	settings    Settings
}

type ChatInput struct {
	Message     string
	History     []domain.ChatMessage
	ChatModel   string
	ChatAPIKey  string
	ImageModel  string
	ImageAPIKey string
}

type ChatOutput struct {
	Message       string
	Recipe        domain.Recipe
	ImageURL      string
	ImageDegraded bool
}

// NewChatService wires the orchestrator. params and archive are optional:
// without params the built-in settings are used, without archive recipes are
// not stored.
func NewChatService(clients ClientFactory, params ParamGetter, archive RecipeArchiver, cfg Config) (*ChatService, error) {
	if clients == nil {
		return nil, errors.New("usecase: client factory must not be nil")
	}
	prefix := strings.TrimRight(strings.TrimSpace(cfg.ParamPrefix), "/")
	if prefix != "" && params == nil {
		return nil, errors.New("usecase: param getter must not be nil when a parameter prefix is set")
	}
	if cfg.MaxMessageLen <= 0 {
		cfg.MaxMessageLen = defaultMaxMessage
	}
	if cfg.MaxHistoryTurns <= 0 {
		cfg.MaxHistoryTurns = defaultMaxHistoryTurns
	}
	return &ChatService{
		clients:         clients,
		params:          params,
		archive:         archive,
		paramPrefix:     prefix,
		maxMessageLen:   cfg.MaxMessageLen,
		maxHistoryTurns: cfg.MaxHistoryTurns,
	}, nil
}

// Chat runs one turn: prompt, recipe extraction, optional image, rendering.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if len(message) > s.maxMessageLen {
		return ChatOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}

	chatCfg, err := ResolveChatModel(in.ChatModel, in.ChatAPIKey)
	if err != nil {
		return ChatOutput{}, err
	}
	if chatCfg.APIKey == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "missing_chat_api_key", nil)
	}
	imageCfg, wantImage, err := ResolveImageModel(in.ImageModel, in.ImageAPIKey)
	if err != nil {
		return ChatOutput{}, err
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "ssm_load_error", err)
	}

	recipe, err := s.extractRecipe(ctx, chatCfg, settings.SystemPrompt, trimHistory(in.History, s.maxHistoryTurns), message)
	if err != nil {
		return ChatOutput{}, err
	}
	slog.InfoContext(ctx, "recipe generated",
		"provider", chatCfg.Provider.String(),
		"model", chatCfg.Model,
		"dish", recipe.DishName,
		"ingredients", len(recipe.Ingredients),
	)

	var image ImageResult
	if wantImage {
		image = s.RequestImage(ctx, imageCfg, recipe.DishName)
	}

	s.archiveRecipe(ctx, recipe, image.URL, chatCfg.Model)

	return ChatOutput{
		Message:       RenderMessage(FormatRecipe(recipe), image.URL),
		Recipe:        recipe,
		ImageURL:      image.URL,
		ImageDegraded: image.Degraded,
	}, nil
}

func (s *ChatService) extractRecipe(ctx context.Context, cfg domain.ModelConfig, systemPrompt string, history []domain.ChatMessage, message string) (domain.Recipe, error) {
	format, err := domain.RecipeFormatInstructions()
	if err != nil {
		return domain.Recipe{}, newError(ErrorInternal, "recipe_schema_error", err)
	}

	client, err := s.clients.ChatClient(cfg)
	if err != nil {
		return domain.Recipe{}, newError(ErrorInvalidInput, "chat_client_error", err)
	}

	raw, err := client.Chat(ctx, cfg.Model, buildPromptMessages(systemPrompt, format, history, message))
	if err != nil {
		if status, ok := upstreamStatusCode(err); ok && status == 429 {
			return domain.Recipe{}, newError(ErrorRateLimited, "chat_rate_limited", err)
		}
		return domain.Recipe{}, newError(ErrorUpstream, "chat_error", err)
	}
	return ExtractRecipe(raw)
}

func (s *ChatService) archiveRecipe(ctx context.Context, recipe domain.Recipe, imageURL, chatModel string) {
	if s.archive == nil {
		return
	}
	now := timeNow().UTC()
	rec := domain.RecipeRecord{
		ID:        newUUID(),
		Recipe:    recipe,
		ImageURL:  imageURL,
		ChatModel: chatModel,
		CreatedAt: now.Format(time.RFC3339),
		TTL:       now.Add(archiveTTL).Unix(),
	}
	if err := s.archive.SaveRecipe(ctx, rec); err != nil {
		slog.WarnContext(ctx, "recipe archive write failed", "recipe_id", rec.ID, "err", err)
	}
}

// Settings returns the prompt settings, loading them from Parameter Store on
// first use when a prefix is configured. Failed loads are retried next call.
func (s *ChatService) Settings(ctx context.Context) (Settings, error) {
	s.cacheMu.RLock()
	if s.cacheLoaded {
		settings := s.settings
		s.cacheMu.RUnlock()
		return settings, nil
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return s.settings, nil
	}

	settings := Settings{
		SystemPrompt: DefaultSystemPrompt,
		ChatModels:   defaultChatModels,
		ImageModels:  defaultImageModels,
	}
	if s.paramPrefix != "" {
		loaded, err := s.loadSSMParams(ctx)
		if err != nil {
			return Settings{}, err
		}
		settings = loaded
	}

	s.settings = settings
	s.cacheLoaded = true
	return settings, nil
}

func (s *ChatService) loadSSMParams(ctx context.Context) (Settings, error) {
	var (
		promptName = s.paramPrefix + "/system_prompt"
		chatName   = s.paramPrefix + "/chat_models"
		imageName  = s.paramPrefix + "/image_models"
	)
	vals, err := s.params.GetParameters(ctx, promptName, chatName, imageName)
	if err != nil {
		return Settings{}, fmt.Errorf("usecase: load settings: %w", err)
	}
	systemPrompt := strings.TrimSpace(vals[promptName])
	if systemPrompt == "" {
		return Settings{}, errors.New("usecase: system prompt is empty")
	}
	return Settings{
		SystemPrompt: systemPrompt,
		ChatModels:   splitList(vals[chatName]),
		ImageModels:  splitList(vals[imageName]),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}

var newUUID = func() string {
	return uuid.NewString()
}

var timeNow = time.Now
