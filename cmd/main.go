package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"recipe-wizard/handler"
	"recipe-wizard/internal/integrations/paramstore"
	"recipe-wizard/internal/integrations/providers"
	"recipe-wizard/internal/repository"
	"recipe-wizard/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	paramPrefix := os.Getenv("PARAM_PREFIX")
	recipeTable := os.Getenv("RECIPE_TABLE")
	maxMessageLen := envInt("MAX_MESSAGE_LENGTH", 2000)
	maxHistoryTurns := envInt("MAX_HISTORY_TURNS", 20)
	httpTimeout := time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 60)) * time.Second
	var providerOpts []providers.Option
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		providerOpts = append(providerOpts, providers.WithOpenAIBaseURL(u))
	}
	if u := os.Getenv("GEMINI_BASE_URL"); u != "" {
		providerOpts = append(providerOpts, providers.WithGeminiBaseURL(u))
	}

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	var params usecase.ParamGetter
	if paramPrefix != "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		params = ssmClient
	}

	var archive usecase.RecipeArchiver
	if recipeTable != "" {
		recipeClient, err := repository.New(awsdynamodb.NewFromConfig(cfg), recipeTable)
		if err != nil {
			slog.Error("failed to create recipe archive client", "err", err)
			os.Exit(1)
		}
		archive = recipeClient
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(providers.New(httpTimeout, providerOpts...), params, archive, usecase.Config{
		ParamPrefix:     paramPrefix,
		MaxMessageLen:   maxMessageLen,
		MaxHistoryTurns: maxHistoryTurns,
	})
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	slog.Info("recipe wizard starting",
		"settings_source", settingsSource(paramPrefix),
		"archive_enabled", archive != nil,
	)
	lambda.Start(h.Handle)
}

func settingsSource(prefix string) string {
	if prefix == "" {
		return "builtin"
	}
	return "ssm"
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid integer environment variable", "key", key, "value", v)
		return def
	}
	return n
}
