package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	_ "embed"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"recipe-wizard/internal/domain"
	"recipe-wizard/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

//go:embed static/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// UseCase is the orchestrator surface the handler needs.
type UseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
	Settings(ctx context.Context) (usecase.Settings, error)
}

type Handler struct {
	uc UseCase
}

type chatRequest struct {
	Message     string               `json:"message"`
	History     []domain.ChatMessage `json:"history"`
	ChatModel   string               `json:"chatModel"`
	ChatAPIKey  string               `json:"chatApiKey"`
	ImageModel  string               `json:"imageModel"`
	ImageAPIKey string               `json:"imageApiKey"`
}

type chatResponse struct {
	Message       string        `json:"message"`
	Recipe        domain.Recipe `json:"recipe"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	ImageDegraded bool          `json:"imageDegraded"`
}

type resetRequest struct {
	Scope string `json:"scope"`
}

type resetResponse struct {
	History          []domain.ChatMessage `json:"history"`
	ClearChatAPIKey  bool                 `json:"clearChatApiKey"`
	ClearImageAPIKey bool                 `json:"clearImageApiKey"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type indexData struct {
	ChatModels  []string
	ImageModels []string
	NoImage     string
}

func NewHandler(uc UseCase) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	return &Handler{uc: uc}, nil
}

// Handle routes an API Gateway proxy request.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(req.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	log := slog.With("correlation_id", correlationID, "method", req.HTTPMethod, "path", req.Path)

	var resp events.APIGatewayProxyResponse
	switch route := routeOf(req.Path); {
	case req.HTTPMethod == http.MethodGet && route == "/":
		resp = h.index(ctx, log)
	case req.HTTPMethod == http.MethodPost && route == "/chat":
		resp = h.chat(ctx, log, req)
	case req.HTTPMethod == http.MethodPost && route == "/reset":
		resp = h.reset(log, req)
	default:
		resp = jsonResponse(http.StatusNotFound, errorResponse{Error: "NOT_FOUND", Message: "no route for " + req.HTTPMethod + " " + req.Path})
	}

	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers[correlationHeader] = correlationID
	return resp, nil
}

func (h *Handler) index(ctx context.Context, log *slog.Logger) events.APIGatewayProxyResponse {
	settings, err := h.uc.Settings(ctx)
	if err != nil {
		log.Error("failed to load settings", "err", err)
		return errorToResponse(err)
	}
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexData{
		ChatModels:  settings.ChatModels,
		ImageModels: settings.ImageModels,
		NoImage:     usecase.NoImageModel,
	}); err != nil {
		log.Error("failed to render index", "err", err)
		return errorToResponse(err)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "text/html; charset=utf-8"},
		Body:       buf.String(),
	}
}

func (h *Handler) chat(ctx context.Context, log *slog.Logger, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var in chatRequest
	if err := decodeBody(req, &in); err != nil {
		return jsonResponse(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Message: err.Error()})
	}

	out, err := h.uc.Chat(ctx, usecase.ChatInput{
		Message:     in.Message,
		History:     in.History,
		ChatModel:   in.ChatModel,
		ChatAPIKey:  in.ChatAPIKey,
		ImageModel:  in.ImageModel,
		ImageAPIKey: in.ImageAPIKey,
	})
	if err != nil {
		logUseCaseError(log, err)
		return errorToResponse(err)
	}
	return jsonResponse(http.StatusOK, chatResponse{
		Message:       out.Message,
		Recipe:        out.Recipe,
		ImageURL:      out.ImageURL,
		ImageDegraded: out.ImageDegraded,
	})
}

func (h *Handler) reset(log *slog.Logger, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var in resetRequest
	if strings.TrimSpace(req.Body) != "" {
		if err := decodeBody(req, &in); err != nil {
			return jsonResponse(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Message: err.Error()})
		}
	}
	state, err := usecase.ResetFor(usecase.ResetScope(in.Scope))
	if err != nil {
		logUseCaseError(log, err)
		return errorToResponse(err)
	}
	return jsonResponse(http.StatusOK, resetResponse{
		History:          state.History,
		ClearChatAPIKey:  state.ClearChatAPIKey,
		ClearImageAPIKey: state.ClearImageAPIKey,
	})
}

func decodeBody(req events.APIGatewayProxyRequest, v any) error {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return fmt.Errorf("invalid base64 body: %w", err)
		}
		body = decoded
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func errorToResponse(err error) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return jsonResponse(http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal), Message: "internal error"})
	}

	status := http.StatusInternalServerError
	message := "internal error"
	switch ucErr.Code {
	case usecase.ErrorInvalidInput, usecase.ErrorUnsupportedModel:
		status = http.StatusBadRequest
		message = ucErr.Error()
	case usecase.ErrorMalformedRecipe, usecase.ErrorUpstream:
		status = http.StatusBadGateway
		message = ucErr.Error()
	case usecase.ErrorRateLimited:
		status = http.StatusTooManyRequests
		message = ucErr.Error()
	}
	return jsonResponse(status, errorResponse{Error: string(ucErr.Code), Message: message})
}

func logUseCaseError(log *slog.Logger, err error) {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		log.Error("request failed", "code", ucErr.Code, "reason", ucErr.Reason, "err", ucErr.Err)
		return
	}
	log.Error("request failed", "err", err)
}

func jsonResponse(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR","message":"internal error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// routeOf drops a trailing slash so "/chat/" and "/chat" match.
func routeOf(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}
