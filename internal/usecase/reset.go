package usecase

import (
	"fmt"

	"recipe-wizard/internal/domain"
)

type ResetScope string

const (
	ResetScopeHistory    ResetScope = "history"
	ResetScopeAll        ResetScope = "all"
	ResetScopeChatModel  ResetScope = "chat_model"
	ResetScopeImageModel ResetScope = "image_model"
)

// ResetState is what the UI applies after a reset. History is always empty;
// the flags say which API key fields to clear.
type ResetState struct {
	History          []domain.ChatMessage
	ClearChatAPIKey  bool
	ClearImageAPIKey bool
}

// Reset clears the conversation.
func Reset() ResetState {
	return ResetState{History: []domain.ChatMessage{}}
}

// ResetAll clears the conversation and both API keys.
func ResetAll() ResetState {
	return ResetState{History: []domain.ChatMessage{}, ClearChatAPIKey: true, ClearImageAPIKey: true}
}

// ResetForModelChange clears the conversation and the key of the model whose
// selection changed.
func ResetForModelChange(scope ResetScope) (ResetState, error) {
	switch scope {
	case ResetScopeChatModel:
		return ResetState{History: []domain.ChatMessage{}, ClearChatAPIKey: true}, nil
	case ResetScopeImageModel:
		return ResetState{History: []domain.ChatMessage{}, ClearImageAPIKey: true}, nil
	default:
		return ResetState{}, newError(ErrorInvalidInput, "unknown_reset_scope", fmt.Errorf("scope %q", scope))
	}
}

// ResetFor dispatches on scope.
func ResetFor(scope ResetScope) (ResetState, error) {
	switch scope {
	case ResetScopeHistory, "":
		return Reset(), nil
	case ResetScopeAll:
		return ResetAll(), nil
	default:
		return ResetForModelChange(scope)
	}
}
