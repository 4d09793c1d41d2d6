package usecase

import (
	"strings"

	"recipe-wizard/internal/domain"
)

const (
	// DefaultSystemPrompt is used when no system prompt is configured.
	DefaultSystemPrompt = "You are an extremely talented and top Chef with expertise in every type of cuisine and can make delicious food. " +
		"Generate a dinner recipe with name, ingredients and step by step instructions."

	formatPreamble = "Here is your recipe"
	triggerPhrase  = "Give me recipe"
)

// buildPromptMessages returns a new conversation: system prompt, replayed
// history, the new message, the format instruction, then the trigger phrase.
func buildPromptMessages(systemPrompt, formatInstructions string, history []domain.ChatMessage, message string) []domain.ChatMessage {
	messages := make([]domain.ChatMessage, 0, len(history)+4)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: strings.TrimSpace(systemPrompt)})

	for _, m := range history {
		if turn, ok := historyToPromptMessage(m); ok {
			messages = append(messages, turn)
		}
	}

	messages = append(messages,
		domain.ChatMessage{Role: domain.RoleUser, Content: message},
		domain.ChatMessage{Role: domain.RoleUser, Content: formatPreamble + "\n" + formatInstructions},
		domain.ChatMessage{Role: domain.RoleUser, Content: triggerPhrase},
	)
	return messages
}

// historyToPromptMessage keeps user and assistant turns only.
func historyToPromptMessage(m domain.ChatMessage) (domain.ChatMessage, bool) {
	content := strings.TrimSpace(m.Content)
	if content == "" {
		return domain.ChatMessage{}, false
	}
	switch m.Role {
	case domain.RoleUser, domain.RoleAssistant:
		return domain.ChatMessage{Role: m.Role, Content: content}, true
	default:
		return domain.ChatMessage{}, false
	}
}

// trimHistory keeps the most recent limit user/assistant turns, two messages
// each. The result always starts at a user message.
func trimHistory(history []domain.ChatMessage, limit int) []domain.ChatMessage {
	kept := make([]domain.ChatMessage, 0, len(history))
	for _, m := range history {
		if turn, ok := historyToPromptMessage(m); ok {
			kept = append(kept, turn)
		}
	}
	if limit > 0 && len(kept) > 2*limit {
		kept = kept[len(kept)-2*limit:]
	}
	for len(kept) > 0 && kept[0].Role != domain.RoleUser {
		kept = kept[1:]
	}
	return kept
}
