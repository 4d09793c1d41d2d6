package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"recipe-wizard/internal/domain"
)

func requireFrame(t *testing.T, msgs []domain.ChatMessage, system, message, format string) {
	t.Helper()
	require.GreaterOrEqual(t, len(msgs), 4)
	require.Equal(t, domain.ChatMessage{Role: domain.RoleSystem, Content: system}, msgs[0])
	n := len(msgs)
	require.Equal(t, domain.ChatMessage{Role: domain.RoleUser, Content: message}, msgs[n-3])
	require.Equal(t, domain.RoleUser, msgs[n-2].Role)
	require.Equal(t, "Here is your recipe\n"+format, msgs[n-2].Content)
	require.Equal(t, domain.ChatMessage{Role: domain.RoleUser, Content: "Give me recipe"}, msgs[n-1])
}

func TestBuildPromptMessages_EmptyHistory(t *testing.T) {
	msgs := buildPromptMessages("chef", "FORMAT", nil, "pasta?")
	require.Len(t, msgs, 4)
	requireFrame(t, msgs, "chef", "pasta?", "FORMAT")
}

func TestBuildPromptMessages_FrameHoldsForAnyHistoryLength(t *testing.T) {
	for n := 0; n < 7; n++ {
		var history []domain.ChatMessage
		for i := 0; i < n; i++ {
			role := domain.RoleUser
			if i%2 == 1 {
				role = domain.RoleAssistant
			}
			history = append(history, domain.ChatMessage{Role: role, Content: "turn"})
		}
		msgs := buildPromptMessages("chef", "FORMAT", history, "next")
		require.Len(t, msgs, n+4)
		requireFrame(t, msgs, "chef", "next", "FORMAT")
	}
}

func TestBuildPromptMessages_KeepsOrderAndDropsOtherRoles(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleSystem, Content: "injected"},
		{Role: domain.RoleAssistant, Content: " second "},
		{Role: domain.RoleUser, Content: "   "},
		{Role: "tool", Content: "ignored"},
		{Role: domain.RoleUser, Content: "third"},
	}
	original := append([]domain.ChatMessage(nil), history...)

	msgs := buildPromptMessages("chef", "FORMAT", history, "now")
	require.Len(t, msgs, 7)
	require.Equal(t, "first", msgs[1].Content)
	require.Equal(t, domain.ChatMessage{Role: domain.RoleAssistant, Content: "second"}, msgs[2])
	require.Equal(t, "third", msgs[3].Content)
	require.Equal(t, original, history)
}

func TestTrimHistory(t *testing.T) {
	u1 := domain.ChatMessage{Role: domain.RoleUser, Content: "u1"}
	a1 := domain.ChatMessage{Role: domain.RoleAssistant, Content: "a1"}
	u2 := domain.ChatMessage{Role: domain.RoleUser, Content: "u2"}
	a2 := domain.ChatMessage{Role: domain.RoleAssistant, Content: "a2"}
	h := []domain.ChatMessage{u1, a1, u2, a2}

	require.Equal(t, h, trimHistory(h, 0))
	require.Equal(t, h, trimHistory(h, 2))
	require.Equal(t, h, trimHistory(h, 5))
	require.Equal(t, []domain.ChatMessage{u2, a2}, trimHistory(h, 1))
}

func TestTrimHistory_StartsAtUserTurn(t *testing.T) {
	a0 := domain.ChatMessage{Role: domain.RoleAssistant, Content: "welcome"}
	u1 := domain.ChatMessage{Role: domain.RoleUser, Content: "u1"}
	a1 := domain.ChatMessage{Role: domain.RoleAssistant, Content: "a1"}
	u2 := domain.ChatMessage{Role: domain.RoleUser, Content: "u2"}

	require.Equal(t, []domain.ChatMessage{u1, a1, u2}, trimHistory([]domain.ChatMessage{a0, u1, a1, u2}, 0))
	require.Equal(t, []domain.ChatMessage{u2}, trimHistory([]domain.ChatMessage{a0, u1, a1, u2}, 1))
}

func TestTrimHistory_IgnoresSystemAndBlankMessages(t *testing.T) {
	h := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "u1"},
		{Role: domain.RoleSystem, Content: "injected"},
		{Role: domain.RoleAssistant, Content: "  "},
		{Role: domain.RoleAssistant, Content: "a1"},
	}
	original := append([]domain.ChatMessage(nil), h...)

	require.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "u1"},
		{Role: domain.RoleAssistant, Content: "a1"},
	}, trimHistory(h, 1))
	require.Equal(t, original, h)
}

func TestRecipeFormatInstructions_DescribesSchema(t *testing.T) {
	format, err := domain.RecipeFormatInstructions()
	require.NoError(t, err)
	require.Contains(t, format, `"dishName"`)
	require.Contains(t, format, `"ingredients"`)
	require.Contains(t, format, `"cookingInstructions"`)
	require.Contains(t, format, "Step by Step instructions")
}
