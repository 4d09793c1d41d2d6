package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetFor_AlwaysReturnsEmptyHistory(t *testing.T) {
	cases := []struct {
		scope      ResetScope
		clearChat  bool
		clearImage bool
	}{
		{ResetScopeHistory, false, false},
		{"", false, false},
		{ResetScopeAll, true, true},
		{ResetScopeChatModel, true, false},
		{ResetScopeImageModel, false, true},
	}
	for _, tc := range cases {
		state, err := ResetFor(tc.scope)
		require.NoError(t, err, tc.scope)
		require.NotNil(t, state.History)
		require.Empty(t, state.History)
		require.Equal(t, tc.clearChat, state.ClearChatAPIKey, tc.scope)
		require.Equal(t, tc.clearImage, state.ClearImageAPIKey, tc.scope)
	}
}

func TestResetFor_UnknownScope(t *testing.T) {
	_, err := ResetFor("everything")
	var usecaseErr *Error
	require.ErrorAs(t, err, &usecaseErr)
	require.Equal(t, ErrorInvalidInput, usecaseErr.Code)
}
