package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"recipe-wizard/internal/domain"
)

func TestFormatRecipe(t *testing.T) {
	got := FormatRecipe(domain.Recipe{
		DishName:            " Pad Thai ",
		Ingredients:         []string{"rice noodles", " ", "tamarind"},
		CookingInstructions: "1. Soak noodles.\n2. Stir-fry.\n",
	})
	require.Equal(t, "## Pad Thai\n\n### Ingredients\n\n- rice noodles\n- tamarind\n\n### Instructions\n\n1. Soak noodles.\n2. Stir-fry.", got)
}

func TestRenderMessage(t *testing.T) {
	require.Equal(t, "recipe", RenderMessage("recipe", ""))
	require.Equal(t, "recipe", RenderMessage("recipe", "  "))
	require.Equal(t, "![Recipe image](https://img/x.png)\n\nrecipe", RenderMessage("recipe", "https://img/x.png"))
}
