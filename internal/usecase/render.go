package usecase

import (
	"fmt"
	"strings"

	"recipe-wizard/internal/domain"
)

// FormatRecipe renders a recipe as markdown.
func FormatRecipe(r domain.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", strings.TrimSpace(r.DishName))
	b.WriteString("### Ingredients\n\n")
	for _, ing := range r.Ingredients {
		ing = strings.TrimSpace(ing)
		if ing == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", ing)
	}
	b.WriteString("\n### Instructions\n\n")
	b.WriteString(strings.TrimSpace(r.CookingInstructions))
	return b.String()
}

// RenderMessage puts the image, when there is one, above the recipe text.
func RenderMessage(recipeText, imageURL string) string {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return recipeText
	}
	return fmt.Sprintf("![Recipe image](%s)\n\n%s", imageURL, recipeText)
}
