package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"recipe-wizard/internal/domain"
)

var carbonara = domain.Recipe{
	DishName:            "Carbonara",
	Ingredients:         []string{"spaghetti", "guanciale", "eggs", "pecorino"},
	CookingInstructions: "Cook pasta. Crisp guanciale. Mix with eggs and cheese off the heat.",
}

const carbonaraJSON = `{"dishName":"Carbonara","ingredients":["spaghetti","guanciale","eggs","pecorino"],"cookingInstructions":"Cook pasta. Crisp guanciale. Mix with eggs and cheese off the heat."}`

func TestExtractRecipe_Accepts(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "plain json", raw: carbonaraJSON},
		{name: "json fence", raw: "```json\n" + carbonaraJSON + "\n```"},
		{name: "bare fence", raw: "```\n" + carbonaraJSON + "\n```"},
		{name: "inline fence", raw: "```" + carbonaraJSON + "```"},
		{name: "prose around", raw: "Sure! Here you go:\n" + carbonaraJSON + "\nBuon appetito {enjoy}."},
		{name: "prose and fence", raw: "Recipe below {see}.\n```json\n" + carbonaraJSON + "\n```\nThanks"},
		{name: "unterminated fence", raw: "```json\n" + carbonaraJSON},
		{name: "duplicate identical", raw: carbonaraJSON + "\n\nAgain: " + carbonaraJSON},
		{name: "non recipe object first", raw: `{"note":"draft"} then ` + carbonaraJSON},
		{name: "extra fields", raw: `{"dishName":"Carbonara","servings":2,"ingredients":["spaghetti","guanciale","eggs","pecorino"],"cookingInstructions":"Cook pasta. Crisp guanciale. Mix with eggs and cheese off the heat."}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractRecipe(tc.raw)
			require.NoError(t, err)
			require.Equal(t, carbonara, got)
		})
	}
}

func TestExtractRecipe_FenceWithoutJSONFallsBackToText(t *testing.T) {
	raw := "Run `make` first:\n```sh\nmake dinner\n```\n" + carbonaraJSON
	got, err := ExtractRecipe(raw)
	require.NoError(t, err)
	require.Equal(t, carbonara, got)
}

func TestExtractRecipe_EmptyIngredientsAllowed(t *testing.T) {
	got, err := ExtractRecipe(`{"dishName":"Toast","ingredients":[],"cookingInstructions":"Toast bread."}`)
	require.NoError(t, err)
	require.Empty(t, got.Ingredients)
}

func TestExtractRecipe_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prose only", raw: "I would suggest a nice risotto."},
		{name: "truncated", raw: `{"dishName":"Carbonara","ingredients":["spaghetti"`},
		{name: "missing instructions", raw: `{"dishName":"Carbonara","ingredients":["spaghetti"]}`},
		{name: "null ingredients", raw: `{"dishName":"Carbonara","ingredients":null,"cookingInstructions":"x"}`},
		{name: "null dish", raw: `{"dishName":null,"ingredients":[],"cookingInstructions":"x"}`},
		{name: "blank dish", raw: `{"dishName":"  ","ingredients":[],"cookingInstructions":"x"}`},
		{name: "wrong type", raw: `{"dishName":"Carbonara","ingredients":"spaghetti","cookingInstructions":"x"}`},
		{name: "recipe inside unterminated wrapper", raw: `{"recipe": ` + carbonaraJSON},
		{name: "recipe inside broken wrapper", raw: `{"recipe": ` + carbonaraJSON + `, oops}`},
		{name: "recipe inside valid wrapper", raw: `{"recipe": ` + carbonaraJSON + `}`},
		{name: "two different recipes", raw: carbonaraJSON + "\nor\n" + `{"dishName":"Cacio e Pepe","ingredients":["tonnarelli"],"cookingInstructions":"Emulsify."}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractRecipe(tc.raw)
			require.Error(t, err)
			require.True(t, IsMalformedRecipe(err), "got %v", err)
		})
	}
}

func TestFencedBlock(t *testing.T) {
	body, ok := fencedBlock("a\n```json\n{}\n```\nb")
	require.True(t, ok)
	require.Equal(t, "{}", body)

	_, ok = fencedBlock("no fences here")
	require.False(t, ok)
}

func TestBraceSpan(t *testing.T) {
	end, closed := braceSpan(`{"a":"}{","b":{"c":1}} tail`)
	require.True(t, closed)
	require.Equal(t, len(`{"a":"}{","b":{"c":1}}`), end)

	end, closed = braceSpan(`{"a":"\"}"} tail`)
	require.True(t, closed)
	require.Equal(t, len(`{"a":"\"}"}`), end)

	_, closed = braceSpan(`{"a":{"b":1}`)
	require.False(t, closed)
}

func TestExtractRecipe_SkipsBrokenObjectBeforeRecipe(t *testing.T) {
	got, err := ExtractRecipe(`Tip: {use fresh eggs} ` + carbonaraJSON)
	require.NoError(t, err)
	require.Equal(t, carbonara, got)
}
