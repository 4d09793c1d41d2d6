package domain

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Recipe is the structured output requested from the chat model.
type Recipe struct {
	DishName            string   `json:"dishName" jsonschema:"Recipe Name"`
	Ingredients         []string `json:"ingredients" jsonschema:"All ingredients for the recipe"`
	CookingInstructions string   `json:"cookingInstructions" jsonschema:"Step by Step instructions on how to cook the dish"`
}

// RecipeRecord is an archived recipe.
type RecipeRecord struct {
	ID        string
	Recipe    Recipe
	ImageURL  string
	ChatModel string
	CreatedAt string
	TTL       int64
}

var (
	formatOnce         sync.Once
	formatInstructions string
	formatErr          error
)

// RecipeFormatInstructions returns the output format instruction appended to
// every recipe prompt. The JSON Schema is inferred from Recipe.
func RecipeFormatInstructions() (string, error) {
	formatOnce.Do(func() {
		schema, err := jsonschema.For[Recipe](nil)
		if err != nil {
			formatErr = fmt.Errorf("domain: infer recipe schema: %w", err)
			return
		}
		raw, err := json.Marshal(schema)
		if err != nil {
			formatErr = fmt.Errorf("domain: marshal recipe schema: %w", err)
			return
		}
		formatInstructions = "The output should be formatted as a JSON instance that conforms to the JSON schema below.\n\n" +
			"As an example, for the schema {\"properties\": {\"foo\": {\"title\": \"Foo\", \"description\": \"a list of strings\", \"type\": \"array\", \"items\": {\"type\": \"string\"}}}, \"required\": [\"foo\"]}\n" +
			"the object {\"foo\": [\"bar\", \"baz\"]} is a well-formatted instance of the schema. " +
			"The object {\"properties\": {\"foo\": [\"bar\", \"baz\"]}} is not well-formatted.\n\n" +
			"Here is the output schema:\n```\n" + string(raw) + "\n```"
	})
	return formatInstructions, formatErr
}
