package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"recipe-wizard/internal/domain"
)

const codeFence = "```"

// recipePayload uses pointers so missing and null fields can be told apart
// from empty values.
type recipePayload struct {
	DishName            *string   `json:"dishName"`
	Ingredients         *[]string `json:"ingredients"`
	CookingInstructions *string   `json:"cookingInstructions"`
}

// ExtractRecipe finds the recipe JSON object in a model reply. A fenced code
// block wins over surrounding prose when it holds an object. Two different recipe objects in the same
// text are rejected as ambiguous.
func ExtractRecipe(raw string) (domain.Recipe, error) {
	text := strings.TrimSpace(raw)
	var objects []json.RawMessage
	if fenced, ok := fencedBlock(text); ok {
		objects = jsonObjects(fenced)
	}
	if len(objects) == 0 {
		objects = jsonObjects(text)
	}
	if len(objects) == 0 {
		return domain.Recipe{}, MalformedRecipeError(errors.New("no JSON object in response"))
	}

	var (
		found    *domain.Recipe
		firstErr error
	)
	for _, obj := range objects {
		r, err := decodeRecipe(obj)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if found == nil {
			found = &r
			continue
		}
		if !reflect.DeepEqual(*found, r) {
			return domain.Recipe{}, MalformedRecipeError(errors.New("multiple recipe objects in response"))
		}
	}
	if found == nil {
		return domain.Recipe{}, MalformedRecipeError(firstErr)
	}
	return *found, nil
}

// fencedBlock returns the body of the first markdown code fence, dropping an
// optional language tag on the opening line.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, codeFence)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(codeFence):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.Contains(rest[:nl], "{") {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, codeFence)
	if end < 0 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}

// jsonObjects returns every top-level JSON object that decodes cleanly, in
// order of appearance. A broken object is skipped as a whole, and one that is
// never closed ends the scan, so nothing nested inside it is returned.
func jsonObjects(text string) []json.RawMessage {
	var out []json.RawMessage
	for i := 0; i < len(text); {
		open := strings.IndexByte(text[i:], '{')
		if open < 0 {
			break
		}
		pos := i + open
		dec := json.NewDecoder(strings.NewReader(text[pos:]))
		var obj json.RawMessage
		if err := dec.Decode(&obj); err != nil {
			end, closed := braceSpan(text[pos:])
			if !closed {
				break
			}
			i = pos + end
			continue
		}
		out = append(out, obj)
		i = pos + int(dec.InputOffset())
	}
	return out
}

// braceSpan returns the length of the brace-balanced span at the start of s,
// which must begin with '{'. Braces inside JSON strings are ignored. closed
// is false when the span runs to the end of s.
func braceSpan(s string) (end int, closed bool) {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(s), false
}

func decodeRecipe(obj json.RawMessage) (domain.Recipe, error) {
	var p recipePayload
	if err := json.NewDecoder(bytes.NewReader(obj)).Decode(&p); err != nil {
		return domain.Recipe{}, fmt.Errorf("decode recipe: %w", err)
	}
	switch {
	case p.DishName == nil:
		return domain.Recipe{}, errors.New("recipe missing dishName")
	case p.Ingredients == nil:
		return domain.Recipe{}, errors.New("recipe missing ingredients")
	case p.CookingInstructions == nil:
		return domain.Recipe{}, errors.New("recipe missing cookingInstructions")
	case strings.TrimSpace(*p.DishName) == "":
		return domain.Recipe{}, errors.New("recipe dishName is empty")
	}
	return domain.Recipe{
		DishName:            *p.DishName,
		Ingredients:         *p.Ingredients,
		CookingInstructions: *p.CookingInstructions,
	}, nil
}
