package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrorUnsupportedModel ErrorCode = "UNSUPPORTED_MODEL"
	ErrorMalformedRecipe  ErrorCode = "MALFORMED_RECIPE"
	ErrorRateLimited      ErrorCode = "RATE_LIMITED"
	ErrorUpstream         ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal         ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// UnsupportedModelError reports a model identifier that matches no known
// provider naming convention.
func UnsupportedModelError(kind, model string) *Error {
	return newError(ErrorUnsupportedModel, kind+"_model_unsupported", fmt.Errorf("unsupported model: %q", model))
}

// MalformedRecipeError reports a chat reply that holds no valid recipe.
func MalformedRecipeError(err error) *Error {
	return newError(ErrorMalformedRecipe, "recipe_parse_error", err)
}

func IsUnsupportedModel(err error) bool { return hasCode(err, ErrorUnsupportedModel) }

func IsMalformedRecipe(err error) bool { return hasCode(err, ErrorMalformedRecipe) }

func hasCode(err error, code ErrorCode) bool {
	var usecaseErr *Error
	return errors.As(err, &usecaseErr) && usecaseErr.Code == code
}

// ImageGenerationError wraps any failure on the image path. It never leaves
// the package; RequestImage turns it into a degraded ImageResult.
type ImageGenerationError struct {
	Model string
	Err   error
}

func (e *ImageGenerationError) Error() string {
	return fmt.Sprintf("usecase: image generation with %q failed: %v", e.Model, e.Err)
}

func (e *ImageGenerationError) Unwrap() error { return e.Err }
