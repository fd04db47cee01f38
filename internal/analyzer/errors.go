package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"claimcheck/internal/domain"
)

// ModelUnavailableError indicates the provider rejected the requested model
// identifier. The fallback chain treats it as a signal to advance to the next
// model rather than a hard failure.
type ModelUnavailableError struct {
	Model string
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %s unavailable: %v", e.Model, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}

// IsModelUnavailable reports whether err signals that a model identifier was
// rejected. Besides the typed error, provider error text mentioning "model" or
// "not found" is treated as the same signal, matching how the providers word
// their rejections.
func IsModelUnavailable(err error) bool {
	var mu *ModelUnavailableError
	if errors.As(err, &mu) {
		return true
	}
	// A missing credential is a configuration failure that must stop the
	// whole call, never a reason to try the next model. Its message mentions
	// "not found", so it must be excluded before the text sniff.
	if errors.Is(err, domain.ErrAnalyzerNotConfigured) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "model") || strings.Contains(msg, "not found")
}
