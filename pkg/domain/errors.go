package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL          = errors.New("invalid YouTube URL")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
	ErrTranscriptNotFound  = errors.New("no transcript available")
	ErrLanguageUnavailable = errors.New("transcript language unavailable")
	ErrEmptyCompletion     = errors.New("no completions returned")
)

type notFoundError struct {
	Resource string
	Err      error
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("Error fetching %s: %s", e.Resource, e.Err.Error())
}

func (e *notFoundError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(resource string, err error) error {
	return &notFoundError{
		Resource: resource,
		Err:      err,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var nfErr *notFoundError
	return errors.As(err, &nfErr)
}

// Pass names the LLM pass that failed.
type Pass string

const (
	PassGeneration Pass = "generating"
	PassRefinement Pass = "refining"
)

type generationError struct {
	Pass Pass
	Err  error
}

func (e *generationError) Error() string {
	return fmt.Sprintf("Error %s chapters with AI: %s", e.Pass, e.Err.Error())
}

func (e *generationError) Unwrap() error {
	return e.Err
}

func NewGenerationError(pass Pass, err error) error {
	return &generationError{
		Pass: pass,
		Err:  err,
	}
}

func IsGenerationError(err error) bool {
	if err == nil {
		return false
	}
	var genErr *generationError
	return errors.As(err, &genErr)
}
