package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("transcript", ErrInvalidURL)

	assert.Equal(t, "Error fetching transcript: invalid YouTube URL", err.Error())
	assert.True(t, IsNotFoundError(err))
	assert.True(t, IsNotFoundError(fmt.Errorf("fetch stage: %w", err)))
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.False(t, IsGenerationError(err))
	assert.False(t, IsNotFoundError(nil))
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("quota exhausted")

	gen := NewGenerationError(PassGeneration, cause)
	ref := NewGenerationError(PassRefinement, cause)

	assert.Equal(t, "Error generating chapters with AI: quota exhausted", gen.Error())
	assert.Equal(t, "Error refining chapters with AI: quota exhausted", ref.Error())
	assert.True(t, IsGenerationError(fmt.Errorf("wrapped: %w", ref)))
	assert.ErrorIs(t, gen, cause)
	assert.False(t, IsNotFoundError(gen))
	assert.False(t, IsGenerationError(nil))
}
