// Package tokens provides tiktoken-based token counting utilities.
package tokens

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Counter provides token counting for prompt budgeting and usage backfill.
// All supported chat models are close enough to the GPT-4 encoding for
// budgeting purposes.
type Counter struct {
	codec tokenizer.Codec
}

// NewCounter creates a token counter. The model argument is accepted for
// symmetry with the provider constructors; every model maps to the GPT-4
// encoding today.
func NewCounter(model string) (*Counter, error) {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer codec for model %s: %w", model, err)
	}
	return &Counter{codec: codec}, nil
}

// Count returns the number of tokens in the given text. On any codec
// failure it falls back to character-based estimation (4 chars ≈ 1 token).
func (c *Counter) Count(text string) int {
	if c.codec == nil {
		return len(text) / 4
	}
	count, err := c.codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return count
}

// WithinLimit reports whether text fits within the given token limit.
func (c *Counter) WithinLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}
