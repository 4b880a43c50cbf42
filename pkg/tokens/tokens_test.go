package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	counter, err := NewCounter("gpt-4o")
	require.NoError(t, err)

	count := counter.Count("Tell me a joke about a pirate.")
	assert.Greater(t, count, 0)
	assert.Less(t, count, 20)
}

func TestCountEmpty(t *testing.T) {
	counter, err := NewCounter("gpt-4o")
	require.NoError(t, err)
	assert.Zero(t, counter.Count(""))
}

func TestWithinLimit(t *testing.T) {
	counter, err := NewCounter("gpt-4o")
	require.NoError(t, err)

	assert.True(t, counter.WithinLimit("short", 10))
	assert.False(t, counter.WithinLimit(strings.Repeat("word ", 1000), 10))
}

func TestFallbackEstimation(t *testing.T) {
	counter := &Counter{} // nil codec forces the fallback path
	assert.Equal(t, 5, counter.Count(strings.Repeat("a", 20)))
}
