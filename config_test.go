package sieve_test

import (
	"testing"

	"github.com/fwojciec/sieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := sieve.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.MinTokens)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.Equal(t, 0.9, cfg.SimilarityThreshold)
	assert.Equal(t, 100<<20, cfg.BlockLimit)
	assert.Contains(t, cfg.BlockedExtensions, "pdf")
	assert.Contains(t, cfg.StopWords, "the")
}

func TestDefaultConfig_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	cfg := sieve.DefaultConfig()
	cfg.AllowedFragments[0] = "changed"

	assert.NotEqual(t, "changed", sieve.DefaultConfig().AllowedFragments[0])
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*sieve.Config)
	}{
		{"negative min", func(c *sieve.Config) { c.MinTokens = -1 }},
		{"max below min", func(c *sieve.Config) { c.MaxTokens = c.MinTokens - 1 }},
		{"zero threshold", func(c *sieve.Config) { c.SimilarityThreshold = 0 }},
		{"threshold above one", func(c *sieve.Config) { c.SimilarityThreshold = 1.5 }},
		{"zero block limit", func(c *sieve.Config) { c.BlockLimit = 0 }},
		{"no fragments", func(c *sieve.Config) { c.AllowedFragments = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := sieve.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, sieve.EINVALID, sieve.ErrorCode(err))
		})
	}
}
