package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
		assert.Equal(t, "qwen2.5:3b", cfg.LLMModel)
		assert.Equal(t, 8*time.Second, cfg.Timeout)
	})

	t.Run("with options", func(t *testing.T) {
		cfg := NewConfig(
			WithLLMHost("http://example.com/v1"),
			WithLLMModel("gpt-4o-mini"),
			WithToken("sk-test"),
			WithTimeout(3*time.Second),
		)
		assert.Equal(t, "http://example.com/v1", cfg.LLMHost)
		assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
		assert.Equal(t, "sk-test", cfg.Token)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"adds v1 suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"strips trailing slash first", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"keeps existing v1", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LLMHost: tt.host, LLMModel: "m"}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.LLMHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := &Config{LLMModel: "m"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := &Config{LLMHost: "http://localhost:11434"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("normalizes timeout and token", func(t *testing.T) {
		cfg := &Config{LLMHost: "http://localhost:11434", LLMModel: "m"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "none", cfg.Token)
		assert.Equal(t, 8*time.Second, cfg.Timeout)
	})
}
