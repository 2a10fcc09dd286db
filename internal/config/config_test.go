package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"OLLAMA_HOST", "LLM_MODEL", "CLUSTER_EPS", "CLUSTER_MIN_SAMPLES", "GENAI_SERVICE_USERNAME"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	// An empty value is still "set", so string keys come back empty and numeric keys fall back.
	assert.Equal(t, 1.1, cfg.Insight.ClusterEps)
	assert.Equal(t, 1, cfg.Insight.ClusterMinSamples)
	assert.Equal(t, 120, cfg.Ai.LLMTimeoutSeconds)
	assert.Equal(t, "ollama", cfg.Ai.LLMProvider)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "10.0.0.5:11434")
	t.Setenv("LLM_MODEL", "llama3")
	t.Setenv("CLUSTER_EPS", "0.75")
	t.Setenv("CLUSTER_MIN_SAMPLES", "2")
	t.Setenv("GENAI_SERVICE_USERNAME", "bot")

	cfg := Load()

	assert.Equal(t, "10.0.0.5:11434", cfg.Ai.LLMHost)
	assert.Equal(t, "llama3", cfg.Ai.LLMModel)
	assert.Equal(t, 0.75, cfg.Insight.ClusterEps)
	assert.Equal(t, 2, cfg.Insight.ClusterMinSamples)
	assert.Equal(t, "bot", cfg.Insight.ServiceUsername)
}

func TestGetEnvAsFloatInvalid(t *testing.T) {
	t.Setenv("CLUSTER_EPS", "wide")
	assert.Equal(t, 1.1, getEnvAsFloat("CLUSTER_EPS", 1.1))
}
