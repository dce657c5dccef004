package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
llm:
  provider: DeepSeek
  model: deepseek-chat
  base_url: https://api.deepseek.com/v1
server_addr: ":9090"
log:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderDeepSeek, cfg.LLM.Provider)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "outputs", cfg.OutputRoot)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"llm": {"provider": "gemini", "model": "gemini-2.0-flash"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "GEMINI_API_KEY", cfg.LLM.KeyEnv())
}

func TestLoad_ProviderDefaultModel(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{body: "llm:\n  provider: gemini\n", want: "gemini-2.0-flash"},
		{body: "llm:\n  provider: deepseek\n", want: "deepseek-chat"},
		{body: "log:\n  level: debug\n", want: "gpt-3.5-turbo"},
		{body: "llm:\n  provider: gemini\n  model: gemini-1.5-pro\n", want: "gemini-1.5-pro"},
	}
	for _, tc := range cases {
		cfg, err := Load(writeConfig(t, "config.yaml", tc.body))
		require.NoError(t, err, tc.body)
		assert.Equal(t, tc.want, cfg.LLM.Model, tc.body)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "bad.yaml", "llm: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "p.yaml", "llm:\n  provider: anthropic\n"))
	assert.EqualError(t, err, "llm provider anthropic not supported")
}

func TestCredential(t *testing.T) {
	env := envMap(map[string]string{"OPENAI_API_KEY": " sk-env ", "MY_KEY": "sk-custom"})

	lc := Default().LLM
	assert.Equal(t, "sk-env", lc.Credential(env))
	assert.Empty(t, lc.Credential(envMap(nil)))
	assert.Empty(t, lc.Credential(nil))

	lc.APIKeyEnv = "MY_KEY"
	assert.Equal(t, "sk-custom", lc.Credential(env))

	lc.APIKey = "sk-inline"
	assert.Equal(t, "sk-inline", lc.Credential(env))
}
