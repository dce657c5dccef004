package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings that do not come from stage flags.
type Config struct {
	LLM        LLMConfig `yaml:"llm"`
	ServerAddr string    `yaml:"server_addr,omitempty"`
	OutputRoot string    `yaml:"output_root,omitempty"`
	Log        LogConfig `yaml:"log"`
}

// LLMConfig selects the completion provider. The API key is optional; without
// one the run falls back to demo responses.
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty"`
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"

	DefaultModel = "gpt-3.5-turbo"
)

var defaultKeyEnv = map[string]string{
	ProviderOpenAI:   "OPENAI_API_KEY",
	ProviderDeepSeek: "DEEPSEEK_API_KEY",
	ProviderGemini:   "GEMINI_API_KEY",
}

var defaultModel = map[string]string{
	ProviderOpenAI:   DefaultModel,
	ProviderDeepSeek: "deepseek-chat",
	ProviderGemini:   "gemini-2.0-flash",
}

// DefaultModelFor returns the model used when the config names none.
func DefaultModelFor(provider string) string {
	if m, ok := defaultModel[provider]; ok {
		return m
	}
	return DefaultModel
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
			Model:    DefaultModel,
		},
		ServerAddr: ":8080",
		OutputRoot: "outputs",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML (or JSON) config file over the defaults. An empty path
// returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	// The model default depends on the provider the file picks.
	cfg.LLM.Model = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderOpenAI
	}
	if _, ok := defaultKeyEnv[cfg.LLM.Provider]; !ok {
		return Config{}, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
	cfg.LLM.Model = strings.TrimSpace(cfg.LLM.Model)
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModelFor(cfg.LLM.Provider)
	}
	return cfg, nil
}

// KeyEnv names the environment variable the credential is read from.
func (c LLMConfig) KeyEnv() string {
	if c.APIKeyEnv != "" {
		return c.APIKeyEnv
	}
	if env, ok := defaultKeyEnv[c.Provider]; ok {
		return env
	}
	return defaultKeyEnv[ProviderOpenAI]
}

// Credential resolves the API key: an inline api_key wins, then the
// environment via getenv. An empty result means demo mode.
func (c LLMConfig) Credential(getenv func(string) string) string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if getenv == nil {
		return ""
	}
	return strings.TrimSpace(getenv(c.KeyEnv()))
}
