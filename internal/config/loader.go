package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/alexanderramin/matchday/internal/llm"
)

const (
	envPrefix     = "MATCHDAY_"
	envConfigPath = "MATCHDAY_CONFIG"

	// Unprefixed credential names, honored when the prefixed keys are empty.
	envFootballKey = "FOOTBALL_API_KEY"
	envOpenAIKey   = "OPENAI_API_KEY"
)

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. .env files, read into the process environment without overriding it
//  3. YAML file named by MATCHDAY_CONFIG
//  4. env (prefix MATCHDAY_, "__" separates nested keys)
//
// With no envFiles, ".env" in the working directory is tried. Missing env
// files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
		}
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// MATCHDAY_FOOTBALL__API_KEY -> football.api_key
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		if s == "CONFIG" {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	applyCredentialFallbacks(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyCredentialFallbacks(cfg *Config) {
	if cfg.Football.APIKey == "" {
		cfg.Football.APIKey = os.Getenv(envFootballKey)
	}
	if cfg.LLM.Provider == llm.ProviderOpenAI {
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv(envOpenAIKey)
		}
		if cfg.LLM.Endpoint == "" || cfg.LLM.Endpoint == llm.DefaultEndpoint(llm.ProviderOllama) {
			cfg.LLM.Endpoint = llm.DefaultEndpoint(llm.ProviderOpenAI)
		}
	}
}
