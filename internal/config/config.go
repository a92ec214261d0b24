package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	// Provider settings come from the environment, never from the file.
	OpenAI struct {
		APIKey string `yaml:"-"`
		Model  string `yaml:"-"`
	} `yaml:"-"`
}

// Load reads the optional config.yaml, then the environment. OPENAI_API_KEY
// and OPENAI_MODEL are required; a missing value is a startup error.
func Load(path string) (*Config, error) {
	// .env is a convenience for local runs; absence is fine
	_ = godotenv.Load()

	var cfg Config
	cfg.Server.Port = 8000
	cfg.RateLimit.Capacity = 20
	cfg.RateLimit.RefillRate = 10

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.Model = os.Getenv("OPENAI_MODEL")
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.OpenAI.Model == "" {
		return nil, fmt.Errorf("OPENAI_MODEL is required")
	}

	return &cfg, nil
}
