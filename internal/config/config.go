package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"vendorrag/internal/domain"
)

// Model identifiers selectable for answer generation.
const (
	ModelFast    = "gpt-3.5-turbo"
	ModelQuality = "gpt-4"
)

// Config is the application configuration shared by the ingest, query and
// app entry points. The pipeline receives it explicitly; nothing reads
// ambient state besides the API key resolution below.
type Config struct {
	Catalog        string `yaml:"catalog"`
	VectorDB       string `yaml:"vectordb"`
	K              int    `yaml:"k"`
	UseMMR         bool   `yaml:"use_mmr"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embedding_model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	APIKeyFile     string `yaml:"api_key_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Catalog:        "vendor-catalog.md",
		VectorDB:       "vectordb",
		K:              5,
		UseMMR:         true,
		Model:          ModelFast,
		EmbeddingModel: "text-embedding-ada-002",
		APIKeyEnv:      "OPENAI_API_KEY",
		APIKeyFile:     "API.txt",
	}
}

// Load reads a config from the given path. A missing file yields the
// defaults; fields omitted in the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Catalog == "" {
		cfg.Catalog = def.Catalog
	}
	if cfg.VectorDB == "" {
		cfg.VectorDB = def.VectorDB
	}
	if cfg.K <= 0 {
		cfg.K = def.K
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = def.EmbeddingModel
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = def.APIKeyEnv
	}
	if cfg.APIKeyFile == "" {
		cfg.APIKeyFile = def.APIKeyFile
	}
}

// ValidModel reports whether model is one of the selectable identifiers.
func ValidModel(model string) bool {
	return model == ModelFast || model == ModelQuality
}

// ResolveAPIKey returns the OpenAI API key from the named environment
// variable, falling back to a plaintext key file. Neither source yielding
// a key is a configuration error.
func ResolveAPIKey(envVar, keyFile string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(envVar)); key != "" {
		return key, nil
	}
	data, err := os.ReadFile(keyFile)
	if err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
	}
	return "", domain.ErrNoCredentials
}
