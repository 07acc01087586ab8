// Package config loads the engine configuration from environment-keyed
// YAML files with ${VAR} expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the biolit API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Data      DataConfig      `yaml:"data"`
	Search    SearchConfig    `yaml:"search"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DataConfig locates the offline corpus artifacts.
type DataConfig struct {
	RecordsPath string `yaml:"records_path"`
	TopicsPath  string `yaml:"topics_path"`
	// EmbeddingsPath may be empty or missing; semantic ranking then
	// degrades to lexical-only.
	EmbeddingsPath string `yaml:"embeddings_path"`
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	MaxVocabulary        int     `yaml:"max_vocabulary"`
	HybridLexicalWeight  float64 `yaml:"hybrid_lexical_weight"`
	HybridSemanticWeight float64 `yaml:"hybrid_semantic_weight"`
}

// AnalyticsConfig bounds analytics response sizes.
type AnalyticsConfig struct {
	MaxCloudTerms    int `yaml:"max_cloud_terms"`
	MaxNetworkNodes  int `yaml:"max_network_nodes"`
	MaxNetworkEdges  int `yaml:"max_network_edges"`
	MinEdgeFrequency int `yaml:"min_edge_frequency"`
}

// EmbeddingConfig holds the query-embedding provider settings. An empty
// API key disables the provider; semantic mode then degrades.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from a YAML file by environment name
// (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := filepath.Join("config", fmt.Sprintf("%s.yaml", env))

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable,
// defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 15
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.MaxVocabulary <= 0 {
		c.Search.MaxVocabulary = 1000
	}
	if c.Search.HybridLexicalWeight <= 0 && c.Search.HybridSemanticWeight <= 0 {
		c.Search.HybridLexicalWeight = 0.4
		c.Search.HybridSemanticWeight = 0.6
	}
	if c.Analytics.MaxCloudTerms <= 0 {
		c.Analytics.MaxCloudTerms = 50
	}
	if c.Analytics.MaxNetworkNodes <= 0 {
		c.Analytics.MaxNetworkNodes = 50
	}
	if c.Analytics.MaxNetworkEdges <= 0 {
		c.Analytics.MaxNetworkEdges = 200
	}
	if c.Analytics.MinEdgeFrequency <= 0 {
		c.Analytics.MinEdgeFrequency = 3
	}
	if c.Embedding.CacheSize <= 0 {
		c.Embedding.CacheSize = 1024
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Data.RecordsPath == "" {
		return fmt.Errorf("data.records_path is required")
	}
	if c.Data.TopicsPath == "" {
		return fmt.Errorf("data.topics_path is required")
	}
	if c.Search.HybridLexicalWeight < 0 || c.Search.HybridSemanticWeight < 0 {
		return fmt.Errorf("hybrid weights must be non-negative")
	}
	if c.Embedding.APIKey != "" && c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required when embedding.api_key is set")
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
