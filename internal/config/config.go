package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider names accepted by generation.provider and embedding.provider
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds all configuration for the application
type Config struct {
	Generation GenerationConfig `mapstructure:"generation"`
	Embedding  EmbeddingConfig  `mapstructure:"embedding"`
	Ollama     OllamaConfig     `mapstructure:"ollama"`
	Document   DocumentConfig   `mapstructure:"document"`
	Retrieval  RetrievalConfig  `mapstructure:"retrieval"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

// GenerationConfig holds text-generation service configuration
type GenerationConfig struct {
	Provider string `mapstructure:"provider"` // openai, ollama
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"` // OpenAI-compatible endpoint (Groq by default)
	Model    string `mapstructure:"model"`
}

// EmbeddingConfig holds embedding service configuration.
// Empty APIKey and BaseURL inherit the generation values.
type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"` // openai, ollama
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
}

// OllamaConfig holds Ollama-related configuration
type OllamaConfig struct {
	Host           string `mapstructure:"host"`
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	Timeout        int    `mapstructure:"timeout"` // seconds
}

// DocumentConfig points at the institutional reference document
type DocumentConfig struct {
	Path      string `mapstructure:"path"`
	ChunkSize int    `mapstructure:"chunk_size"` // characters
}

// RetrievalConfig holds similarity search configuration
type RetrievalConfig struct {
	TopK int `mapstructure:"top_k"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"` // optional frontend served at /
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Provider: ProviderOpenAI,
			BaseURL:  "https://api.groq.com/openai/v1",
			Model:    "openai/gpt-oss-20b",
		},
		Embedding: EmbeddingConfig{
			Provider: ProviderOpenAI,
			Model:    "text-embedding-3-small",
		},
		Ollama: OllamaConfig{
			Host:           "http://localhost:11434",
			ChatModel:      "qwen2.5:7b",
			EmbeddingModel: "nomic-embed-text",
			Timeout:        120,
		},
		Document: DocumentConfig{
			Path:      filepath.Join("document", "document.txt"),
			ChunkSize: 1000,
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from .env files, the config file and the environment
func Load(configPath string) (*Config, error) {
	// .env.local wins over .env; neither overrides variables already set
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg := DefaultConfig()
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".raementor"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("RAEMENTOR")
	v.AutomaticEnv()

	// The credential keeps its historical variable names as fallbacks
	v.BindEnv("generation.api_key", "RAEMENTOR_GENERATION_API_KEY", "GROQ_API_KEY", "grok_key")
	v.BindEnv("generation.provider", "RAEMENTOR_GENERATION_PROVIDER")
	v.BindEnv("generation.base_url", "RAEMENTOR_GENERATION_BASE_URL")
	v.BindEnv("generation.model", "RAEMENTOR_GENERATION_MODEL")
	v.BindEnv("embedding.provider", "RAEMENTOR_EMBEDDING_PROVIDER")
	v.BindEnv("embedding.api_key", "RAEMENTOR_EMBEDDING_API_KEY")
	v.BindEnv("embedding.base_url", "RAEMENTOR_EMBEDDING_BASE_URL")
	v.BindEnv("embedding.model", "RAEMENTOR_EMBEDDING_MODEL")
	v.BindEnv("ollama.host", "RAEMENTOR_OLLAMA_HOST")
	v.BindEnv("ollama.chat_model", "RAEMENTOR_OLLAMA_CHAT_MODEL")
	v.BindEnv("ollama.embedding_model", "RAEMENTOR_OLLAMA_EMBEDDING_MODEL")
	v.BindEnv("ollama.timeout", "RAEMENTOR_OLLAMA_TIMEOUT")
	v.BindEnv("document.path", "RAEMENTOR_DOCUMENT_PATH")
	v.BindEnv("document.chunk_size", "RAEMENTOR_DOCUMENT_CHUNK_SIZE")
	v.BindEnv("retrieval.top_k", "RAEMENTOR_RETRIEVAL_TOP_K")
	v.BindEnv("server.host", "RAEMENTOR_SERVER_HOST")
	v.BindEnv("server.port", "RAEMENTOR_SERVER_PORT")
	v.BindEnv("server.static_dir", "RAEMENTOR_SERVER_STATIC_DIR")
	v.BindEnv("log.level", "RAEMENTOR_LOG_LEVEL")
	v.BindEnv("log.format", "RAEMENTOR_LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Config file not found, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks lets the embedding client reuse the generation credential,
// the way a single OpenAI-compatible account serves both calls.
func (c *Config) applyFallbacks() {
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = c.Generation.APIKey
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = c.Generation.BaseURL
	}
	if c.Document.ChunkSize <= 0 {
		c.Document.ChunkSize = 1000
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 3
	}
}
