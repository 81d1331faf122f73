package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("grok_key", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Generation.Model != "openai/gpt-oss-20b" {
		t.Fatalf("expected default generation model, got %q", cfg.Generation.Model)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Fatalf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Document.ChunkSize != 1000 {
		t.Fatalf("expected chunk size 1000, got %d", cfg.Document.ChunkSize)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Fatalf("expected top_k 3, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Embedding.BaseURL != cfg.Generation.BaseURL {
		t.Fatalf("expected embedding base url to inherit %q, got %q", cfg.Generation.BaseURL, cfg.Embedding.BaseURL)
	}
}

func TestLoad_GroqKeyFallsBackToEmbedding(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RAEMENTOR_GENERATION_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("grok_key", "legacy-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Generation.APIKey != "legacy-key" {
		t.Fatalf("expected generation key from grok_key, got %q", cfg.Generation.APIKey)
	}
	if cfg.Embedding.APIKey != "legacy-key" {
		t.Fatalf("expected embedding key to inherit generation key, got %q", cfg.Embedding.APIKey)
	}
}

func TestLoad_ConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	yaml := `
generation:
  provider: ollama
  model: llama3
document:
  path: /srv/doc.txt
  chunk_size: 500
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RAEMENTOR_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Generation.Provider != ProviderOllama {
		t.Fatalf("expected provider ollama, got %q", cfg.Generation.Provider)
	}
	if cfg.Generation.Model != "llama3" {
		t.Fatalf("expected model llama3, got %q", cfg.Generation.Model)
	}
	if cfg.Document.Path != "/srv/doc.txt" || cfg.Document.ChunkSize != 500 {
		t.Fatalf("unexpected document config: %+v", cfg.Document)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("expected env to override port to 9100, got %d", cfg.Server.Port)
	}
	// untouched keys keep their defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("expected default host, got %q", cfg.Server.Host)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	testChdir(t, t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
