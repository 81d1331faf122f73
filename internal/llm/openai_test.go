package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/raementor/raementor/internal/config"
)

func TestNewResponsesClient_RequiresKey(t *testing.T) {
	_, err := NewResponsesClient(config.GenerationConfig{Model: "m"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestResponsesClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["model"] != "openai/gpt-oss-20b" || body["input"] != "the prompt" {
			t.Errorf("unexpected request %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"resp_1","object":"response","status":"completed","model":"openai/gpt-oss-20b",
			"output":[
				{"type":"reasoning","id":"rs_1","summary":[]},
				{"type":"message","id":"msg_1","role":"assistant","status":"completed",
				 "content":[{"type":"output_text","text":"  Course objective.  ","annotations":[]}]}
			]}`))
	}))
	defer srv.Close()

	client, err := NewResponsesClient(config.GenerationConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "openai/gpt-oss-20b",
	})
	if err != nil {
		t.Fatalf("NewResponsesClient: %v", err)
	}

	got, err := client.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "  Course objective.  " {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestResponsesClient_NoRetryOnFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	}))
	defer srv.Close()

	client, err := NewResponsesClient(config.GenerationConfig{APIKey: "k", BaseURL: srv.URL, Model: "m"})
	if err != nil {
		t.Fatalf("NewResponsesClient: %v", err)
	}

	if _, err := client.Generate(context.Background(), "p"); err == nil {
		t.Fatalf("expected error on 500")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
}

func TestNewEmbeddingClient_RequiresKey(t *testing.T) {
	_, err := NewEmbeddingClient(config.EmbeddingConfig{Model: "m"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestEmbeddingClient_EmbedBatchOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(body.Input) != 2 || body.Model != "text-embedding-3-small" {
			t.Errorf("unexpected request %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","model":"text-embedding-3-small","data":[
			{"object":"embedding","index":1,"embedding":[0,1]},
			{"object":"embedding","index":0,"embedding":[1,0]}
		]}`))
	}))
	defer srv.Close()

	client, err := NewEmbeddingClient(config.EmbeddingConfig{
		APIKey:  "k",
		BaseURL: srv.URL + "/v1",
		Model:   "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("NewEmbeddingClient: %v", err)
	}

	got, err := client.EmbedBatch(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if len(got) != 2 || got[0][0] != 1 || got[1][1] != 1 {
		t.Fatalf("expected vectors in input order, got %v", got)
	}
}

func TestNewGenerator(t *testing.T) {
	cfg := config.DefaultConfig()

	if _, err := NewGenerator(cfg); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured without key, got %v", err)
	}

	cfg.Generation.APIKey = "k"
	gen, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator(openai): %v", err)
	}
	if got := ModelOf(gen); got != "openai/gpt-oss-20b" {
		t.Fatalf("expected configured generation model, got %q", got)
	}

	cfg.Generation.Provider = config.ProviderOllama
	gen, err = NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator(ollama): %v", err)
	}
	if _, ok := gen.(*Client); !ok {
		t.Fatalf("expected ollama client, got %T", gen)
	}
	if got := ModelOf(gen); got != "qwen2.5:7b" {
		t.Fatalf("expected ollama chat model, got %q", got)
	}

	cfg.Generation.Provider = "bogus"
	if _, err := NewGenerator(cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

type anonymousGenerator struct{}

func (anonymousGenerator) Generate(context.Context, string) (string, error) { return "", nil }

func TestModelOf_Unreported(t *testing.T) {
	if got := ModelOf(anonymousGenerator{}); got != "" {
		t.Fatalf("expected empty model, got %q", got)
	}
}
