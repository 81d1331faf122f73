package agent

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/raementor/raementor/internal/config"
	"github.com/raementor/raementor/internal/embedding"
	"github.com/raementor/raementor/internal/indexer"
	"github.com/raementor/raementor/internal/llm"
	"github.com/raementor/raementor/internal/retriever"
)

// NoContextPlaceholder stands in for the context block when retrieval finds nothing
const NoContextPlaceholder = "(no institutional context available)"

// ErrGenerationNotConfigured is returned when no generation client is available
var ErrGenerationNotConfigured = errors.New("generation client not configured")

// GenerationError wraps a failed generation call
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// healthCheckTimeout bounds the Ollama probe made for health reporting
const healthCheckTimeout = 5 * time.Second

// HealthChecker probes a backing model server
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// Retriever returns the texts most similar to a query
type Retriever interface {
	TopK(ctx context.Context, query string, k int) ([]string, error)
	Count() int
}

// ObjectiveAgent drafts course objectives grounded in the reference document
type ObjectiveAgent struct {
	generator      llm.Generator
	retriever      Retriever
	topK           int
	generationName string
	embeddingName  string
	embeddingModel string
	ollama         HealthChecker
	logger         *slog.Logger
}

// Options configures an ObjectiveAgent built with New
type Options struct {
	TopK           int
	GenerationName string
	EmbeddingName  string
	EmbeddingModel string
	// Ollama is probed by Stats when set
	Ollama HealthChecker
	Logger *slog.Logger
}

// New creates an agent from explicit collaborators. A nil generator makes
// Suggest fail with ErrGenerationNotConfigured; a nil retriever means no context.
func New(generator llm.Generator, r Retriever, opts Options) *ObjectiveAgent {
	if opts.TopK <= 0 {
		opts.TopK = retriever.DefaultTopK
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &ObjectiveAgent{
		generator:      generator,
		retriever:      r,
		topK:           opts.TopK,
		generationName: opts.GenerationName,
		embeddingName:  opts.EmbeddingName,
		embeddingModel: opts.EmbeddingModel,
		ollama:         opts.Ollama,
		logger:         opts.Logger,
	}
}

// NewFromConfig wires the agent from configuration. Missing credentials are
// logged and leave the corresponding feature disabled.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*ObjectiveAgent, error) {
	if logger == nil {
		logger = slog.Default()
	}

	generator, err := llm.NewGenerator(cfg)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			return nil, err
		}
		logger.Warn("generation client not configured; requests will fail until an API key is set")
		generator = nil
	}

	var embedder *embedding.Embedder
	provider, err := embedding.NewProvider(cfg)
	if err != nil {
		if !errors.Is(err, embedding.ErrNotConfigured) {
			return nil, err
		}
		logger.Warn("embedding provider not configured; retrieval disabled")
	} else {
		embedder = embedding.NewEmbedder(provider)
	}

	store := retriever.NewMemoryStore(indexer.NewIndexer(cfg.Document), embedder, logger)

	opts := Options{
		TopK:           cfg.Retrieval.TopK,
		GenerationName: cfg.Generation.Provider,
		Logger:         logger,
	}
	if embedder != nil {
		opts.EmbeddingName = embedder.Name()
		opts.EmbeddingModel = embedder.Model()
	}
	if cfg.Generation.Provider == config.ProviderOllama || cfg.Embedding.Provider == config.ProviderOllama {
		opts.Ollama = llm.NewClient(cfg.Ollama)
	}

	return New(generator, retriever.NewRanker(store), opts), nil
}

// Suggest drafts a course objective for the given description
func (a *ObjectiveAgent) Suggest(ctx context.Context, text string) (string, error) {
	if a.generator == nil {
		return "", ErrGenerationNotConfigured
	}

	contextBlock := BuildContext(a.retrieve(ctx, text))
	a.logger.Debug("context block", "context", contextBlock)

	prompt := BuildPrompt(contextBlock, text)

	output, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	return strings.TrimSpace(output), nil
}

// retrieve returns the top chunks, treating any retrieval error as no context
func (a *ObjectiveAgent) retrieve(ctx context.Context, query string) []string {
	if a.retriever == nil {
		return nil
	}

	chunks, err := a.retriever.TopK(ctx, query, a.topK)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, retriever.ErrEmbeddingUnavailable) || errors.Is(err, indexer.ErrDocumentNotFound) {
			level = slog.LevelDebug
		}
		a.logger.Log(ctx, level, "retrieval disabled for request", "error", err)
		return nil
	}
	return chunks
}

// BuildContext joins retrieved chunks with blank lines, or returns the
// placeholder when there are none
func BuildContext(chunks []string) string {
	if len(chunks) == 0 {
		return NoContextPlaceholder
	}
	return strings.Join(chunks, "\n\n")
}

// BuildPrompt interpolates the context block and the instructor's text
// verbatim into the fixed prompt template
func BuildPrompt(contextBlock, text string) string {
	return "You are an expert in university curriculum design.\n\n" +
		"INSTITUTIONAL CONTEXT:\n" + contextBlock + "\n\n" +
		"INSTRUCTOR INFORMATION:\nPreliminary course description: " + text + "\n\n" +
		"INSTRUCTIONS: Write a course objective that:\n" +
		"- Is consistent with the institutional curriculum model.\n\n" +
		"- Is student-centered.\n\n" +
		"- Reflects the course's contribution to the graduate profile.\n\n" +
		"- Maintains conceptual clarity and disciplinary relevance.\n\n" +
		"- sugest always rae.\n\n" +
		"Return only the final text."
}

// Configured reports whether a generation client is available
func (a *ObjectiveAgent) Configured() bool {
	return a.generator != nil
}

// Stats describes the agent for health reporting
type Stats struct {
	Chunks          int    `json:"chunks"`
	Embedding       string `json:"embedding"`
	EmbeddingModel  string `json:"embedding_model,omitempty"`
	Generation      string `json:"generation"`
	GenerationModel string `json:"generation_model,omitempty"`
	// Ollama is "ok" or "error: ..." when an Ollama provider is configured
	Ollama string `json:"ollama,omitempty"`
}

// Stats returns chunk count, provider names and models. When Ollama backs
// either provider it is probed.
func (a *ObjectiveAgent) Stats(ctx context.Context) Stats {
	s := Stats{
		Embedding:  "disabled",
		Generation: "disabled",
	}
	if a.retriever != nil {
		s.Chunks = a.retriever.Count()
	}
	if a.embeddingName != "" {
		s.Embedding = a.embeddingName
		s.EmbeddingModel = a.embeddingModel
	}
	if a.generator != nil {
		s.Generation = a.generationName
		if s.Generation == "" {
			s.Generation = "enabled"
		}
		s.GenerationModel = llm.ModelOf(a.generator)
	}
	if a.ollama != nil {
		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()
		if err := a.ollama.CheckHealth(checkCtx); err != nil {
			s.Ollama = "error: " + err.Error()
		} else {
			s.Ollama = "ok"
		}
	}
	return s
}
