package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raementor/raementor/internal/agent"
	"github.com/raementor/raementor/internal/config"
	"github.com/raementor/raementor/internal/logging"
)

// Version is reported by the health endpoint
const Version = "0.1.0"

// Response bodies of the suggestion endpoint
const (
	msgMethodNotAllowed = "Method not allowed"
	msgInvalidJSON      = "Invalid JSON"
	msgInvalidText      = `Missing or invalid "text" field`
	msgNotConfigured    = "GROQ_API_KEY not configured in environment"
	msgModelFailed      = "Model request failed: "
)

// maxBodyBytes caps the suggestion request body
const maxBodyBytes = 1 << 20

// textKeys are the accepted request fields, in priority order
var textKeys = []string{"text", "sugerencia", "texto"}

// Suggester drafts course objectives
type Suggester interface {
	Suggest(ctx context.Context, text string) (string, error)
	Configured() bool
	Stats(ctx context.Context) agent.Stats
}

// Server represents the HTTP API server
type Server struct {
	config *config.Config
	router *gin.Engine
	agent  Suggester
	logger *slog.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, a Suggester, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: gin.New(),
		agent:  a,
		logger: logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.HandleMethodNotAllowed = true
	s.router.Use(gin.Recovery())
	s.router.Use(logging.GinMiddleware(s.logger))
	s.router.Use(corsMiddleware())
	s.router.NoMethod(handleMethodNotAllowed)

	// Health check
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/sugerir-rae", s.handleSuggest)
		api.POST("/sugerir_rae", s.handleSuggest)
	}

	if dir := s.config.Server.StaticDir; dir != "" {
		s.router.StaticFile("/", filepath.Join(dir, "index.html"))
		if assets := filepath.Join(dir, "assets"); isDir(assets) {
			s.router.Static("/assets", assets)
		}
	}
}

// Handler exposes the router for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting raementor API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func handleMethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	stats := s.agent.Stats(c.Request.Context())
	resp := gin.H{
		"status":     "ok",
		"version":    Version,
		"chunks":     stats.Chunks,
		"embedding":  stats.Embedding,
		"generation": stats.Generation,
	}
	if stats.EmbeddingModel != "" {
		resp["embedding_model"] = stats.EmbeddingModel
	}
	if stats.GenerationModel != "" {
		resp["generation_model"] = stats.GenerationModel
	}
	if stats.Ollama != "" {
		resp["ollama"] = stats.Ollama
	}
	c.JSON(http.StatusOK, resp)
}

// handleSuggest drafts a course objective and answers in plain text
func (s *Server) handleSuggest(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.String(http.StatusBadRequest, msgInvalidJSON)
		return
	}

	payload, err := parsePayload(body)
	if err != nil {
		c.String(http.StatusBadRequest, msgInvalidJSON)
		return
	}

	text, ok := extractText(payload)
	if !ok {
		c.String(http.StatusBadRequest, msgInvalidText)
		return
	}

	if !s.agent.Configured() {
		c.String(http.StatusInternalServerError, msgNotConfigured)
		return
	}

	output, err := s.agent.Suggest(c.Request.Context(), text)
	if err != nil {
		if errors.Is(err, agent.ErrGenerationNotConfigured) {
			c.String(http.StatusInternalServerError, msgNotConfigured)
			return
		}
		detail := err
		var genErr *agent.GenerationError
		if errors.As(err, &genErr) {
			detail = genErr.Err
		}
		s.logger.Error("model request failed", "error", detail)
		c.String(http.StatusInternalServerError, msgModelFailed+detail.Error())
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(output))
}

// parsePayload decodes the request body as a JSON object. An empty body is an
// empty object.
func parsePayload(body []byte) (map[string]any, error) {
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// extractText returns the first truthy value among textKeys. The value must be
// a string; anything else is rejected rather than skipped.
func extractText(payload map[string]any) (string, bool) {
	for _, key := range textKeys {
		v := payload[key]
		if !truthy(v) {
			continue
		}
		s, ok := v.(string)
		return s, ok
	}
	return "", false
}

// truthy mirrors JSON value truthiness: null, false, 0, "", [] and {} are false
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
