package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bull/pdfchat/internal/corpus"
	"github.com/bull/pdfchat/internal/embedding"
	"github.com/bull/pdfchat/internal/ingest"
	"github.com/bull/pdfchat/internal/prompt"
	"github.com/bull/pdfchat/internal/retriever"
)

// Version is reported by the info endpoint.
const Version = "1.0.0"

// Completer sends an assembled prompt to the completion service. The
// gateway client implements this.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Port           string
	AllowedOrigins []string
	MaxUploadBytes int64
}

// Server wires the HTTP routes to the core components.
type Server struct {
	echo      *echo.Echo
	cfg       Config
	store     *corpus.Store
	pipeline  *ingest.Pipeline
	retriever *retriever.Retriever
	assembler *prompt.Assembler
	completer Completer
	embedder  embedding.Embedder
	logger    *slog.Logger
}

// NewServer creates the HTTP server. All dependencies are required except
// the logger, which falls back to slog.Default.
func NewServer(
	cfg Config,
	store *corpus.Store,
	pipeline *ingest.Pipeline,
	ret *retriever.Retriever,
	assembler *prompt.Assembler,
	completer Completer,
	embedder embedding.Embedder,
	logger *slog.Logger,
) (*Server, error) {
	if store == nil || pipeline == nil || ret == nil || assembler == nil || completer == nil || embedder == nil {
		return nil, fmt.Errorf("all server dependencies are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	if cfg.MaxUploadBytes > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.MaxUploadBytes)))
	}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:      e,
		cfg:       cfg,
		store:     store,
		pipeline:  pipeline,
		retriever: ret,
		assembler: assembler,
		completer: completer,
		embedder:  embedder,
		logger:    logger,
	}
	s.registerRoutes()
	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleInfo)
	s.echo.GET("/health", s.handleHealth)
	s.echo.POST("/upload-pdf", s.handleUpload)
	s.echo.POST("/ask", s.handleAsk)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := ":" + s.cfg.Port
	s.logger.Info("starting http server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
