package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bull/pdfchat/internal/embedding"
	"github.com/bull/pdfchat/internal/gateway"
	"github.com/bull/pdfchat/internal/ingest"
	"github.com/bull/pdfchat/internal/pdfext"
)

// handleInfo reports service metadata and the available endpoints.
func (s *Server) handleInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Message:   "RAG PDF Chatbot System",
		Version:   Version,
		PDFLoaded: s.store.Loaded(),
		Endpoints: map[string]string{
			"upload_pdf":   "POST /upload-pdf",
			"ask_question": "POST /ask",
			"health":       "GET /health",
		},
	})
}

// handleHealth reports process-local readiness for operational monitoring.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		ModelLoaded: s.embedder.Ready(),
		PDFLoaded:   s.store.Loaded(),
		ChunksCount: s.store.ChunkCount(),
	})
}

// handleUpload ingests an uploaded PDF and installs it as the active corpus.
func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("open upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("read upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read upload")
	}

	result, err := s.pipeline.Ingest(c.Request().Context(), fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnsupportedFile):
			return echo.NewHTTPError(http.StatusBadRequest, "File must be PDF")
		case errors.Is(err, ingest.ErrNoText), errors.Is(err, pdfext.ErrUnreadable):
			return echo.NewHTTPError(http.StatusBadRequest, "No text found in PDF")
		case errors.Is(err, embedding.ErrNoAPIKey):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "embedding service not configured")
		default:
			s.logger.Error("ingest failed", "filename", fileHeader.Filename, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "processing error")
		}
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Message:         "File uploaded and processed successfully",
		Filename:        result.Filename,
		CorpusID:        result.CorpusID,
		NumChunks:       result.NumChunks,
		TotalCharacters: result.TotalCharacters,
	})
}

// handleAsk answers a question, augmented with retrieved context when a
// corpus is loaded. Gateway failures degrade into an answer-shaped payload
// rather than an error status.
func (s *Server) handleAsk(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Question) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question must not be blank")
	}

	ctx := c.Request().Context()

	retrieved, err := s.retriever.Retrieve(ctx, req.Question)
	if err != nil {
		s.logger.Error("retrieval failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "error answering question")
	}

	assembled, used := s.assembler.Assemble(req.Question, retrieved.Chunks)

	answer, err := s.completer.Complete(ctx, assembled)
	if err != nil {
		s.logger.Warn("completion failed", "error", err)
		answer = describeGatewayFailure(err)
	}

	return c.JSON(http.StatusOK, AskResponse{
		Question:    req.Question,
		Answer:      answer,
		SourcesUsed: used,
		HasContext:  used > 0,
	})
}

// describeGatewayFailure turns a classified gateway error into the
// user-visible answer text.
func describeGatewayFailure(err error) string {
	if errors.Is(err, gateway.ErrMalformedResponse) {
		return fmt.Sprintf("Error parsing response: %v", err)
	}
	return fmt.Sprintf("Error connecting to model: %v", err)
}
