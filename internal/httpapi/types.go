// Package httpapi exposes the question-answering service over HTTP.
package httpapi

// AskRequest is the request body for POST /ask.
type AskRequest struct {
	// Question is the natural-language question to answer.
	Question string `json:"question"`
}

// AskResponse is the response body for POST /ask. Answer always carries
// text: gateway failures are reported inside it rather than failing the
// request.
type AskResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	// SourcesUsed is the number of context chunks included in the prompt.
	SourcesUsed int `json:"sources_used"`
	// HasContext reports whether the prompt was augmented at all.
	HasContext bool `json:"has_context"`
}

// UploadResponse is the response body for POST /upload-pdf.
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	// CorpusID identifies the installed corpus generation.
	CorpusID string `json:"corpus_id"`
	// NumChunks is the number of retrievable chunks created.
	NumChunks int `json:"num_chunks"`
	// TotalCharacters is the length of the extracted text.
	TotalCharacters int `json:"total_characters"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	// ModelLoaded reports embedder readiness.
	ModelLoaded bool `json:"model_loaded"`
	// PDFLoaded reports whether a corpus is active.
	PDFLoaded bool `json:"pdf_loaded"`
	// ChunksCount is the active corpus's chunk count.
	ChunksCount int `json:"chunks_count"`
}

// InfoResponse is the response body for GET /.
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	PDFLoaded bool              `json:"pdf_loaded"`
	Endpoints map[string]string `json:"endpoints"`
}
