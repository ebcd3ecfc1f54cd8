package gateway

import "errors"

// Classified gateway failures. None of these are fatal to the process: the
// HTTP layer converts them into an answer-shaped payload describing the
// problem.
var (
	// ErrNoAPIKey indicates no completion credential is configured.
	ErrNoAPIKey = errors.New("completion API key not set")
	// ErrAuth indicates the upstream rejected the credential.
	ErrAuth = errors.New("completion service rejected credentials")
	// ErrUnreachable indicates a transport or upstream failure.
	ErrUnreachable = errors.New("completion service unreachable")
	// ErrMalformedResponse indicates the upstream reply carried no answer.
	ErrMalformedResponse = errors.New("malformed completion response")
)
