package llm

import "errors"

var (
	// ErrNoCredential indicates no API key is configured. The request
	// is never sent.
	ErrNoCredential = errors.New("no generation api key configured")

	// ErrUnavailable indicates the generation endpoint could not be
	// reached.
	ErrUnavailable = errors.New("generation endpoint unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrInvalidOutput indicates the model responded but its payload
	// could not be parsed into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrModelsExhausted indicates every model in the fallback list
	// failed.
	ErrModelsExhausted = errors.New("all fallback models failed")
)
