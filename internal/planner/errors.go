package planner

import (
	"errors"

	"github.com/alexanderramin/wanderplan/internal/llm"
)

// ErrValidation indicates required request fields are missing or
// invalid before a request is even built. Caught client-side; the
// request never reaches the collaborator.
var ErrValidation = errors.New("invalid request")

// ErrorKind is the user-facing failure taxonomy. Every planner error
// maps onto exactly one kind; none of them crash the editing session.
type ErrorKind string

const (
	// KindConfig: missing credential, fatal; request never sent.
	KindConfig ErrorKind = "CONFIG_ERROR"
	// KindRequest: transport failure reaching the collaborator or a
	// non-success status; may be retried manually.
	KindRequest ErrorKind = "REQUEST_ERROR"
	// KindFormat: the collaborator responded but its payload was not
	// parseable as the expected JSON shape.
	KindFormat ErrorKind = "AI_FORMAT_ERROR"
	// KindValidation: request rejected client-side before submission.
	KindValidation ErrorKind = "VALIDATION_ERROR"
	// KindNone: no error.
	KindNone ErrorKind = ""
)

// Kind classifies an error from Generate or ReflowDay. Format errors
// are distinguished from transport failures because they indicate a
// prompt or model problem rather than connectivity.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, llm.ErrNoCredential):
		return KindConfig
	case errors.Is(err, llm.ErrInvalidOutput):
		return KindFormat
	default:
		return KindRequest
	}
}
