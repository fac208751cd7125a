package observability

import (
	"context"
	"errors"

	"alfredoptarigan/ats-analyzer/internal/scoring"
	"alfredoptarigan/ats-analyzer/internal/session"
)

const (
	ErrorExtraction      = "extraction"
	ErrorRender          = "render"
	ErrorInvalidArgument = "invalid_argument"
	ErrorSessionNotFound = "session_not_found"
	ErrorAI              = "ai"
	ErrorTimeout         = "timeout"
	ErrorUnknown         = "unknown"
)

// kinded is implemented by typed pipeline errors that know their own label.
type kinded interface {
	ErrorKind() string
}

// ClassifyError maps an error to a stable label for counters and logs.
func ClassifyError(err error) string {
	if err == nil {
		return ErrorUnknown
	}

	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}

	switch {
	case errors.Is(err, scoring.ErrInvalidThreshold):
		return ErrorInvalidArgument
	case errors.Is(err, session.ErrNotFound):
		return ErrorSessionNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorTimeout
	}
	return ErrorUnknown
}
