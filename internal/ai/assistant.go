package ai

import (
	"context"
	"errors"
	"fmt"
)

// ResponseFormat selects how the model should shape its reply.
type ResponseFormat string

const (
	// FormatText requests a free-form text reply.
	FormatText ResponseFormat = "text"
	// FormatJSON requests JSON-constrained decoding.
	FormatJSON ResponseFormat = "json"
)

// Completer sends a system/user prompt pair to a generative model and returns
// the raw text of the reply. Implementations wrap every transport, timeout,
// authentication or empty-response failure in *GatewayError so callers can
// route to their deterministic fallbacks. Retry policy belongs to callers,
// never to the Completer.
type Completer interface {
	Complete(ctx context.Context, system, user string, format ResponseFormat) (string, error)
}

// GatewayError marks a failure between the application and the model provider.
// It is always recoverable: no caller may let it terminate a session.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("model gateway: %s", e.Op)
	}
	return fmt.Sprintf("model gateway: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsGatewayError reports whether err is or wraps a *GatewayError.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
