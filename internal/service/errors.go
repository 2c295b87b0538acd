package service

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSessionExpired    = errors.New("session expired")
	ErrMissingApiKey     = errors.New("missing api key")
	ErrInvalidApiKey     = errors.New("invalid api key")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidOAuthState = errors.New("invalid oauth state")

	// ErrBackendUnconfigured means no Ollama endpoint is set for public traffic.
	ErrBackendUnconfigured = errors.New("ollama backend not configured")
)

// BackendError wraps a failed model call on the public paths so callers
// can show its cause.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return "backend call failed: " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
