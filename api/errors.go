package api

import (
	"errors"
	"net/http"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
)

var (
	ErrNoCredential = errors.New("authentication required but no credential is held")
	ErrUnauthorized = errors.New("credential rejected by the server")
	ErrTransport    = errors.New("transport failure")
	ErrServer       = errors.New("server reported failure")
)

// ErrorKind classifies a failed call
type ErrorKind int

const (
	// KindPrecondition failures are raised before any network attempt
	KindPrecondition ErrorKind = iota + 1
	KindTransport
	KindServer
	// KindUnauthorized is a 401; the session has already been reset
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that fails. Message is a
// human-readable string suitable for direct display.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels and maps well-known statuses onto the shared
// error values.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNoCredential:
		return e.Kind == KindPrecondition
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrServer:
		return e.Kind == KindServer
	case ErrUnauthorized, mallerrors.ErrNotAuthenticated:
		return e.Kind == KindUnauthorized
	case mallerrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case mallerrors.ErrForbidden:
		return e.Status == http.StatusForbidden
	case mallerrors.ErrInvalidInput:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// Message extracts the display message of err, falling back to err.Error()
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
