package client

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRejected     = errors.New("request rejected")
	ErrNoSession    = errors.New("no session")
)

// APIError is a backend failure. Msg is the server's own text and is meant
// to be shown to the user unchanged.
type APIError struct {
	Code codes.Code
	Msg  string
	Err  error
}

func (e *APIError) Error() string { return e.Msg }

func (e *APIError) Unwrap() error { return e.Err }

// Message returns the text to display for err: the server message for
// backend failures, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Msg
	}
	return err.Error()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		sentinel = ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	case codes.NotFound:
		sentinel = ErrNotFound
	default:
		sentinel = ErrRejected
	}
	return &APIError{Code: st.Code(), Msg: st.Message(), Err: sentinel}
}
