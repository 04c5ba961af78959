package services

import "github.com/dmitrijs2005/gamekeeper/internal/common"

// InputError is a validation failure whose message is safe to show to the
// caller. It matches common.ErrInvalidArgument with errors.Is.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Unwrap() error { return common.ErrInvalidArgument }

func invalid(msg string) error {
	return &InputError{Msg: msg}
}
