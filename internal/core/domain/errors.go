package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInactiveUser       = errors.New("inactive user")
	ErrForbidden          = errors.New("not enough permissions")
	ErrItemNotFound       = errors.New("item not found")
)

// Violation describes one failed field constraint.
// Loc is the path to the field, e.g. ["body", "price"].
type Violation struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError aggregates field constraint violations.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, strings.Join(v.Loc, ".")+": "+v.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a single-violation ValidationError.
func NewValidationError(loc []string, msg string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Loc: loc, Msg: msg, Type: "value_error"}}}
}
