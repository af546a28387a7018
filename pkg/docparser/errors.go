package docparser

import (
	"errors"
	"fmt"
)

// ErrInternal is wrapped by every error caused by an internal consistency
// violation of the parser.
var ErrInternal = errors.New("internal parser error")

// InternalError is raised when the parser's own bookkeeping goes wrong, for
// example when a node is popped that is not on top of the ancestor stack.
// It never results from malformed input.
type InternalError struct {
	File    string
	Line    int
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// Unwrap returns ErrInternal.
func (e *InternalError) Unwrap() error {
	return ErrInternal
}
