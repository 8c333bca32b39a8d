package engine

import (
	"errors"
	"fmt"
)

// Recoverable conditions returned to callers. Match with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid battle state")
	ErrInvalidRoster = errors.New("invalid roster")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotPending    = errors.New("no forced switch pending")
	ErrInvalidTarget = errors.New("invalid switch target")
)

// ErrInternal marks a broken engine invariant. Unlike the sentinels above it
// signals a programming error, not a caller mistake, and should be logged
// loudly by the calling layer.
var ErrInternal = errors.New("internal battle engine error")

func internalErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
