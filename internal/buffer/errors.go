package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrLineOutOfRange reports a line index outside [0, Lines()).
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrCorruptLine reports a line that fails to decode even though
	// no unvalidated edit touched it. The buffer invariant is broken;
	// callers should treat this as fatal.
	ErrCorruptLine = errors.New("corrupt hex line")
)

// DecodeError reports a user-edited line that no longer decodes to
// bytes. It is recoverable: the user can re-edit the line.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
