package reactive

import (
	"errors"
	"fmt"
)

var (
	// ErrPanic wraps a producer panic whose value is not an error
	ErrPanic = errors.New("reactive: producer panicked")
)

// panicToError converts a recovered panic value into the error delivered
// through OnError. Errors pass through untouched.
func panicToError(rec any) error {
	switch v := rec.(type) {
	case error:
		return v
	case string:
		return fmt.Errorf("%w: %s", ErrPanic, v)
	default:
		return fmt.Errorf("%w: %v", ErrPanic, v)
	}
}
