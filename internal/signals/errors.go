package signals

import (
	"errors"
	"fmt"
)

// PanicError carries a value recovered from a panicking callback.
type PanicError struct {
	Target string
	Signal string
	Owner  string
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("listener %s for %s/%s panicked: %v", e.Owner, e.Target, e.Signal, e.Value)
}

// IsPanic reports whether err came from a recovered callback panic.
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
