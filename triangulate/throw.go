package triangulate

import "github.com/pkg/errors"

// Threading errors up and down the sweep passes, the monotone split and the
// stack walk would add a ton of complexity to the code. Instead, we use panics,
// and the public API recovers to convert to an error.

type TriangulateError struct {
	error
}

func (e TriangulateError) Unwrap() error {
	return e.error
}

// Panic with a TriangulateError.
func fatalf(format string, args ...interface{}) {
	panic(TriangulateError{errors.Errorf(format, args...)})
}

// Converts a recovered TriangulateError into an error. Any other panic is
// re-raised, since it is a genuine bug rather than bad input.
func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError
		}
		panic(r)
	}
	return nil
}
