package mesh

import "github.com/pkg/errors"

var (
	// ErrInvalidOperation is returned when the arguments to a builder call
	// cannot be used as given: mismatched lengths, too few points, or missing
	// normals or texture coordinates the builder has been told to track.
	ErrInvalidOperation = errors.New("invalid mesh operation")

	// ErrImpossibleGeometry is returned for well formed parameters that describe
	// a shape which cannot exist, like a torus with no tube.
	ErrImpossibleGeometry = errors.New("impossible geometry")
)

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidOperation, format, args...)
}
