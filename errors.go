package divquant

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config fails validation before
// any allocation takes place.
var ErrInvalidConfig = errors.New("divquant: invalid configuration")

// ErrInvariantViolation is returned by SplitCluster when the
// reconstructed active buffer's size does not match the recorded size
// of the cluster being split. It indicates a bug in the clustering
// logic, not a problem with caller input.
var ErrInvariantViolation = errors.New("divquant: internal invariant violation")

func invalidConfigf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func invariantViolationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
