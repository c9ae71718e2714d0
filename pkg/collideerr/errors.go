// Package collideerr holds the sentinel errors shared across this
// module's packages, wrapped with github.com/pkg/errors so callers get a
// stack trace at the point of failure without every package hand-rolling
// its own wrap helper.
package collideerr

import "github.com/pkg/errors"

// ErrInvalidGeometry is returned when a shape's parameters can't describe
// a valid convex body (e.g. a ball with non-positive radius, a degenerate
// triangle).
var ErrInvalidGeometry = errors.New("collide: invalid geometry")

// ErrUnsupportedDispatch is returned when a pair of shape kinds has no
// registered query kernel or narrow-phase generator.
var ErrUnsupportedDispatch = errors.New("collide: unsupported shape pair for this query")

// ErrNotConverged is returned by GJK/EPA when an iterative algorithm
// exhausts its iteration budget without reaching its termination
// tolerance.
var ErrNotConverged = errors.New("collide: algorithm did not converge")

// Wrap attaches msg as context to err, preserving err as the cause.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
