// Package errs holds the two error categories the triangulation core can
// raise: runtime errors, which are returned normally and are safe for a
// caller to inspect with errors.Is, and logic errors, which indicate a bug in
// the sweep or monotone triangulator and are carried as panics up to a single
// recovering boundary.
//
// Threading a logic error up through every recursive call in the sweep would
// add a lot of ceremony for a condition that should never happen outside of a
// bug. Instead we panic, and the public API recovers to convert it to an
// error without retrying.
package errs

import "github.com/pkg/errors"

// LogicError marks a panic value produced by Fatalf. Triangulate recovers
// exactly this type at its boundary; any other panic value is a genuine bug
// and is left to propagate.
type LogicError struct {
	cause error
}

func (e LogicError) Error() string { return e.cause.Error() }
func (e LogicError) Unwrap() error { return e.cause }

// Fatalf panics with a LogicError built from the given message.
func Fatalf(format string, args ...interface{}) {
	panic(LogicError{errors.Errorf(format, args...)})
}

// Recover converts a recovered LogicError into an error. Any other recovered
// value is re-panicked, since it indicates a real crash, not a triangulation
// failure.
func Recover(r interface{}) error {
	if r == nil {
		return nil
	}
	if le, ok := r.(LogicError); ok {
		return le
	}
	panic(r)
}

// Runtime error categories, returned normally from Assemble and the
// validators in internal/validate. Wrapped with errors.Wrapf at the call
// site to attach the offending index, so errors.Is still matches the
// sentinel.
var (
	ErrDuplicateVertices       = errors.New("duplicate_vertices")
	ErrNonmanifoldEdge         = errors.New("nonmanifold_edge")
	ErrOddHalfedgeCount        = errors.New("odd_halfedge_count")
	ErrHalfShouldBeForward     = errors.New("half_should_be_forward")
	ErrHalfShouldBeBackward    = errors.New("half_should_be_backward")
	ErrForwardBackwardMismatch = errors.New("forward_backward_mismatch")
	ErrNot2Manifold            = errors.New("not_2_manifold")
	ErrInterfaceEdgeAdded      = errors.New("interface_edge_added")
	ErrTriangulationFolded     = errors.New("triangulation_folded")
)
