package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedReference matches every *UnresolvedReferenceError via errors.Is.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrKindMismatch is returned when a name resolves to a definition of the wrong kind.
	ErrKindMismatch = errors.New("reference has the wrong kind")
	// ErrEmptyComposite is returned when a task or sequence is built without members.
	ErrEmptyComposite = errors.New("task or sequence has no members")
	// ErrConflictingMember is returned when two different units share a name inside one composite.
	ErrConflictingMember = errors.New("conflicting members with the same name")
)

// UnresolvedReferenceError reports names referenced by a task or sequence
// that are not defined in the configuration namespace.
type UnresolvedReferenceError struct {
	// Kind is "task" or "sequence".
	Kind string
	// Composite is the name of the task or sequence being constructed.
	Composite string
	// Names lists every undefined name, in reference order.
	Names []string
	// Location optionally points at the configuration source, e.g. "reco.hcl:12,3-40".
	Location string
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	msg := fmt.Sprintf("%s %q: unresolved reference to %s", e.Kind, e.Composite, strings.Join(quoted, ", "))
	if e.Location != "" {
		msg += " at " + e.Location
	}
	return msg
}

// Is lets errors.Is(err, ErrUnresolvedReference) match.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}
