package pipeline

import (
	"fmt"

	"github.com/specialistvlad/recoseq/internal/unit"
)

// Resolver maps names to previously defined units, tasks and sequences.
// registry.Namespace is the standard implementation.
type Resolver interface {
	Lookup(name string) (any, bool)
}

// ResolveTask builds a Task from member names. Every undefined name is
// reported at once in an *UnresolvedReferenceError; nothing is built in that
// case.
func ResolveTask(r Resolver, name string, refs ...string) (*Task, error) {
	members := make([]Member, 0, len(refs))
	var missing []string
	var kindErr error

	for _, ref := range refs {
		def, ok := r.Lookup(ref)
		if !ok {
			missing = append(missing, ref)
			continue
		}
		switch v := def.(type) {
		case *unit.Unit:
			members = append(members, v)
		case *Task:
			members = append(members, v)
		default:
			if kindErr == nil {
				kindErr = fmt.Errorf("task %q: %q is a %s, not a unit or task: %w", name, ref, kindName(def), ErrKindMismatch)
			}
		}
	}

	if len(missing) > 0 {
		return nil, &UnresolvedReferenceError{Kind: "task", Composite: name, Names: missing}
	}
	if kindErr != nil {
		return nil, kindErr
	}
	return NewTask(name, members...)
}

// ResolveSequence builds a Sequence from task and sequence names, in order.
func ResolveSequence(r Resolver, name string, refs ...string) (*Sequence, error) {
	items := make([]Item, 0, len(refs))
	var missing []string
	var kindErr error

	for _, ref := range refs {
		def, ok := r.Lookup(ref)
		if !ok {
			missing = append(missing, ref)
			continue
		}
		switch v := def.(type) {
		case *Task:
			items = append(items, v)
		case *Sequence:
			items = append(items, v)
		default:
			if kindErr == nil {
				kindErr = fmt.Errorf("sequence %q: %q is a %s, not a task or sequence: %w", name, ref, kindName(def), ErrKindMismatch)
			}
		}
	}

	if len(missing) > 0 {
		return nil, &UnresolvedReferenceError{Kind: "sequence", Composite: name, Names: missing}
	}
	if kindErr != nil {
		return nil, kindErr
	}
	return NewSequence(name, items...)
}

func kindName(def any) string {
	switch def.(type) {
	case *unit.Unit:
		return "unit"
	case *unit.ESProducer:
		return "esproducer"
	case *Task:
		return "task"
	case *Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("%T", def)
	}
}
