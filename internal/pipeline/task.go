package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/recoseq/internal/unit"
)

// Member is anything that can be grouped into a Task: a *unit.Unit or a *Task.
type Member interface {
	Name() string
}

// Task is an unordered group of units that must all execute exactly once per
// event.
type Task struct {
	name       string
	members    []Member
	membership Membership
}

// NewTask groups already-constructed units and tasks under name. Repeated
// members collapse into one; their first position is kept for display.
func NewTask(name string, members ...Member) (*Task, error) {
	if name == "" {
		return nil, fmt.Errorf("task name is required")
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("task %q: %w", name, ErrEmptyComposite)
	}

	t := &Task{name: name, membership: newMembership()}
	seen := make(map[string]struct{}, len(members))

	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("task %q: member #%d is nil", name, i)
		}
		switch v := m.(type) {
		case *unit.Unit:
			if v == nil {
				return nil, fmt.Errorf("task %q: member #%d is nil", name, i)
			}
			if err := t.membership.add(v); err != nil {
				return nil, fmt.Errorf("task %q: unit %q: %w", name, v.Name(), err)
			}
		case *Task:
			if v == nil {
				return nil, fmt.Errorf("task %q: member #%d is nil", name, i)
			}
			if v.name == name {
				return nil, fmt.Errorf("task %q cannot contain itself", name)
			}
			if conflict, err := t.membership.merge(v.membership); err != nil {
				return nil, fmt.Errorf("task %q: unit %q via task %q: %w", name, conflict, v.name, err)
			}
		default:
			return nil, fmt.Errorf("task %q: member %q (%T): %w", name, m.Name(), m, ErrKindMismatch)
		}

		key := fmt.Sprintf("%T/%s", m, m.Name())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		t.members = append(t.members, m)
	}

	return t, nil
}

// Name returns the task's name.
func (t *Task) Name() string { return t.name }

// Members returns the direct members in first-declared order.
func (t *Task) Members() []Member { return slices.Clone(t.members) }

// Membership returns the flattened set of units, including units of nested tasks.
func (t *Task) Membership() Membership { return t.membership }

// Equal reports value equality: same name and same effective membership.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name && t.membership.Equal(other.membership)
}

// String implements fmt.Stringer.
func (t *Task) String() string {
	return fmt.Sprintf("Task(%s: %s)", t.name, strings.Join(t.membership.Names(), ","))
}
