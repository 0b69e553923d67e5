package pipeline

import (
	"fmt"
	"slices"
	"strings"
)

// Item is anything a Sequence can chain: a *Task or another *Sequence.
type Item interface {
	Name() string
	Membership() Membership
}

// Sequence is an ordered chain of tasks exposed as one invokable unit.
type Sequence struct {
	name       string
	items      []Item
	membership Membership
}

// NewSequence chains already-constructed tasks and sequences under name.
// Wrapping never changes membership: the result's membership is the union of
// its items' memberships.
func NewSequence(name string, items ...Item) (*Sequence, error) {
	if name == "" {
		return nil, fmt.Errorf("sequence name is required")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("sequence %q: %w", name, ErrEmptyComposite)
	}

	s := &Sequence{name: name, membership: newMembership()}
	for i, item := range items {
		switch v := item.(type) {
		case nil:
			return nil, fmt.Errorf("sequence %q: item #%d is nil", name, i)
		case *Task:
			if v == nil {
				return nil, fmt.Errorf("sequence %q: item #%d is nil", name, i)
			}
		case *Sequence:
			if v == nil {
				return nil, fmt.Errorf("sequence %q: item #%d is nil", name, i)
			}
			if v.name == name {
				return nil, fmt.Errorf("sequence %q cannot contain itself", name)
			}
		default:
			return nil, fmt.Errorf("sequence %q: item %q (%T): %w", name, item.Name(), item, ErrKindMismatch)
		}
		if conflict, err := s.membership.merge(item.Membership()); err != nil {
			return nil, fmt.Errorf("sequence %q: unit %q via %q: %w", name, conflict, item.Name(), err)
		}
		s.items = append(s.items, item)
	}
	return s, nil
}

// Name returns the sequence's name.
func (s *Sequence) Name() string { return s.name }

// Items returns the direct items in chain order.
func (s *Sequence) Items() []Item { return slices.Clone(s.items) }

// Tasks returns the chain flattened to tasks, nested sequences expanded in
// place. A task appearing twice is listed once, at its first position.
func (s *Sequence) Tasks() []*Task {
	var tasks []*Task
	seen := make(map[string]struct{})
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, item := range items {
			switch v := item.(type) {
			case *Task:
				if _, ok := seen[v.name]; ok {
					continue
				}
				seen[v.name] = struct{}{}
				tasks = append(tasks, v)
			case *Sequence:
				walk(v.items)
			}
		}
	}
	walk(s.items)
	return tasks
}

// Membership returns the union of the chain's memberships.
func (s *Sequence) Membership() Membership { return s.membership }

// Equal reports value equality: same name, same chain of item names and same
// effective membership.
func (s *Sequence) Equal(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.name != other.name || len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i].Name() != other.items[i].Name() {
			return false
		}
	}
	return s.membership.Equal(other.membership)
}

// String implements fmt.Stringer.
func (s *Sequence) String() string {
	names := make([]string, len(s.items))
	for i, item := range s.items {
		names[i] = item.Name()
	}
	return fmt.Sprintf("Sequence(%s: %s)", s.name, strings.Join(names, "+"))
}
