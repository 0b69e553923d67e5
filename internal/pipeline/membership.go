package pipeline

import (
	"sort"

	"github.com/specialistvlad/recoseq/internal/unit"
)

// Membership is the immutable, unordered set of units a composite resolves to.
type Membership struct {
	units map[string]*unit.Unit
}

func newMembership() Membership {
	return Membership{units: make(map[string]*unit.Unit)}
}

// add inserts u, returning ErrConflictingMember if a different unit with the
// same name is already present.
func (m Membership) add(u *unit.Unit) error {
	if existing, ok := m.units[u.Name()]; ok && existing != u {
		return ErrConflictingMember
	}
	m.units[u.Name()] = u
	return nil
}

func (m Membership) merge(other Membership) (string, error) {
	for name, u := range other.units {
		if err := m.add(u); err != nil {
			return name, err
		}
	}
	return "", nil
}

// Len returns the number of units.
func (m Membership) Len() int { return len(m.units) }

// Contains reports whether a unit with the given name is a member.
func (m Membership) Contains(name string) bool {
	_, ok := m.units[name]
	return ok
}

// Unit returns the member unit with the given name.
func (m Membership) Unit(name string) (*unit.Unit, bool) {
	u, ok := m.units[name]
	return u, ok
}

// Names returns the sorted member names.
func (m Membership) Names() []string {
	names := make([]string, 0, len(m.units))
	for name := range m.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Units returns the member units sorted by name.
func (m Membership) Units() []*unit.Unit {
	units := make([]*unit.Unit, 0, len(m.units))
	for _, name := range m.Names() {
		units = append(units, m.units[name])
	}
	return units
}

// Equal reports whether both sets contain the same unit names. Unit names are
// unique within a namespace, so name equality is membership equality.
func (m Membership) Equal(other Membership) bool {
	if len(m.units) != len(other.units) {
		return false
	}
	for name := range m.units {
		if _, ok := other.units[name]; !ok {
			return false
		}
	}
	return true
}
