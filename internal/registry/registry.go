package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/recoseq/internal/pipeline"
	"github.com/specialistvlad/recoseq/internal/unit"
)

// ErrDuplicateDefinition is returned when a name is defined twice.
var ErrDuplicateDefinition = errors.New("duplicate definition")

// Kind identifies what a name in the namespace refers to.
type Kind int

const (
	// KindUnit is a processing unit.
	KindUnit Kind = iota
	// KindESProducer is a conditions provider.
	KindESProducer
	// KindTask is an unordered unit group.
	KindTask
	// KindSequence is an ordered task chain.
	KindSequence
)

// String returns the configuration keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindESProducer:
		return "esproducer"
	case KindTask:
		return "task"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type entry struct {
	kind  Kind
	value any
}

// Namespace is a thread-safe name → definition map. Definition order is
// preserved per kind.
type Namespace struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   map[Kind][]string
}

// New creates an empty Namespace.
func New() *Namespace {
	return &Namespace{
		entries: make(map[string]entry),
		order:   make(map[Kind][]string),
	}
}

func (ns *Namespace) define(name string, kind Kind, value any) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if existing, ok := ns.entries[name]; ok {
		return fmt.Errorf("%s %q already defined as a %s: %w", kind, name, existing.kind, ErrDuplicateDefinition)
	}
	ns.entries[name] = entry{kind: kind, value: value}
	ns.order[kind] = append(ns.order[kind], name)
	return nil
}

// DefineUnit registers a unit under its name.
func (ns *Namespace) DefineUnit(u *unit.Unit) error {
	return ns.define(u.Name(), KindUnit, u)
}

// DefineESProducer registers a conditions provider under its name.
func (ns *Namespace) DefineESProducer(p *unit.ESProducer) error {
	return ns.define(p.Name(), KindESProducer, p)
}

// DefineTask registers a task. Every unit of the task must already be
// defined in this namespace as the very same value.
func (ns *Namespace) DefineTask(t *pipeline.Task) error {
	if err := ns.checkMembers("task", t.Name(), t.Membership()); err != nil {
		return err
	}
	return ns.define(t.Name(), KindTask, t)
}

// DefineSequence registers a sequence. Every unit reachable from the
// sequence must already be defined in this namespace.
func (ns *Namespace) DefineSequence(s *pipeline.Sequence) error {
	if err := ns.checkMembers("sequence", s.Name(), s.Membership()); err != nil {
		return err
	}
	return ns.define(s.Name(), KindSequence, s)
}

func (ns *Namespace) checkMembers(kind, name string, m pipeline.Membership) error {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	var missing []string
	for _, u := range m.Units() {
		e, ok := ns.entries[u.Name()]
		if !ok || e.value != any(u) {
			missing = append(missing, u.Name())
		}
	}
	if len(missing) > 0 {
		return &pipeline.UnresolvedReferenceError{Kind: kind, Composite: name, Names: missing}
	}
	return nil
}

// Lookup implements pipeline.Resolver.
func (ns *Namespace) Lookup(name string) (any, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	e, ok := ns.entries[name]
	return e.value, ok
}

// KindOf returns the kind of a defined name.
func (ns *Namespace) KindOf(name string) (Kind, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	e, ok := ns.entries[name]
	return e.kind, ok
}

// Unit returns the unit defined under name.
func (ns *Namespace) Unit(name string) (*unit.Unit, bool) {
	v, _ := ns.Lookup(name)
	u, ok := v.(*unit.Unit)
	return u, ok
}

// Task returns the task defined under name.
func (ns *Namespace) Task(name string) (*pipeline.Task, bool) {
	v, _ := ns.Lookup(name)
	t, ok := v.(*pipeline.Task)
	return t, ok
}

// Sequence returns the sequence defined under name.
func (ns *Namespace) Sequence(name string) (*pipeline.Sequence, bool) {
	v, _ := ns.Lookup(name)
	s, ok := v.(*pipeline.Sequence)
	return s, ok
}

// Names returns the names defined with the given kind, in definition order.
func (ns *Namespace) Names(kind Kind) []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return append([]string(nil), ns.order[kind]...)
}

// Units returns all units in definition order.
func (ns *Namespace) Units() []*unit.Unit {
	return collect[*unit.Unit](ns, KindUnit)
}

// ESProducers returns all conditions providers in definition order.
func (ns *Namespace) ESProducers() []*unit.ESProducer {
	return collect[*unit.ESProducer](ns, KindESProducer)
}

// Tasks returns all tasks in definition order.
func (ns *Namespace) Tasks() []*pipeline.Task {
	return collect[*pipeline.Task](ns, KindTask)
}

// Sequences returns all sequences in definition order.
func (ns *Namespace) Sequences() []*pipeline.Sequence {
	return collect[*pipeline.Sequence](ns, KindSequence)
}

// ProvidersOf returns the esproducers that supply the given record.
func (ns *Namespace) ProvidersOf(record string) []*unit.ESProducer {
	var providers []*unit.ESProducer
	for _, p := range ns.ESProducers() {
		if p.ProvidesRecord(record) {
			providers = append(providers, p)
		}
	}
	return providers
}

// Len returns the total number of definitions.
func (ns *Namespace) Len() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return len(ns.entries)
}

func collect[T any](ns *Namespace, kind Kind) []T {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	out := make([]T, 0, len(ns.order[kind]))
	for _, name := range ns.order[kind] {
		out = append(out, ns.entries[name].value.(T))
	}
	return out
}
