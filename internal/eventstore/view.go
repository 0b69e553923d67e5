package eventstore

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/unit"
)

// View is one unit's window onto an Event.
type View struct {
	event *Event
	unit  *unit.Unit

	mu        sync.Mutex
	published map[string]struct{}
}

// ViewFor returns a View restricted to the declarations of u.
func (e *Event) ViewFor(u *unit.Unit) *View {
	return &View{event: e, unit: u, published: make(map[string]struct{})}
}

// Unit returns the unit the view is bound to.
func (v *View) Unit() *unit.Unit {
	return v.unit
}

// Iteration returns the index of the underlying event.
func (v *View) Iteration() int {
	return v.event.iteration
}

// Get reads a product the unit declared in its consumes list.
func (v *View) Get(tag inputtag.Tag) (any, error) {
	if !v.unit.Consumed(tag) {
		return nil, fmt.Errorf("unit %q reads %s: %w", v.unit.Name(), tag, ErrUndeclared)
	}
	return v.event.Get(tag)
}

// Inputs returns every declared input keyed by tag.
func (v *View) Inputs() (map[inputtag.Tag]any, error) {
	inputs := make(map[inputtag.Tag]any)
	for _, tag := range v.unit.Consumes() {
		val, err := v.event.Get(tag)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", v.unit.Name(), err)
		}
		inputs[tag] = val
	}
	return inputs, nil
}

// Put publishes one of the unit's declared product instances.
func (v *View) Put(instance string, value any) error {
	if !v.unit.ProducesInstance(instance) {
		return fmt.Errorf("unit %q writes %s: %w", v.unit.Name(), inputtag.New(v.unit.Name(), instance), ErrUndeclared)
	}
	if err := v.event.Put(inputtag.New(v.unit.Name(), instance), value); err != nil {
		return err
	}
	v.mu.Lock()
	v.published[instance] = struct{}{}
	v.mu.Unlock()
	return nil
}

// Unpublished returns the declared instances not yet put, in declaration order.
func (v *View) Unpublished() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	var missing []string
	for _, tag := range v.unit.Produces() {
		if _, ok := v.published[tag.Instance]; !ok {
			missing = append(missing, tag.Instance)
		}
	}
	return missing
}
