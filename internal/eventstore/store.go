package eventstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/recoseq/internal/inputtag"
)

var (
	// ErrUndeclared is returned when a unit reads or writes a product it did not declare.
	ErrUndeclared = errors.New("product not declared by unit")
	// ErrNotFound is returned when a product has not been published.
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyPublished is returned when a product is published twice.
	ErrAlreadyPublished = errors.New("product already published")
)

// Event holds the products and unit states of a single iteration.
type Event struct {
	iteration int

	products sync.Map // Key: inputtag.Tag, Value: any
	statuses sync.Map // Key: unit name, Value: Status
	errors   sync.Map // Key: unit name, Value: error
}

// New creates an empty Event for the given iteration index.
func New(iteration int) *Event {
	return &Event{iteration: iteration}
}

// Iteration returns the index of the iteration this event belongs to.
func (e *Event) Iteration() int {
	return e.iteration
}

// Put publishes a product. A tag can be published once per event.
func (e *Event) Put(tag inputtag.Tag, value any) error {
	if _, loaded := e.products.LoadOrStore(tag, value); loaded {
		return fmt.Errorf("%s: %w", tag, ErrAlreadyPublished)
	}
	return nil
}

// Get returns a published product.
func (e *Event) Get(tag inputtag.Tag) (any, error) {
	v, ok := e.products.Load(tag)
	if !ok {
		return nil, fmt.Errorf("%s: %w", tag, ErrNotFound)
	}
	return v, nil
}

// Tags returns every published tag, sorted.
func (e *Event) Tags() []inputtag.Tag {
	var tags []inputtag.Tag
	e.products.Range(func(k, _ any) bool {
		tags = append(tags, k.(inputtag.Tag))
		return true
	})
	return inputtag.Sort(tags)
}

// SetStatus records the execution status of a unit.
func (e *Event) SetStatus(unitName string, status Status) {
	e.statuses.Store(unitName, status)
}

// Status returns the execution status of a unit. Units never touched are Pending.
func (e *Event) Status(unitName string) Status {
	s, ok := e.statuses.Load(unitName)
	if !ok {
		return Pending
	}
	return s.(Status)
}

// SetError records the failure of a unit and marks it Failed.
func (e *Event) SetError(unitName string, err error) {
	e.errors.Store(unitName, err)
	e.SetStatus(unitName, Failed)
}

// Error returns the recorded failure of a unit, if any.
func (e *Event) Error(unitName string) error {
	err, ok := e.errors.Load(unitName)
	if !ok {
		return nil
	}
	return err.(error)
}
