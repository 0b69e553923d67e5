package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/recoseq/internal/eventstore"
)

// ErrNoHandler is returned by Lookup when a type has no handler and no
// fallback is set.
var ErrNoHandler = errors.New("no handler registered for unit type")

// Func executes one unit for one iteration. It reads its inputs from and
// publishes its products to view. params is the value returned by the
// handler's NewParams, populated from the unit's params block, or nil.
type Func func(ctx context.Context, view *eventstore.View, params any) error

// Handler holds the Go parts of a unit type.
type Handler struct {
	// NewParams returns a pointer to a params struct with defaults applied.
	// Nil means the type accepts no params.
	NewParams func() any
	// RawParams makes the executor pass the unit's params undecoded, as a
	// map[string]cty.Value. NewParams is ignored when set.
	RawParams bool
	// Fn is the execution function.
	Fn Func
}

// Module is implemented by packages that contribute handlers.
type Module interface {
	Register(r *Handlers)
}

// Handlers holds all the registered handlers.
type Handlers struct {
	mu       sync.RWMutex
	all      map[string]*Handler
	fallback *Handler
}

// New creates an empty Handlers registry.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]*Handler),
	}
}

// Register binds a handler to a unit type. Registering a type twice or
// registering a handler without Fn is a programming error and panics.
func (r *Handlers) Register(unitType string, handler *Handler) {
	if handler == nil || handler.Fn == nil {
		panic(fmt.Sprintf("handler for unit type '%s' has no function", unitType))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.all[unitType]; exists {
		panic(fmt.Sprintf("handler for unit type '%s' already registered", unitType))
	}
	slog.Debug("Registering unit handler.", "type", unitType)
	r.all[unitType] = handler
}

// SetFallback sets the handler used for types with no registration.
func (r *Handlers) SetFallback(handler *Handler) {
	if handler != nil && handler.Fn == nil {
		panic("fallback handler has no function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = handler
}

// Lookup returns the handler for a unit type, or the fallback.
func (r *Handlers) Lookup(unitType string) (*Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.all[unitType]; ok {
		return h, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%q: %w", unitType, ErrNoHandler)
}

// Types returns the sorted list of registered unit types.
func (r *Handlers) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.all))
	for t := range r.all {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Install registers every module's handlers.
func (r *Handlers) Install(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}
