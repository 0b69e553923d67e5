package handlers

import (
	"context"
	"testing"

	"github.com/specialistvlad/recoseq/internal/eventstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *eventstore.View, any) error { return nil }

type testModule struct{ types []string }

func (m testModule) Register(r *Handlers) {
	for _, t := range m.types {
		r.Register(t, &Handler{Fn: noop})
	}
}

func TestHandlers_RegisterAndLookup(t *testing.T) {
	r := New()
	r.Install(testModule{types: []string{"MTDRecHitProducer", "MTDClusterProducer"}})

	h, err := r.Lookup("MTDRecHitProducer")
	require.NoError(t, err)
	assert.NotNil(t, h.Fn)
	assert.Equal(t, []string{"MTDClusterProducer", "MTDRecHitProducer"}, r.Types())

	_, err = r.Lookup("Unknown")
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestHandlers_Fallback(t *testing.T) {
	r := New()
	fallback := &Handler{Fn: noop}
	r.SetFallback(fallback)

	h, err := r.Lookup("Anything")
	require.NoError(t, err)
	assert.Same(t, fallback, h)

	r.SetFallback(nil)
	_, err = r.Lookup("Anything")
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestHandlers_ProgrammerErrorsPanic(t *testing.T) {
	r := New()
	r.Register("A", &Handler{Fn: noop})

	assert.PanicsWithValue(t, "handler for unit type 'A' already registered", func() {
		r.Register("A", &Handler{Fn: noop})
	})
	assert.Panics(t, func() { r.Register("B", &Handler{}) })
	assert.Panics(t, func() { r.Register("C", nil) })
	assert.Panics(t, func() { r.SetFallback(&Handler{}) })
}
