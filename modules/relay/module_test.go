package relay

import (
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/recoseq/internal/eventstore"
	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func recHitsView(t *testing.T) (*eventstore.Event, *eventstore.View) {
	t.Helper()
	u, err := unit.New(unit.Definition{
		Name:     "mtdRecHits",
		Type:     "MTDRecHitProducer",
		Consumes: []inputtag.Tag{inputtag.New("mtdUncalibratedRecHits", "FTLBarrel"), inputtag.New("mtdUncalibratedRecHits", "FTLEndcap")},
		Produces: []string{"FTLBarrel", "FTLEndcap"},
	})
	require.NoError(t, err)

	ev := eventstore.New(4)
	require.NoError(t, ev.Put(inputtag.New("mtdUncalibratedRecHits", "FTLBarrel"), 1))
	require.NoError(t, ev.Put(inputtag.New("mtdUncalibratedRecHits", "FTLEndcap"), 2))
	return ev, ev.ViewFor(u)
}

func TestOnRun_PublishesEveryInstance(t *testing.T) {
	ev, view := recHitsView(t)
	require.NoError(t, OnRun(context.Background(), view, map[string]cty.Value{"thresholdToKeep": cty.NumberFloatVal(1)}))
	assert.Empty(t, view.Unpublished())

	v, err := ev.Get(inputtag.New("mtdRecHits", "FTLEndcap"))
	require.NoError(t, err)
	assert.Equal(t, Product{Unit: "mtdRecHits", Instance: "FTLEndcap", Iteration: 4, Inputs: 2}, v)
	assert.Equal(t, "mtdRecHits:FTLEndcap#4(2 inputs)", v.(Product).String())
}

func TestOnRun_Delay(t *testing.T) {
	t.Run("waits", func(t *testing.T) {
		_, view := recHitsView(t)
		start := time.Now()
		require.NoError(t, OnRun(context.Background(), view, map[string]cty.Value{"delay": cty.StringVal("10ms")}))
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		_, view := recHitsView(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := OnRun(ctx, view, map[string]cty.Value{"delay": cty.StringVal("1h")})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid", func(t *testing.T) {
		_, view := recHitsView(t)
		err := OnRun(context.Background(), view, map[string]cty.Value{"delay": cty.StringVal("soon")})
		assert.ErrorContains(t, err, `param "delay"`)
	})
}

func TestModule_Register(t *testing.T) {
	r := handlers.New()
	(&Module{Fallback: true}).Register(r)

	h, err := r.Lookup(TypeName)
	require.NoError(t, err)
	assert.True(t, h.RawParams)

	fallback, err := r.Lookup("MTDClusterProducer")
	require.NoError(t, err)
	assert.Same(t, h, fallback)
}
