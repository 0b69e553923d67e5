package scheduler

import (
	"context"
	"testing"

	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/specialistvlad/recoseq/internal/pipeline"
	"github.com/specialistvlad/recoseq/internal/registry"
	"github.com/specialistvlad/recoseq/internal/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(units []*unit.Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Name()
	}
	return out
}

func define(t *testing.T, ns *registry.Namespace, def unit.Definition) *unit.Unit {
	t.Helper()
	if def.Type == "" {
		def.Type = "Producer"
	}
	u, err := unit.New(def)
	require.NoError(t, err)
	require.NoError(t, ns.DefineUnit(u))
	return u
}

func tags(t *testing.T, raws ...string) []inputtag.Tag {
	t.Helper()
	out, err := inputtag.ParseAll(raws)
	require.NoError(t, err)
	return out
}

// fastTiming builds the four-unit reconstruction chain, declared in reverse.
func fastTiming(t *testing.T) (*registry.Namespace, *pipeline.Sequence) {
	t.Helper()
	ns := registry.New()
	calib, err := unit.NewESProducer("calib", "MTDTimeCalibESProducer", []string{"MTDTimeCalibration"})
	require.NoError(t, err)
	require.NoError(t, ns.DefineESProducer(calib))

	trk := define(t, ns, unit.Definition{Name: "mtdTrackingRecHits", Consumes: tags(t, "mtdClusters:FTLBarrel", "mtdClusters:FTLEndcap")})
	clu := define(t, ns, unit.Definition{Name: "mtdClusters", Consumes: tags(t, "mtdRecHits:FTLBarrel", "mtdRecHits:FTLEndcap"), Produces: []string{"FTLBarrel", "FTLEndcap"}})
	rec := define(t, ns, unit.Definition{Name: "mtdRecHits", Consumes: tags(t, "mtdUncalibratedRecHits:FTLBarrel", "mtdUncalibratedRecHits:FTLEndcap"), Produces: []string{"FTLBarrel", "FTLEndcap"}, Conditions: []string{"MTDTimeCalibration"}})
	unc := define(t, ns, unit.Definition{Name: "mtdUncalibratedRecHits", Consumes: tags(t, "mix:FTLBarrel", "mix:FTLEndcap"), Produces: []string{"FTLBarrel", "FTLEndcap"}})

	task, err := pipeline.NewTask("fastTimingLocalRecoTask", trk, clu, rec, unc)
	require.NoError(t, err)
	require.NoError(t, ns.DefineTask(task))
	seq, err := pipeline.NewSequence("fastTimingLocalReco", task)
	require.NoError(t, err)
	require.NoError(t, ns.DefineSequence(seq))
	return ns, seq
}

func TestSchedule_OrdersByDataDependencies(t *testing.T) {
	ns, seq := fastTiming(t)

	plan, err := Schedule(context.Background(), ns, seq)
	require.NoError(t, err)

	assert.Equal(t, []string{"mtdUncalibratedRecHits", "mtdRecHits", "mtdClusters", "mtdTrackingRecHits"}, names(plan.Order))
	require.Len(t, plan.Levels, 4)
	assert.Equal(t, tags(t, "mix:FTLBarrel", "mix:FTLEndcap"), plan.External)
	assert.True(t, plan.IsExternal(inputtag.New("mix", "FTLBarrel")))
	assert.False(t, plan.IsExternal(inputtag.New("mtdRecHits", "FTLBarrel")))
	assert.Equal(t, map[string][]string{"MTDTimeCalibration": {"calib"}}, plan.Conditions)
	assert.Equal(t, []string{"mtdRecHits"}, plan.Dependencies("mtdClusters"))
	assert.Equal(t, []string{"mtdTrackingRecHits"}, plan.Dependents("mtdClusters"))
	assert.Equal(t, 4, plan.Len())
}

func TestSchedule_WrappingDoesNotChangePlan(t *testing.T) {
	ns, seq := fastTiming(t)
	outer, err := pipeline.NewSequence("outer", seq)
	require.NoError(t, err)

	inner, err := Schedule(context.Background(), ns, seq)
	require.NoError(t, err)
	wrapped, err := Schedule(context.Background(), ns, outer)
	require.NoError(t, err)

	assert.Equal(t, names(inner.Order), names(wrapped.Order))
}

func TestSchedule_ChainOrderIsNotAConstraint(t *testing.T) {
	ns := registry.New()
	a := define(t, ns, unit.Definition{Name: "a"})
	b := define(t, ns, unit.Definition{Name: "b", Consumes: tags(t, "a")})

	consumerFirst, err := pipeline.NewTask("consumers", b)
	require.NoError(t, err)
	producerLast, err := pipeline.NewTask("producers", a)
	require.NoError(t, err)
	seq, err := pipeline.NewSequence("s", consumerFirst, producerLast)
	require.NoError(t, err)

	plan, err := Schedule(context.Background(), ns, seq)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(plan.Order))
	assert.Empty(t, plan.External)
}

func TestSchedule_IndependentUnitsShareAWave(t *testing.T) {
	ns := registry.New()
	root := define(t, ns, unit.Definition{Name: "root"})
	left := define(t, ns, unit.Definition{Name: "left", Consumes: tags(t, "root")})
	right := define(t, ns, unit.Definition{Name: "right", Consumes: tags(t, "root")})
	join := define(t, ns, unit.Definition{Name: "join", Consumes: tags(t, "left", "right")})

	task, err := pipeline.NewTask("t", join, right, left, root)
	require.NoError(t, err)
	seq, err := pipeline.NewSequence("s", task)
	require.NoError(t, err)

	plan, err := Schedule(context.Background(), ns, seq)
	require.NoError(t, err)
	require.Len(t, plan.Levels, 3)
	assert.Equal(t, []string{"left", "right"}, names(plan.Levels[1]))
}

func TestSchedule_Errors(t *testing.T) {
	t.Run("missing condition", func(t *testing.T) {
		ns := registry.New()
		u := define(t, ns, unit.Definition{Name: "u", Conditions: []string{"Geometry", "Calibration"}})
		task, err := pipeline.NewTask("t", u)
		require.NoError(t, err)
		seq, err := pipeline.NewSequence("s", task)
		require.NoError(t, err)

		_, err = Schedule(context.Background(), ns, seq)
		require.ErrorIs(t, err, ErrMissingCondition)
		assert.ErrorContains(t, err, "Geometry")
		assert.ErrorContains(t, err, "Calibration")
	})

	t.Run("unknown sequence", func(t *testing.T) {
		_, err := ScheduleByName(context.Background(), registry.New(), "nope")
		assert.ErrorIs(t, err, ErrUnknownSequence)
	})

	t.Run("name is a task", func(t *testing.T) {
		ns, _ := fastTiming(t)
		_, err := ScheduleByName(context.Background(), ns, "fastTimingLocalRecoTask")
		assert.ErrorIs(t, err, pipeline.ErrKindMismatch)
	})

	t.Run("by name", func(t *testing.T) {
		ns, _ := fastTiming(t)
		plan, err := ScheduleByName(context.Background(), ns, "fastTimingLocalReco")
		require.NoError(t, err)
		assert.Equal(t, "fastTimingLocalReco", plan.Sequence.Name())
	})
}
