package unit

import (
	"testing"

	"github.com/specialistvlad/recoseq/internal/inputtag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew_Valid(t *testing.T) {
	def := Definition{
		Name:       "mtdRecHits",
		Type:       "MTDRecHitProducer",
		Consumes:   []inputtag.Tag{inputtag.New("mtdUncalibratedRecHits", "FTLBarrel")},
		Produces:   []string{"FTLBarrel", "FTLEndcap"},
		Conditions: []string{"MTDTimeCalibration"},
		Params:     map[string]cty.Value{"thresholdToKeep": cty.NumberFloatVal(1.0)},
	}
	u, err := New(def)
	require.NoError(t, err)

	assert.Equal(t, "mtdRecHits", u.Name())
	assert.Equal(t, "MTDRecHitProducer", u.Type())
	assert.Equal(t, []inputtag.Tag{
		inputtag.New("mtdRecHits", "FTLBarrel"),
		inputtag.New("mtdRecHits", "FTLEndcap"),
	}, u.Produces())
	assert.True(t, u.Consumed(inputtag.New("mtdUncalibratedRecHits", "FTLBarrel")))
	assert.False(t, u.Consumed(inputtag.New("mtdUncalibratedRecHits", "FTLEndcap")))
	assert.Equal(t, []string{"thresholdToKeep"}, u.ParamNames())
	assert.True(t, u.ParamsValue().Type().IsObjectType())

	// Mutating the definition after construction must not leak into the unit.
	def.Produces[0] = "changed"
	def.Params["thresholdToKeep"] = cty.NumberIntVal(7)
	assert.True(t, u.ProducesInstance("FTLBarrel"))
	assert.True(t, u.Params()["thresholdToKeep"].RawEquals(cty.NumberFloatVal(1.0)))
}

func TestNew_DefaultProduct(t *testing.T) {
	u, err := New(Definition{Name: "mtdClusters", Type: "MTDClusterProducer"})
	require.NoError(t, err)
	assert.Equal(t, []inputtag.Tag{inputtag.New("mtdClusters", "")}, u.Produces())
	assert.Equal(t, cty.EmptyObjectVal, u.ParamsValue())
}

func TestNew_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		def    Definition
		errMsg string
	}{
		{"bad name", Definition{Name: "a.b", Type: "T"}, "invalid unit name"},
		{"missing type", Definition{Name: "a"}, "type is required"},
		{"bad instance", Definition{Name: "a", Type: "T", Produces: []string{"x-y"}}, "invalid product instance"},
		{"duplicate instance", Definition{Name: "a", Type: "T", Produces: []string{"x", "x"}}, "declared twice"},
		{"self consumption", Definition{Name: "a", Type: "T", Consumes: []inputtag.Tag{inputtag.New("a", "")}}, "its own product"},
		{"empty record", Definition{Name: "a", Type: "T", Conditions: []string{""}}, "empty conditions record"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.def)
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestNew_DeduplicatesConsumes(t *testing.T) {
	tag := inputtag.New("mtdDigis", "FTLBarrel")
	u, err := New(Definition{Name: "a", Type: "T", Consumes: []inputtag.Tag{tag, tag}})
	require.NoError(t, err)
	assert.Len(t, u.Consumes(), 1)
}

func TestNewESProducer(t *testing.T) {
	p, err := NewESProducer("MTDTimeCalibESProducer", "MTDTimeCalibESProducer", []string{"MTDTimeCalibration"})
	require.NoError(t, err)
	assert.True(t, p.ProvidesRecord("MTDTimeCalibration"))
	assert.False(t, p.ProvidesRecord("MTDGeometry"))

	_, err = NewESProducer("x", "X", nil)
	require.ErrorContains(t, err, "at least one record")
}
