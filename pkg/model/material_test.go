package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruction_NLayersAndTotalThickness(t *testing.T) {
	c := concreteConstruction()
	assert.Equal(t, 1, c.NLayers())
	assert.InDelta(t, 0.2, c.TotalThickness(), 1e-12)
}

func TestConstruction_SetDiscretizationOnlyOnce(t *testing.T) {
	c := concreteConstruction()
	require.Nil(t, c.Discretization())

	err := c.SetDiscretization(Discretization{NodesPerLayer: []int{3}, TotalNodes: 3, SubTimestepSeconds: 60})
	require.NoError(t, err)
	require.NotNil(t, c.Discretization())
	assert.Equal(t, 3, c.Discretization().TotalNodes)

	err = c.SetDiscretization(Discretization{TotalNodes: 5})
	assert.ErrorContains(t, err, "already assigned")
	assert.Equal(t, 3, c.Discretization().TotalNodes)
}

func TestConstruction_IsTransparentReflectsSubstanceOptics(t *testing.T) {
	opaque := concreteConstruction()
	assert.False(t, opaque.IsTransparent())

	glassSub := NewNormalSubstance("glass", 1.0, 840, 2500)
	glassSub.Optical = &OpticalProperties{SolarTransmittance: 0.7}
	glass := &Construction{
		Name:      "single-pane",
		Materials: []*Material{{Name: "glass-layer", Substance: glassSub, Thickness: 0.006}},
	}
	assert.True(t, glass.IsTransparent())
}

func TestSubstance_Diffusivity(t *testing.T) {
	s := NewNormalSubstance("concrete", 1.7, 900, 2300)
	assert.InDelta(t, 1.7/(2300*900), s.Diffusivity(), 1e-15)

	zero := NewNormalSubstance("degenerate", 1.0, 0, 0)
	assert.Equal(t, 0.0, zero.Diffusivity())
}

func TestGas_PropertiesLookup(t *testing.T) {
	assert.InDelta(t, 1.2250, GasAir.Density(), 1e-9)
	assert.InDelta(t, 1006.0, GasAir.SpecificHeat(), 1e-9)
}
