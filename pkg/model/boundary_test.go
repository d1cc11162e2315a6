package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundary_ConstructorsSetExpectedKind(t *testing.T) {
	assert.Equal(t, BoundaryOutdoor, Outdoor().Kind)
	assert.Equal(t, BoundaryGround, Ground().Kind)
	assert.Equal(t, BoundaryAdiabatic, Adiabatic().Kind)

	toSpace := ToSpace("zone-1")
	assert.Equal(t, BoundarySpace, toSpace.Kind)
	assert.Equal(t, "zone-1", toSpace.SpaceName)

	ambient := AtAmbient(18.5)
	assert.Equal(t, BoundaryAmbientTemperature, ambient.Kind)
	assert.Equal(t, 18.5, ambient.AmbientTemperature)
}

func TestBoundary_IsExteriorOnlyForOutdoor(t *testing.T) {
	assert.True(t, Outdoor().IsExterior())
	assert.False(t, Ground().IsExterior())
	assert.False(t, ToSpace("zone-1").IsExterior())
	assert.False(t, Adiabatic().IsExterior())
}
