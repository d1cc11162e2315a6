package model

import (
	"math"
	"testing"

	"github.com/germolinal/simple-sub002/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_AreaOfUnitSquare(t *testing.T) {
	s := squareSurface("wall-1", Outdoor(), Adiabatic())
	assert.InDelta(t, 1.0, s.Area(), 1e-9)
}

func TestSurface_TiltHorizontalRoof(t *testing.T) {
	s := squareSurface("roof-1", Outdoor(), Adiabatic())
	assert.InDelta(t, 0.0, s.Tilt(), 1e-9)
}

func TestSurface_TiltVerticalWall(t *testing.T) {
	s := &Surface{
		Name:         "wall-vertical",
		Construction: concreteConstruction(),
		Front:        Outdoor(),
		Back:         Adiabatic(),
	}
	s.Polygon.Outer = []geometry.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1},
	}
	assert.InDelta(t, math.Pi/2, s.Tilt(), 1e-9)
}

func TestSurface_NNodesZeroBeforeDiscretization(t *testing.T) {
	s := squareSurface("wall-1", Outdoor(), Adiabatic())
	assert.Equal(t, 0, s.NNodes())

	require.NoError(t, s.Construction.SetDiscretization(Discretization{TotalNodes: 5}))
	assert.Equal(t, 5, s.NNodes())
}
