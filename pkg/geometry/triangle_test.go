package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangle() Triangle {
	return Triangle{
		A: Vec3{0, 0, 0},
		B: Vec3{1, 0, 0},
		C: Vec3{0, 1, 0},
	}
}

func TestTriangle_AreaNormalCentroid(t *testing.T) {
	tri := unitTriangle()
	assert.InDelta(t, 0.5, tri.Area(), 1e-12)
	assert.Equal(t, Vec3{0, 0, 1}, tri.Normal())
	assert.InDelta(t, 1.0/3.0, tri.Centroid().X, 1e-12)
}

func TestIntersectTriangle_FrontHit(t *testing.T) {
	tri := unitTriangle()
	origin := Vec3{0.2, 0.2, 1}
	dir := Vec3{0, 0, -1}
	hit, ok := IntersectTriangle(origin, dir, tri, 0, 1e9)
	require.True(t, ok)
	assert.True(t, hit.Front)
	assert.InDelta(t, 1.0, hit.T, 1e-9)
}

func TestIntersectTriangle_BackHitFlipsNormalAndMaterial(t *testing.T) {
	tri := unitTriangle()
	tri.FrontMaterial = 1
	tri.BackMaterial = 2
	origin := Vec3{0.2, 0.2, -1}
	dir := Vec3{0, 0, 1}
	hit, ok := IntersectTriangle(origin, dir, tri, 0, 1e9)
	require.True(t, ok)
	assert.False(t, hit.Front)
	assert.Equal(t, 2, hit.MaterialID)
}

func TestIntersectTriangle_MissOutsideEdges(t *testing.T) {
	tri := unitTriangle()
	origin := Vec3{5, 5, 1}
	dir := Vec3{0, 0, -1}
	_, ok := IntersectTriangle(origin, dir, tri, 0, 1e9)
	assert.False(t, ok)
}

func TestIntersectTriangle_MissBehindRayOrigin(t *testing.T) {
	tri := unitTriangle()
	origin := Vec3{0.2, 0.2, -1}
	dir := Vec3{0, 0, -1}
	_, ok := IntersectTriangle(origin, dir, tri, 0, 1e9)
	assert.False(t, ok)
}
