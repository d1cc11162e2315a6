package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridTriangles(n int) []Triangle {
	tris := make([]Triangle, 0, n*n*2)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x, y := float64(i), float64(j)
			tris = append(tris,
				Triangle{A: Vec3{x, y, 0}, B: Vec3{x + 1, y, 0}, C: Vec3{x, y + 1, 0}},
				Triangle{A: Vec3{x + 1, y, 0}, B: Vec3{x + 1, y + 1, 0}, C: Vec3{x, y + 1, 0}},
			)
		}
	}
	return tris
}

func TestBuildBVH_PreservesTriangleCountAndDoesNotMutateInput(t *testing.T) {
	tris := gridTriangles(5)
	orig := append([]Triangle(nil), tris...)
	bvh := BuildBVH(tris)
	assert.Len(t, bvh.Triangles, len(tris))
	assert.Equal(t, orig, tris)
}

func TestBVH_IntersectFindsClosestHit(t *testing.T) {
	tris := gridTriangles(10)
	bvh := BuildBVH(tris)

	origin := Vec3{5, 5, 10}
	dir := Vec3{0, 0, -1}
	hit, ok := bvh.Intersect(origin, dir, 0, 1e9)
	require.True(t, ok)
	assert.InDelta(t, 10.0, hit.T, 1e-9)
}

func TestBVH_IntersectMissesOutsideScene(t *testing.T) {
	tris := gridTriangles(5)
	bvh := BuildBVH(tris)
	origin := Vec3{100, 100, 10}
	dir := Vec3{0, 0, -1}
	_, ok := bvh.Intersect(origin, dir, 0, 1e9)
	assert.False(t, ok)
}

func TestBVH_AnyHitMatchesIntersect(t *testing.T) {
	tris := gridTriangles(5)
	bvh := BuildBVH(tris)
	origin := Vec3{1, 1, 10}
	dir := Vec3{0, 0, -1}
	_, ok := bvh.Intersect(origin, dir, 0, 1e9)
	assert.Equal(t, ok, bvh.AnyHit(origin, dir, 0, 1e9))
}
