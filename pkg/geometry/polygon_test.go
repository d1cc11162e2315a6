package geometry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unitSquare() Polygon {
	return Polygon{Outer: []Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}}
}

func TestPolygon_NormalAndArea(t *testing.T) {
	sq := unitSquare()
	n := sq.Normal()
	assert.InDelta(t, 1.0, n.Z, 1e-9)
	assert.InDelta(t, 1.0, sq.Area(), 1e-9)
}

func TestPolygon_AreaSubtractsHoles(t *testing.T) {
	sq := unitSquare()
	sq.Inner = [][]Vec3{{
		{0.25, 0.25, 0}, {0.75, 0.25, 0}, {0.75, 0.75, 0}, {0.25, 0.75, 0},
	}}
	assert.InDelta(t, 1.0-0.25, sq.Area(), 1e-9)
}

func TestPolygon_Triangulate(t *testing.T) {
	sq := unitSquare()
	tris := sq.Triangulate(1, 2)
	assert.Len(t, tris, 2)
	var total float64
	for _, tri := range tris {
		assert.Equal(t, 1, tri.FrontMaterial)
		assert.Equal(t, 2, tri.BackMaterial)
		total += tri.Area()
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestPolygon_SamplePointsRejectsHoleInterior(t *testing.T) {
	sq := unitSquare()
	sq.Inner = [][]Vec3{{
		{0.25, 0.25, 0}, {0.75, 0.25, 0}, {0.75, 0.75, 0}, {0.25, 0.75, 0},
	}}
	rng := rand.New(rand.NewSource(1))
	points := sq.SamplePoints(200, rng)
	assert.Len(t, points, 200)
	for _, p := range points {
		inHole := p.X > 0.25 && p.X < 0.75 && p.Y > 0.25 && p.Y < 0.75
		assert.False(t, inHole, "sampled point %v fell inside the hole", p)
	}
}

func TestPolygon_TriangulateDegenerateReturnsNil(t *testing.T) {
	p := Polygon{Outer: []Vec3{{0, 0, 0}, {1, 0, 0}}}
	assert.Nil(t, p.Triangulate(0, 0))
}
