package model

import (
	"testing"

	"github.com/germolinal/simple-sub002/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concreteConstruction() *Construction {
	sub := NewNormalSubstance("concrete", 1.7, 900, 2300)
	return &Construction{
		Name:      "concrete-wall",
		Materials: []*Material{{Name: "concrete-layer", Substance: sub, Thickness: 0.2}},
	}
}

func squareSurface(name string, front, back Boundary) *Surface {
	return &Surface{
		Name:         name,
		Construction: concreteConstruction(),
		Front:        front,
		Back:         back,
		Polygon: geometry.Polygon{Outer: []geometry.Vec3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		}},
	}
}

func TestModel_ValidateRejectsNonPositiveVolume(t *testing.T) {
	m := New()
	m.Spaces["zone-1"] = &Space{Name: "zone-1", Volume: 0}
	err := m.Validate()
	assert.ErrorContains(t, err, "non-positive volume")
}

func TestModel_ValidateRejectsUnresolvedSpaceBoundary(t *testing.T) {
	m := New()
	m.Surfaces["wall-1"] = squareSurface("wall-1", Outdoor(), ToSpace("missing-zone"))
	err := m.Validate()
	assert.ErrorContains(t, err, "references undefined space")
}

func TestModel_ValidateRejectsSurfaceWithoutConstruction(t *testing.T) {
	m := New()
	m.Surfaces["wall-1"] = &Surface{Name: "wall-1", Front: Outdoor(), Back: Adiabatic()}
	err := m.Validate()
	assert.ErrorContains(t, err, "has no construction")
}

func TestModel_ValidatePassesOnConsistentModel(t *testing.T) {
	m := New()
	m.Spaces["zone-1"] = &Space{Name: "zone-1", Volume: 30}
	m.Surfaces["wall-1"] = squareSurface("wall-1", Outdoor(), ToSpace("zone-1"))
	require.NoError(t, m.Validate())
}

func TestModel_SortedNamesAreDeterministicAcrossCalls(t *testing.T) {
	m := New()
	for _, name := range []string{"zone-c", "zone-a", "zone-b"} {
		m.Spaces[name] = &Space{Name: name, Volume: 10}
	}
	first := m.SortedSpaceNames()
	second := m.SortedSpaceNames()
	assert.Equal(t, []string{"zone-a", "zone-b", "zone-c"}, first)
	assert.Equal(t, first, second)
}

func TestModel_AllSurfaceLikeIncludesFenestrationsInSortedOrder(t *testing.T) {
	m := New()
	m.Surfaces["wall-b"] = squareSurface("wall-b", Outdoor(), Adiabatic())
	m.Surfaces["wall-a"] = squareSurface("wall-a", Outdoor(), Adiabatic())
	m.Fenestrations["window-a"] = &Fenestration{Surface: *squareSurface("window-a", Outdoor(), Adiabatic())}

	all := m.AllSurfaceLike()
	require.Len(t, all, 3)
	names := []string{all[0].Name, all[1].Name, all[2].Name}
	assert.Equal(t, []string{"wall-a", "wall-b", "window-a"}, names)
}
