package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RegisterAssignsStableSequentialSlots(t *testing.T) {
	h := NewHeader()
	s0, err := h.Register("thermal", EntitySurface, FieldNodeTemperature, "wall-1", 0)
	require.NoError(t, err)
	s1, err := h.Register("thermal", EntitySurface, FieldNodeTemperature, "wall-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, s0)
	assert.Equal(t, 1, s1)
	assert.Equal(t, 2, h.Len())
}

func TestHeader_RegisterAfterFinalizeFails(t *testing.T) {
	h := NewHeader()
	_, err := h.Register("thermal", EntitySpace, FieldDryBulbTemperature, "zone-1", -1)
	require.NoError(t, err)
	h.Finalize()

	_, err = h.Register("thermal", EntitySpace, FieldDryBulbTemperature, "zone-2", -1)
	assert.Error(t, err)
}

func TestState_FinalizeBuildsZeroedVectorOfHeaderLength(t *testing.T) {
	h := NewHeader()
	h.Register("airflow", EntitySpace, FieldInfiltrationVolume, "zone-1", -1)
	h.Register("airflow", EntitySpace, FieldInfiltrationTemperature, "zone-1", -1)
	s := h.Finalize()
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 0.0, s.Get(0))
	assert.Equal(t, 0.0, s.Get(1))
}

func TestState_SetGetRoundTrip(t *testing.T) {
	h := NewHeader()
	h.Register("thermal", EntitySpace, FieldDryBulbTemperature, "zone-1", -1)
	s := h.Finalize()
	s.Set(0, 21.5)
	assert.Equal(t, 21.5, s.Get(0))
}

func TestState_FindSlotResolvesByTuple(t *testing.T) {
	h := NewHeader()
	h.Register("thermal", EntitySurface, FieldNodeTemperature, "wall-1", 0)
	h.Register("thermal", EntitySurface, FieldNodeTemperature, "wall-1", 1)
	s := h.Finalize()

	slot, err := s.FindSlot(EntitySurface, FieldNodeTemperature, "wall-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	_, err = s.FindSlot(EntitySurface, FieldNodeTemperature, "wall-1", 99)
	assert.Error(t, err)
}

func TestState_AllFiniteDetectsNaNAndInf(t *testing.T) {
	h := NewHeader()
	h.Register("thermal", EntitySpace, FieldDryBulbTemperature, "zone-1", -1)
	h.Register("thermal", EntitySpace, FieldDryBulbTemperature, "zone-2", -1)
	s := h.Finalize()
	s.Set(0, 20.0)
	s.Set(1, 21.0)
	ok, bad := s.AllFinite()
	assert.True(t, ok)
	assert.Equal(t, -1, bad)

	s.Set(1, math.Inf(1))
	ok, bad = s.AllFinite()
	assert.False(t, ok)
	assert.Equal(t, 1, bad)
}

func TestCell_AssignOnceThenRejectsSecondAssignment(t *testing.T) {
	c := NewCell()
	_, set := c.Slot()
	assert.False(t, set)

	assert.True(t, c.Assign(3))
	idx, set := c.Slot()
	assert.True(t, set)
	assert.Equal(t, 3, idx)

	assert.False(t, c.Assign(4))
	idx, _ = c.Slot()
	assert.Equal(t, 3, idx)
}

func TestCell_MustSlotPanicsWhenUnassigned(t *testing.T) {
	c := NewCell()
	assert.Panics(t, func() { c.MustSlot() })
}
