package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDense_AddSubScaleInto(t *testing.T) {
	a := NewDense(2, 2)
	b := NewDense(2, 2)
	a.Set(0, 0, 1)
	a.Set(0, 1, 2)
	a.Set(1, 0, 3)
	a.Set(1, 1, 4)
	b.Set(0, 0, 10)
	b.Set(0, 1, 20)
	b.Set(1, 0, 30)
	b.Set(1, 1, 40)

	sum := NewDense(2, 2)
	require.NoError(t, a.AddInto(b, sum))
	assert.Equal(t, 11.0, sum.At(0, 0))
	assert.Equal(t, 44.0, sum.At(1, 1))

	diff := NewDense(2, 2)
	require.NoError(t, b.SubInto(a, diff))
	assert.Equal(t, 9.0, diff.At(0, 0))

	scaled := NewDense(2, 2)
	require.NoError(t, a.ScaleInto(2, scaled))
	assert.Equal(t, 2.0, scaled.At(0, 0))
	assert.Equal(t, 8.0, scaled.At(1, 1))
}

func TestDense_MulInto(t *testing.T) {
	a := NewDense(2, 3)
	for i := 0; i < 6; i++ {
		a.Data[i] = float64(i + 1)
	}
	b := NewDense(3, 2)
	for i := 0; i < 6; i++ {
		b.Data[i] = float64(i + 1)
	}
	dst := NewDense(2, 2)
	require.NoError(t, a.MulInto(b, dst))
	assert.Equal(t, 22.0, dst.At(0, 0))
	assert.Equal(t, 28.0, dst.At(0, 1))
	assert.Equal(t, 49.0, dst.At(1, 0))
	assert.Equal(t, 64.0, dst.At(1, 1))
}

func TestDense_ShapeMismatchErrors(t *testing.T) {
	a := NewDense(2, 2)
	b := NewDense(3, 3)
	dst := NewDense(2, 2)
	assert.Error(t, a.AddInto(b, dst))
	assert.Error(t, a.MulInto(b, dst))
}
