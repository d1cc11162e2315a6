package weather

import (
	"testing"

	"github.com/germolinal/simple-sub002/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReinhartSky_Mf1HasExpectedPatchCount(t *testing.T) {
	sky := NewReinhartSky(1)
	require.Equal(t, 145+1, sky.NPatches())
}

func TestReinhartSky_PatchOfZenithAndGround(t *testing.T) {
	sky := NewReinhartSky(1)
	zenith := sky.PatchOf(geometry.Vec3{X: 0, Y: 0, Z: 1})
	assert.Equal(t, sky.NPatches()-2, zenith)

	ground := sky.PatchOf(geometry.Vec3{X: 0, Y: 0, Z: -1})
	assert.Equal(t, sky.GroundPatchIndex(), ground)
}

func TestPerezSkyVector_SumIsPositiveUnderDaylight(t *testing.T) {
	sky := NewReinhartSky(1)
	sun := SunPosition(Date{Month: 6, Day: 21, Hour: 12}, SiteDetails{Latitude: -0.704, Longitude: 3.05, StandardMeridian: 3.054})
	vec := PerezSkyVector(sky, sun, 600, 150)
	var total float64
	for _, v := range vec {
		require.GreaterOrEqual(t, v, 0.0)
		total += v
	}
	assert.Greater(t, total, 0.0)
}

func TestPerezSkyVector_ZeroAtNight(t *testing.T) {
	sky := NewReinhartSky(1)
	sun := SunPosition(Date{Month: 6, Day: 21, Hour: 0}, SiteDetails{Latitude: -0.704, Longitude: 3.05, StandardMeridian: 3.054})
	vec := PerezSkyVector(sky, sun, 0, 0)
	for _, v := range vec {
		assert.Equal(t, 0.0, v)
	}
}
