package model

// MetaOptions carries the site parameters needed for solar geometry.
// All angles are in radians.
type MetaOptions struct {
	Latitude         float64
	Longitude        float64
	StandardMeridian float64
	Elevation        float64 // meters
}

// SolarOptions tunes the optical engine's pre-compute.
type SolarOptions struct {
	NSolarIrradiancePoints int // sensor points per surface
	NAmbientSamples        int // ambient rays per sensor
	SkyDiscretization      int // Reinhart mf factor
	MaxDepth               int // ray bounce cap before Russian roulette
	LimitWeight            float64
	OpticalDataPath        string // optional cache path; empty disables caching
}

// DefaultSolarOptions returns reasonable defaults matching the Reinhart
// mf=1 sky (145 patches + ground) and a modest sample count suitable for
// quick iteration; production runs raise NAmbientSamples substantially.
func DefaultSolarOptions() SolarOptions {
	return SolarOptions{
		NSolarIrradiancePoints: 1,
		NAmbientSamples:        1000,
		SkyDiscretization:      1,
		MaxDepth:               4,
		LimitWeight:            1e-3,
	}
}
