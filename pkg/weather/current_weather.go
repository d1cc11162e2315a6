package weather

import "math"

// stefanBoltzmann is sigma, in W/(m2 K4).
const stefanBoltzmann = 5.670374419e-8

// CurrentWeather is the instantaneous weather vector every physics module
// reads through a Weather provider. Optional fields that an EPW file did
// not carry are represented as a pointer; Synthetic sources may leave them
// nil and let DeriveHorizontalIR fill the gap.
type CurrentWeather struct {
	Date Date

	DryBulbTemperature  float64 // C
	DewPointTemperature float64 // C

	GlobalHorizontalIrradiance  *float64 // Wh/m2
	DirectNormalIrradiance      *float64 // Wh/m2
	DiffuseHorizontalIrradiance *float64 // Wh/m2

	WindSpeed     float64 // m/s, as measured at the weather station
	WindDirection float64 // radians, 0 = north

	HorizontalIR *float64 // Wh/m2; derived from sky cover and dew point if nil

	OpaqueSkyCover   float64 // 0-10 (EPW tenths-of-sky convention)
	RelativeHumidity float64 // 0-1
	Pressure         float64 // Pa
}

// Weather abstracts over EPW files and synthetic schedules alike.
type Weather interface {
	// CurrentWeather returns the (possibly interpolated) weather at date.
	CurrentWeather(date Date) (CurrentWeather, error)
}

// DeriveHorizontalIR computes the Clark-Allen-correlation estimate of
// horizontal infrared radiation intensity from dry-bulb temperature,
// dew-point temperature, and opaque sky cover, used whenever a weather
// source does not carry a measured value directly.
func (c CurrentWeather) DeriveHorizontalIR() float64 {
	n := c.OpaqueSkyCover
	dewPointK := c.DewPointTemperature + 273.15
	dryBulbK := c.DryBulbTemperature + 273.15

	clearSkyEmissivity := 0.787 + 0.764*math.Log(dewPointK/273.0)
	skyEmissivity := clearSkyEmissivity * (1.0 + 0.0224*n - 0.0035*n*n + 0.00028*n*n*n)

	return stefanBoltzmann * skyEmissivity * dryBulbK * dryBulbK * dryBulbK * dryBulbK
}

// EffectiveHorizontalIR returns the measured HorizontalIR if present, else
// the Clark-Allen-derived estimate.
func (c CurrentWeather) EffectiveHorizontalIR() float64 {
	if c.HorizontalIR != nil {
		return *c.HorizontalIR
	}
	return c.DeriveHorizontalIR()
}

// EffectiveDirectNormal returns the measured DirectNormalIrradiance, or 0
// if the weather source left it unset.
func (c CurrentWeather) EffectiveDirectNormal() float64 {
	if c.DirectNormalIrradiance != nil {
		return *c.DirectNormalIrradiance
	}
	return 0
}

// EffectiveDiffuseHorizontal returns the measured DiffuseHorizontalIrradiance,
// or 0 if the weather source left it unset.
func (c CurrentWeather) EffectiveDiffuseHorizontal() float64 {
	if c.DiffuseHorizontalIrradiance != nil {
		return *c.DiffuseHorizontalIrradiance
	}
	return 0
}

// Interpolate linearly interpolates between c and o at parameter x in
// [0, 1], including the Date itself. Optional fields interpolate only when
// both samples carry them; otherwise the result leaves that field nil.
func (c CurrentWeather) Interpolate(o CurrentWeather, x float64) CurrentWeather {
	lerp := func(a, b float64) float64 { return a + x*(b-a) }
	lerpOpt := func(a, b *float64) *float64 {
		if a == nil || b == nil {
			return nil
		}
		v := lerp(*a, *b)
		return &v
	}
	return CurrentWeather{
		Date:                        c.Date.Interpolate(o.Date, x),
		DryBulbTemperature:          lerp(c.DryBulbTemperature, o.DryBulbTemperature),
		DewPointTemperature:         lerp(c.DewPointTemperature, o.DewPointTemperature),
		GlobalHorizontalIrradiance:  lerpOpt(c.GlobalHorizontalIrradiance, o.GlobalHorizontalIrradiance),
		DirectNormalIrradiance:      lerpOpt(c.DirectNormalIrradiance, o.DirectNormalIrradiance),
		DiffuseHorizontalIrradiance: lerpOpt(c.DiffuseHorizontalIrradiance, o.DiffuseHorizontalIrradiance),
		WindSpeed:                   lerp(c.WindSpeed, o.WindSpeed),
		WindDirection:               lerp(c.WindDirection, o.WindDirection),
		HorizontalIR:                lerpOpt(c.HorizontalIR, o.HorizontalIR),
		OpaqueSkyCover:              lerp(c.OpaqueSkyCover, o.OpaqueSkyCover),
		RelativeHumidity:            lerp(c.RelativeHumidity, o.RelativeHumidity),
		Pressure:                    lerp(c.Pressure, o.Pressure),
	}
}

// TerrainClass qualitatively categorizes a site's wind exposure. It scales
// the free-stream wind speed a weather station reports down to the local
// wind speed actually seen at a surface or infiltration gap, via the
// standard power-law boundary-layer profile.
type TerrainClass int

const (
	TerrainCountry TerrainClass = iota
	TerrainSuburbs
	TerrainCity
	TerrainOcean
	TerrainUrban
)

// terrainExponent and terrainLayerHeight tabulate the power-law profile
// coefficients per terrain category (ASHRAE Fundamentals boundary-layer
// wind profile, the same table the original site_details module draws its
// default terrain class of Suburbs from).
var terrainExponent = map[TerrainClass]float64{
	TerrainCountry: 0.14,
	TerrainSuburbs: 0.22,
	TerrainCity:    0.33,
	TerrainOcean:   0.10,
	TerrainUrban:   0.40,
}

var terrainLayerHeight = map[TerrainClass]float64{
	TerrainCountry: 270,
	TerrainSuburbs: 370,
	TerrainCity:    460,
	TerrainOcean:   210,
	TerrainUrban:   460,
}

// LocalWindSpeed scales a weather station's measured wind speed (assumed
// measured at the standard 10 m meteorological mast over open terrain) to
// the speed at height h over a site of the given terrain class: first up to
// the (terrain-independent) gradient wind speed, then back down through the
// site's own boundary layer.
func (t TerrainClass) LocalWindSpeed(stationWindSpeed, h float64) float64 {
	const metStationExponent = 0.14
	const metStationLayerHeight = 270.0
	metFactor := math.Pow(metStationLayerHeight/10.0, metStationExponent)
	siteFactor := math.Pow(h/terrainLayerHeight[t], terrainExponent[t])
	return stationWindSpeed * metFactor * siteFactor
}

func (t TerrainClass) String() string {
	switch t {
	case TerrainCountry:
		return "Country"
	case TerrainSuburbs:
		return "Suburbs"
	case TerrainCity:
		return "City"
	case TerrainOcean:
		return "Ocean"
	case TerrainUrban:
		return "Urban"
	default:
		return "Unknown"
	}
}

// SiteDetails carries the site metadata the distilled core left out:
// altitude, terrain class, and the latitude/longitude/standard-meridian
// used when an EPW header does not supply them. The thermal engine's
// exterior convection correlation and the air-flow engine's design-flow-rate
// infiltration terms read wind speed through TerrainClass.LocalWindSpeed;
// the effective-leakage-area infiltration term uses the station wind speed
// as given.
type SiteDetails struct {
	Altitude  float64 // meters
	Terrain   TerrainClass
	Latitude  float64 // radians
	Longitude float64 // radians
	StandardMeridian float64 // radians
}

// DefaultSiteDetails returns Suburbs terrain and zero geographic
// coordinates, matching the original's Suburbs default.
func DefaultSiteDetails() SiteDetails {
	return SiteDetails{Terrain: TerrainSuburbs}
}
