package weather

import (
	"math"

	"github.com/germolinal/simple-sub002/pkg/geometry"
)

// SolarPosition is the sun's direction at a given Date and site, expressed
// both as the unit vector toward the sun and as altitude/azimuth.
type SolarPosition struct {
	Direction geometry.Vec3 // unit vector pointing toward the sun
	Altitude  float64       // radians above horizon, negative if below
	Azimuth   float64       // radians, 0 = north, clockwise
	ZenithCos float64       // cos(zenith angle); convenience for irradiance math
}

// dayOfYear returns 1-365 (ignoring leap years, matching DaysInMonth).
func dayOfYear(d Date) int {
	n := d.Day
	for m := 1; m < d.Month; m++ {
		n += DaysInMonth(m)
	}
	return n
}

// SunPosition computes the solar position using the standard ASHRAE
// solar-geometry equations: equation of time, solar declination, hour
// angle from the site's longitude/standard-meridian offset, then altitude
// and azimuth from declination/latitude/hour-angle.
func SunPosition(d Date, site SiteDetails) SolarPosition {
	n := float64(dayOfYear(d))
	gamma := 2 * math.Pi / 365 * (n - 1)

	// equation of time, minutes (Spencer 1971 series).
	eqTime := 229.18 * (0.000075 + 0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))

	// solar declination, radians (Spencer 1971 series).
	decl := 0.006918 - 0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)

	longitudeCorrectionMin := (site.StandardMeridian - site.Longitude) * 180 / math.Pi * 4
	solarTimeMin := d.Hour*60 - longitudeCorrectionMin + eqTime
	hourAngle := (solarTimeMin/4 - 180) * math.Pi / 180

	lat := site.Latitude
	sinAlt := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	if sinAlt > 1 {
		sinAlt = 1
	}
	if sinAlt < -1 {
		sinAlt = -1
	}
	altitude := math.Asin(sinAlt)

	cosAz := (math.Sin(decl) - math.Sin(altitude)*math.Sin(lat)) / (math.Cos(altitude) * math.Cos(lat))
	if cosAz > 1 {
		cosAz = 1
	}
	if cosAz < -1 {
		cosAz = -1
	}
	azimuth := math.Acos(cosAz)
	if hourAngle > 0 {
		azimuth = 2*math.Pi - azimuth
	}

	dir := geometry.Vec3{
		X: math.Cos(altitude) * math.Sin(azimuth),
		Y: math.Cos(altitude) * math.Cos(azimuth),
		Z: math.Sin(altitude),
	}
	return SolarPosition{Direction: dir, Altitude: altitude, Azimuth: azimuth, ZenithCos: sinAlt}
}
