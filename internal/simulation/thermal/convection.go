package thermal

import "math"

// minConvectionCoefficient is the lower clip applied to every computed
// coefficient so a near-zero temperature difference never produces a
// near-singular conduction system.
const minConvectionCoefficient = 0.5 // W/(m2 K)

// naturalConvectionCoefficient blends the vertical and horizontal
// natural-convection correlations by surface tilt, the way a Radiance-style
// renderer blends BSDF lobes by incidence angle rather than hard-switching
// at a threshold tilt. tilt is in radians, 0 = facing straight up (floor
// underside / upward-facing roof), pi/2 = vertical wall, pi = facing
// straight down.
func naturalConvectionCoefficient(deltaT, tilt float64) float64 {
	absDT := math.Abs(deltaT)
	vertical := 1.31 * math.Cbrt(absDT)

	var horizontal float64
	if deltaT >= 0 {
		// unstable stratification: hot surface facing up, or cold facing down
		horizontal = 1.52 * math.Cbrt(absDT)
	} else {
		horizontal = 0.59 * math.Cbrt(absDT)
	}

	w := math.Sin(tilt) // 1 at vertical, 0 at either horizontal extreme
	h := w*vertical + (1-w)*horizontal
	if h < minConvectionCoefficient {
		h = minConvectionCoefficient
	}
	return h
}

// forcedConvectionCoefficient adds wind-driven forced convection for
// exterior-facing sides, a simple linear correlation in local wind speed.
func forcedConvectionCoefficient(localWindSpeed float64) float64 {
	return 3.8 + 2.0*localWindSpeed
}

// exteriorConvectionCoefficient combines natural and forced convection for
// an outdoor-facing side: the forced term dominates at any appreciable wind
// speed, so the two add directly rather than via a more elaborate
// combination rule.
func exteriorConvectionCoefficient(deltaT, tilt, localWindSpeed float64) float64 {
	h := naturalConvectionCoefficient(deltaT, tilt) + forcedConvectionCoefficient(localWindSpeed)
	if h < minConvectionCoefficient {
		h = minConvectionCoefficient
	}
	return h
}

// interiorConvectionCoefficient is the natural-convection-only correlation
// used for space-facing and ground-facing sides, where no wind reaches the
// surface.
func interiorConvectionCoefficient(deltaT, tilt float64) float64 {
	return naturalConvectionCoefficient(deltaT, tilt)
}
