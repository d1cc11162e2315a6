package optical

import (
	"math/rand"

	"github.com/germolinal/simple-sub002/pkg/geometry"
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

// traceEpsilon offsets ray origins off the surface they left to avoid
// immediate self-intersection; traceMax is a distance no real scene
// exceeds.
const traceEpsilon = 1e-4
const traceMax = 1e6

// traceSample follows one primary ray from a sensor point through the
// scene's BSDFs until it escapes to the sky (returning the patch it lands
// in and the path's accumulated throughput) or is absorbed/exceeds
// maxDepth (patch -1, throughput 0). The view-factor classification is
// read off the ray's first segment only, the single-bounce hemisphere
// sample the pre-compute's view-factor estimate is defined on; reusing the
// same primary ray for both estimates is standard correlated sampling and
// halves the number of BVH queries relative to tracing them separately.
func traceSample(sc *scene, sky *weather.ReinhartSky, maxDepth int, limitWeight float64, origin, dir geometry.Vec3, rng *rand.Rand) (patch int, throughput float64, vf model.ViewFactors) {
	weight := 1.0
	o, d := origin, dir
	for depth := 0; depth < maxDepth; depth++ {
		hit, ok := sc.bvh.Intersect(o, d, traceEpsilon, traceMax)
		if !ok {
			if depth == 0 {
				if d.Z >= 0 {
					vf.Sky = 1
				} else {
					vf.Ground = 1
				}
			}
			return sky.PatchOf(d), weight, vf
		}
		if depth == 0 {
			vf.Air = 1
		}

		mat := sc.materialFor(hit.MaterialID)
		nextDir, w, absorbed := mat.sample(d, hit.Normal, rng)
		if absorbed {
			return -1, 0, vf
		}
		weight *= w
		if weight < limitWeight {
			// Russian roulette: survive with probability weight, restoring
			// full throughput to stay an unbiased estimator.
			if rng.Float64() > weight {
				return -1, 0, vf
			}
			weight = limitWeight
		}
		o = hit.Point.Add(nextDir.Scale(traceEpsilon))
		d = nextDir
	}
	return -1, 0, vf // exceeded max depth without escaping: absorbed
}

// computeSideOptics distributes sensor points over poly and shoots
// n_ambient_samples cosine-weighted rays from each (cosine weighting makes
// the estimator below exactly the diffuse irradiance integral's Monte
// Carlo average, with no explicit cos-theta weight needed), averaging the
// resulting per-sensor daylight-coefficient rows and view factors into one
// row/triple for the side as a whole.
func computeSideOptics(sc *scene, sky *weather.ReinhartSky, opts model.SolarOptions, poly geometry.Polygon, normal geometry.Vec3, rng *rand.Rand) ([]float64, model.ViewFactors) {
	nSensors := opts.NSolarIrradiancePoints
	if nSensors < 1 {
		nSensors = 1
	}
	points := poly.SamplePoints(nSensors, rng)
	dc := make([]float64, sky.NPatches())
	var vf model.ViewFactors
	samples := 0

	for _, p := range points {
		origin := p.Add(normal.Scale(traceEpsilon))
		for i := 0; i < opts.NAmbientSamples; i++ {
			dir := cosineWeightedHemisphere(normal, rng)
			patch, throughput, sampleVF := traceSample(sc, sky, opts.MaxDepth, opts.LimitWeight, origin, dir, rng)
			if patch >= 0 {
				dc[patch] += throughput
			}
			vf.Sky += sampleVF.Sky
			vf.Ground += sampleVF.Ground
			vf.Air += sampleVF.Air
			samples++
		}
	}
	if samples == 0 {
		return dc, vf
	}
	for i := range dc {
		dc[i] /= float64(samples)
	}
	vf.Sky /= float64(samples)
	vf.Ground /= float64(samples)
	vf.Air /= float64(samples)
	return dc, vf
}
