package optical

import (
	"math"
	"math/rand"

	"github.com/germolinal/simple-sub002/pkg/geometry"
)

// bsdfKind is the ray tracer's dispatch tag for a triangle side's bounce
// behavior.
type bsdfKind int

const (
	// bsdfDiffuse covers every opaque material: Plastic/Ward/Metal/Mirror
	// all collapse to a single Lambertian lobe here, since a Substance's
	// Optical block only carries a scalar absorptance, not a specular
	// fraction or roughness. See DESIGN.md for why the full original BSDF
	// set is not reachable from this model schema.
	bsdfDiffuse bsdfKind = iota
	// bsdfGlass is an idealized, unbent transmitter: a fraction
	// transmittance of rays pass straight through, the remainder reflect
	// diffusely or are absorbed.
	bsdfGlass
)

// opticalMaterial is one triangle side's ray-tracing behavior, derived once
// per scene build from a Construction's outermost layer's optical
// properties.
type opticalMaterial struct {
	kind          bsdfKind
	reflectance   float64
	transmittance float64
}

// sample draws one outgoing bounce direction and throughput multiplier,
// given the incoming ray direction and the outward shading normal at the
// hit point. absorbed reports a terminated path (no further segment).
func (mat opticalMaterial) sample(incoming, normal geometry.Vec3, rng *rand.Rand) (dir geometry.Vec3, weight float64, absorbed bool) {
	if mat.kind == bsdfGlass {
		if rng.Float64() < mat.transmittance {
			return incoming, 1, false // ideal straight-through transmission
		}
		remaining := 1 - mat.transmittance
		if remaining > 0 && rng.Float64() < mat.reflectance/remaining {
			return cosineWeightedHemisphere(normal, rng), 1, false
		}
		return geometry.Vec3{}, 0, true
	}
	if rng.Float64() >= mat.reflectance {
		return geometry.Vec3{}, 0, true
	}
	return cosineWeightedHemisphere(normal, rng), 1, false
}

// cosineWeightedHemisphere draws a direction from the cosine-weighted
// hemisphere around normal via Malley's method (uniform disk sample lifted
// onto the hemisphere), the zero-variance importance sample for a diffuse
// (Lambertian) bounce or sensor ray.
func cosineWeightedHemisphere(normal geometry.Vec3, rng *rand.Rand) geometry.Vec3 {
	u1, u2 := rng.Float64(), rng.Float64()
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-u1))

	t, b := orthonormalBasis(normal)
	return t.Scale(x).Add(b.Scale(y)).Add(normal.Scale(z)).Normalize()
}

// orthonormalBasis builds an arbitrary tangent/bitangent pair perpendicular
// to n, picking a reference axis away from n to avoid a degenerate cross
// product near the poles.
func orthonormalBasis(n geometry.Vec3) (t, b geometry.Vec3) {
	ref := geometry.Vec3{X: 0, Y: 0, Z: 1}
	if math.Abs(n.Z) > 0.99 {
		ref = geometry.Vec3{X: 1, Y: 0, Z: 0}
	}
	t = ref.Cross(n).Normalize()
	b = n.Cross(t)
	return
}
