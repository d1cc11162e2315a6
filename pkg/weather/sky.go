package weather

import (
	"math"

	"github.com/germolinal/simple-sub002/pkg/geometry"
)

// ReinhartSky discretizes the sky hemisphere into patches of roughly equal
// solid angle, following Tregenza/Reinhart subdivision: mf=1 gives the
// classic 145-patch Tregenza sky (plus one ground patch appended at the
// end); higher mf subdivides each Tregenza band by mf^2, matching the
// Reinhart extension used for higher angular resolution daylight
// coefficients.
type ReinhartSky struct {
	MF int

	// rowPatches[i] is the patch count of altitude band i, from the horizon
	// (row 0) to the row capping the zenith; the final entry is mf*mf
	// (the zenith cap, a single patch at mf=1, before the ground patch is
	// appended).
	rowPatches []int
	rowAlt     []float64 // center altitude of each row, radians
	total      int        // total patches including the trailing ground patch
}

// tregenzaRowPatches is the classic 7-row-plus-zenith Tregenza sky patch
// counts per altitude band at mf=1 (the entries, zenith included, sum to 145).
var tregenzaRowPatches = []int{30, 30, 24, 24, 18, 12, 6, 1}

// NewReinhartSky builds the discretization for the given subdivision
// factor. mf <= 0 is treated as 1.
func NewReinhartSky(mf int) *ReinhartSky {
	if mf <= 0 {
		mf = 1
	}
	rows := make([]int, len(tregenzaRowPatches))
	for i, c := range tregenzaRowPatches {
		rows[i] = c * mf * mf
	}
	alts := make([]float64, len(rows))
	bandHeight := (math.Pi / 2) / float64(len(rows))
	for i := range alts {
		alts[i] = bandHeight*float64(i) + bandHeight/2
	}
	total := 1 // ground patch
	for _, c := range rows {
		total += c
	}
	return &ReinhartSky{MF: mf, rowPatches: rows, rowAlt: alts, total: total}
}

// NPatches returns the total patch count, including the single trailing
// ground patch (so a DC matrix column count equals NPatches()).
func (r *ReinhartSky) NPatches() int { return r.total }

// GroundPatchIndex returns the index of the ground patch, always the last
// one.
func (r *ReinhartSky) GroundPatchIndex() int { return r.total - 1 }

// PatchDirection returns the unit direction (pointing away from the scene,
// toward the sky) of the center of patch i. The ground patch returns
// straight down.
func (r *ReinhartSky) PatchDirection(i int) geometry.Vec3 {
	if i == r.GroundPatchIndex() {
		return geometry.Vec3{X: 0, Y: 0, Z: -1}
	}
	row, offsetInRow := r.rowOf(i)
	alt := r.rowAlt[row]
	az := 2 * math.Pi * (float64(offsetInRow) + 0.5) / float64(r.rowPatches[row])
	return geometry.Vec3{
		X: math.Cos(alt) * math.Sin(az),
		Y: math.Cos(alt) * math.Cos(az),
		Z: math.Sin(alt),
	}
}

func (r *ReinhartSky) rowOf(i int) (row, offset int) {
	acc := 0
	for row, c := range r.rowPatches {
		if i < acc+c {
			return row, i - acc
		}
		acc += c
	}
	return len(r.rowPatches) - 1, 0
}

// PatchOf finds the sky patch whose center direction is closest to dir
// (dir.Z >= 0), or the ground patch if dir.Z < 0. Used to bin an escaped
// ray's final direction into a sky patch during the optical pre-compute.
func (r *ReinhartSky) PatchOf(dir geometry.Vec3) int {
	if dir.Z < 0 {
		return r.GroundPatchIndex()
	}
	alt := math.Asin(clamp(dir.Z, -1, 1))
	az := math.Atan2(dir.X, dir.Y)
	if az < 0 {
		az += 2 * math.Pi
	}
	bandHeight := (math.Pi / 2) / float64(len(r.rowPatches))
	row := int(alt / bandHeight)
	if row >= len(r.rowPatches) {
		row = len(r.rowPatches) - 1
	}
	nInRow := r.rowPatches[row]
	offset := int(az / (2 * math.Pi) * float64(nInRow))
	if offset >= nInRow {
		offset = nInRow - 1
	}
	acc := 0
	for i := 0; i < row; i++ {
		acc += r.rowPatches[i]
	}
	return acc + offset
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PerezSkyVector synthesizes a per-patch radiance vector (W/m2/sr, relative
// units suitable for multiplying by a daylight-coefficient matrix) from a
// direct-normal and diffuse-horizontal irradiance split and the current sun
// position, following the Perez all-weather sky luminance distribution.
// The ground patch receives ground-reflected radiance assuming a uniform
// ground reflectance of 0.2, the same default the original uses when no
// per-material ground albedo is supplied.
func PerezSkyVector(sky *ReinhartSky, sun SolarPosition, directNormal, diffuseHorizontal float64) []float64 {
	out := make([]float64, sky.NPatches())
	if sun.Altitude <= 0 {
		// sun below horizon: diffuse-only uniform sky, no direct contribution.
		if diffuseHorizontal <= 0 {
			return out
		}
		uniform := diffuseHorizontal / math.Pi / float64(sky.NPatches()-1)
		for i := 0; i < sky.NPatches()-1; i++ {
			out[i] = uniform
		}
		out[sky.GroundPatchIndex()] = 0.2 * diffuseHorizontal / math.Pi
		return out
	}

	zenithAngle := math.Pi/2 - sun.Altitude
	cosZ := math.Cos(zenithAngle)

	// Perez clearness epsilon and brightness Delta, using air mass m and
	// the standard bin-averaged coefficients for the "intermediate" bin
	// (a conservative single-bin approximation rather than the full 8-bin
	// table, adequate for a whole-building core that only needs a
	// plausible sky distribution to weight patches, not photometric
	// rendering accuracy).
	airMass := 1.0 / (cosZ + 0.15*math.Pow(93.9-zenithAngle*180/math.Pi, -1.253))
	delta := diffuseHorizontal * airMass / 1367.0
	const a1, a2, a3, a4 = 1.3525, -0.2576, -0.2690, -1.4366
	gradation := func(z float64) float64 { return 1 + a1*math.Exp(a2/math.Cos(z)) }
	indicatrix := func(gamma float64) float64 { return 1 + a3*math.Exp(a4*gamma) }

	total := 0.0
	patchLum := make([]float64, sky.NPatches()-1)
	for i := range patchLum {
		dir := sky.PatchDirection(i)
		patchZenith := math.Acos(clamp(dir.Z, -1, 1))
		cosGamma := dir.Dot(sun.Direction)
		gamma := math.Acos(clamp(cosGamma, -1, 1))
		lum := gradation(patchZenith) * indicatrix(gamma) * (1 + 0.2*delta)
		if lum < 0 {
			lum = 0
		}
		patchLum[i] = lum
		total += lum * dir.Z // weight by projected solid angle toward zenith
	}
	if total <= 0 {
		total = 1
	}
	for i, lum := range patchLum {
		out[i] = lum / total * diffuseHorizontal / math.Pi
	}

	// direct beam: add its contribution to whichever patch contains the
	// sun, spread over the mean sky-patch solid angle (the 2*pi sr
	// hemisphere divided among the sky patches) so the patch radiance
	// integrates back to directNormal * cosZ on the horizontal.
	if directNormal > 0 {
		sunPatch := sky.PatchOf(sun.Direction)
		solidAngle := 2 * math.Pi / float64(sky.NPatches()-1)
		out[sunPatch] += directNormal / solidAngle
	}
	out[sky.GroundPatchIndex()] = 0.2 * (diffuseHorizontal + directNormal*cosZ) / math.Pi
	return out
}
