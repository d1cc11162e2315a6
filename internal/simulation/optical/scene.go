package optical

import (
	"github.com/germolinal/simple-sub002/pkg/geometry"
	"github.com/germolinal/simple-sub002/pkg/model"
)

// defaultOpticalAbsorptance is used for an opaque side whose substance
// carries no Optical block: a mid-range masonry-like finish.
const defaultOpticalAbsorptance = 0.6

// scene is the fixed ray-traceable geometry built once from the model: the
// combined triangle list across every Surface and Fenestration, plus the
// optical material each triangle side maps to.
type scene struct {
	bvh       *geometry.BVH
	materials []opticalMaterial // indexed by Triangle.FrontMaterial/BackMaterial
}

func (sc *scene) materialFor(id int) opticalMaterial {
	if id < 0 || id >= len(sc.materials) {
		return opticalMaterial{kind: bsdfDiffuse}
	}
	return sc.materials[id]
}

// buildScene triangulates every surface-like entity, assigning each one a
// front/back material id pair derived from its construction's optical
// properties, and builds the acceleration structure over the combined
// triangle list.
func buildScene(surfaces []*model.Surface) *scene {
	var tris []geometry.Triangle
	materials := make([]opticalMaterial, 0, 2*len(surfaces))
	for _, s := range surfaces {
		frontID := len(materials)
		materials = append(materials, materialForSide(s.Construction, true))
		backID := len(materials)
		materials = append(materials, materialForSide(s.Construction, false))
		tris = append(tris, s.Polygon.Triangulate(frontID, backID)...)
	}
	return &scene{bvh: geometry.BuildBVH(tris), materials: materials}
}

// materialForSide derives one side's ray-tracing behavior from the
// construction's outermost material on that side.
func materialForSide(c *model.Construction, front bool) opticalMaterial {
	var mat *model.Material
	if front {
		mat = c.Materials[0]
	} else {
		mat = c.Materials[len(c.Materials)-1]
	}
	if mat.Substance.Optical == nil {
		return opticalMaterial{kind: bsdfDiffuse, reflectance: 1 - defaultOpticalAbsorptance}
	}
	opt := mat.Substance.Optical
	absorptance := opt.FrontSolarAbsorptance
	if !front {
		absorptance = opt.BackSolarAbsorptance
	}
	transmittance := opt.SolarTransmittance
	reflectance := 1 - absorptance - transmittance
	if reflectance < 0 {
		reflectance = 0
	}
	if transmittance > 0 {
		return opticalMaterial{kind: bsdfGlass, reflectance: reflectance, transmittance: transmittance}
	}
	return opticalMaterial{kind: bsdfDiffuse, reflectance: reflectance}
}
