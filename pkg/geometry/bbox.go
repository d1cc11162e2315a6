package geometry

import "math"

// BBox is an axis-aligned bounding box, the BVH's broad-phase primitive.
type BBox struct {
	Min, Max Vec3
}

// EmptyBBox returns a box with inverted extrema, ready to be grown by Extend.
func EmptyBBox() BBox {
	inf := math.Inf(1)
	return BBox{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// Extend grows the box to include p.
func (b BBox) Extend(p Vec3) BBox {
	return BBox{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Centroid returns the box's center point.
func (b BBox) Centroid() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// SurfaceArea returns the box's surface area, used by the BVH's SAH split
// cost heuristic.
func (b BBox) SurfaceArea() float64 {
	d := b.Max.Sub(b.Min)
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// LongestAxis returns the index (0=X,1=Y,2=Z) of the box's longest extent.
func (b BBox) LongestAxis() int {
	d := b.Max.Sub(b.Min)
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// IntersectRay reports whether the ray (origin o, direction d, already
// normalized) intersects the box within [tMin, tMax], using the classic
// slab method.
func (b BBox) IntersectRay(o, d Vec3, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / d.Component(axis)
		t0 := (b.Min.Component(axis) - o.Component(axis)) * invD
		t1 := (b.Max.Component(axis) - o.Component(axis)) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}
