package geometry

import "math/rand"

// Polygon is a planar outer loop plus optional inner loops (holes), the
// shape of a Surface or Fenestration. Vertices are assumed coplanar and
// wound so that Normal() points outward (front side).
type Polygon struct {
	Outer []Vec3
	Inner [][]Vec3
}

// Normal returns the polygon's outward unit normal via Newell's method,
// robust to mild non-planarity in user-supplied vertices.
func (p Polygon) Normal() Vec3 {
	var n Vec3
	loop := p.Outer
	for i := range loop {
		cur := loop[i]
		next := loop[(i+1)%len(loop)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalize()
}

// Area returns the polygon's area (outer loop minus holes) via the
// generalized cross-product shoelace formula for planar 3D polygons.
func (p Polygon) Area() float64 {
	return loopArea(p.Outer) - holesArea(p.Inner)
}

func holesArea(holes [][]Vec3) float64 {
	var total float64
	for _, h := range holes {
		total += loopArea(h)
	}
	return total
}

func loopArea(loop []Vec3) float64 {
	if len(loop) < 3 {
		return 0
	}
	var sum Vec3
	origin := loop[0]
	for i := 1; i < len(loop)-1; i++ {
		a := loop[i].Sub(origin)
		b := loop[i+1].Sub(origin)
		sum = sum.Add(a.Cross(b))
	}
	return 0.5 * sum.Length()
}

// Triangulate fan-triangulates the outer loop around its first vertex. This
// is exact for convex polygons and the common case of rectangular building
// surfaces; holes are not cut out of the returned triangles (the engine
// treats inner loops as a separate, independent void check during sampling).
func (p Polygon) Triangulate(frontMaterial, backMaterial int) []Triangle {
	if len(p.Outer) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(p.Outer)-2)
	for i := 1; i < len(p.Outer)-1; i++ {
		tris = append(tris, Triangle{
			A: p.Outer[0], B: p.Outer[i], C: p.Outer[i+1],
			FrontMaterial: frontMaterial, BackMaterial: backMaterial,
		})
	}
	return tris
}

// SamplePoints distributes n barycentrically-uniform points over the
// polygon's triangulated surface, each point's area-share proportional to
// its triangle's area, and rejects points falling inside any inner loop
// (hole). Used by the optical engine to place irradiance sensors.
func (p Polygon) SamplePoints(n int, rng *rand.Rand) []Vec3 {
	tris := p.Triangulate(0, 0)
	if len(tris) == 0 || n <= 0 {
		return nil
	}
	areas := make([]float64, len(tris))
	var total float64
	for i, t := range tris {
		areas[i] = t.Area()
		total += areas[i]
	}
	points := make([]Vec3, 0, n)
	for len(points) < n {
		r := rng.Float64() * total
		var acc float64
		chosen := tris[len(tris)-1]
		for i, a := range areas {
			acc += a
			if r <= acc {
				chosen = tris[i]
				break
			}
		}
		u := rng.Float64()
		v := rng.Float64()
		if u+v > 1 {
			u, v = 1-u, 1-v
		}
		pt := chosen.A.Add(chosen.B.Sub(chosen.A).Scale(u)).Add(chosen.C.Sub(chosen.A).Scale(v))
		if !insideAnyLoop(pt, p.Inner) {
			points = append(points, pt)
		}
	}
	return points
}

// insideAnyLoop is a coarse 2D-projected point-in-polygon test against each
// hole, projecting onto the dominant plane of the hole's own normal (holes
// are coplanar with the outer loop).
func insideAnyLoop(p Vec3, holes [][]Vec3) bool {
	for _, h := range holes {
		if pointInLoop(p, h) {
			return true
		}
	}
	return false
}

func pointInLoop(p Vec3, loop []Vec3) bool {
	if len(loop) < 3 {
		return false
	}
	// project onto XY, XZ, or YZ: drop the axis along which the loop's
	// normal is largest
	poly := Polygon{Outer: loop}
	n := poly.Normal()
	ax, ay := 0, 1
	if n.X*n.X >= n.Y*n.Y && n.X*n.X >= n.Z*n.Z {
		ax, ay = 1, 2
	} else if n.Y*n.Y >= n.Z*n.Z {
		ax, ay = 0, 2
	}
	inside := false
	j := len(loop) - 1
	for i := 0; i < len(loop); i++ {
		xi, yi := component(loop[i], ax), component(loop[i], ay)
		xj, yj := component(loop[j], ax), component(loop[j], ay)
		px, py := component(p, ax), component(p, ay)
		if (yi > py) != (yj > py) {
			xIntersect := (xj-xi)*(py-yi)/(yj-yi) + xi
			if px < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func component(v Vec3, axis int) float64 { return v.Component(axis) }
