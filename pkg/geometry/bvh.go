package geometry

import "sort"

// LeafSize is the target number of triangles per BVH leaf. The optical
// engine's scenes are small enough (single buildings, not whole cities) that
// a leaf around two dozen triangles balances traversal depth against the
// per-leaf scalar intersection loop.
const LeafSize = 24

// bvhNode is an internal or leaf node of the BVH. Leaves store a contiguous
// slice of the reordered []Triangle array, an array of structs walked
// linearly; vertex coordinates are not split into per-axis arrays.
type bvhNode struct {
	bounds      BBox
	left, right *bvhNode
	start, count int // leaf: [start, start+count) into BVH.Triangles
}

func (n *bvhNode) isLeaf() bool { return n.left == nil && n.right == nil }

// BVH is a bounding volume hierarchy over a fixed set of triangles, built
// once per optical pre-compute and read-only afterward.
type BVH struct {
	Triangles []Triangle // reordered by Build
	root      *bvhNode
}

// BuildBVH constructs a surface-area-heuristic BVH over the given triangles.
// The input slice is copied and reordered internally; the caller's slice is
// left untouched.
func BuildBVH(tris []Triangle) *BVH {
	b := &BVH{Triangles: append([]Triangle(nil), tris...)}
	idx := make([]int, len(tris))
	for i := range idx {
		idx[i] = i
	}
	ordered := make([]Triangle, 0, len(tris))
	b.root = b.build(idx, &ordered)
	b.Triangles = ordered
	return b
}

func (b *BVH) build(idx []int, ordered *[]Triangle) *bvhNode {
	bounds := EmptyBBox()
	for _, i := range idx {
		bounds = bounds.Union(b.Triangles[i].BBox())
	}

	if len(idx) <= LeafSize {
		start := len(*ordered)
		for _, i := range idx {
			*ordered = append(*ordered, b.Triangles[i])
		}
		return &bvhNode{bounds: bounds, start: start, count: len(idx)}
	}

	axis := bounds.LongestAxis()
	sort.Slice(idx, func(i, j int) bool {
		return b.Triangles[idx[i]].Centroid().Component(axis) < b.Triangles[idx[j]].Centroid().Component(axis)
	})

	splitAt := sahSplit(b.Triangles, idx, axis)

	left := b.build(idx[:splitAt], ordered)
	right := b.build(idx[splitAt:], ordered)
	return &bvhNode{bounds: bounds, left: left, right: right}
}

// sahSplit evaluates every split position along axis (idx is
// already sorted by centroid on that axis) and returns the cheapest one by
// the standard surface-area-heuristic cost, falling back to a median split
// if no candidate improves on it.
func sahSplit(tris []Triangle, idx []int, axis int) int {
	n := len(idx)
	const nBuckets = 12
	if n < nBuckets*2 {
		return n / 2
	}

	leftBounds := make([]BBox, n+1)
	leftBounds[0] = EmptyBBox()
	for i, ti := range idx {
		leftBounds[i+1] = leftBounds[i].Union(tris[ti].BBox())
	}
	rightBounds := make([]BBox, n+1)
	rightBounds[n] = EmptyBBox()
	for i := n - 1; i >= 0; i-- {
		rightBounds[i] = rightBounds[i+1].Union(tris[idx[i]].BBox())
	}

	bestCost := infCost
	bestSplit := n / 2
	for s := 1; s < n; s++ {
		cost := float64(s)*leftBounds[s].SurfaceArea() + float64(n-s)*rightBounds[s].SurfaceArea()
		if cost < bestCost {
			bestCost = cost
			bestSplit = s
		}
	}
	if bestSplit <= 0 || bestSplit >= n {
		return n / 2
	}
	return bestSplit
}

const infCost = 1e300

// Intersect finds the closest hit along ray (o, d) within [tMin, tMax],
// traversing the BVH and falling back to scalar Moller-Trumbore at the
// leaves.
func (b *BVH) Intersect(o, d Vec3, tMin, tMax float64) (Hit, bool) {
	return b.intersectNode(b.root, o, d, tMin, tMax)
}

func (b *BVH) intersectNode(n *bvhNode, o, d Vec3, tMin, tMax float64) (Hit, bool) {
	if n == nil || !n.bounds.IntersectRay(o, d, tMin, tMax) {
		return Hit{}, false
	}
	if n.isLeaf() {
		var best Hit
		found := false
		closest := tMax
		for i := n.start; i < n.start+n.count; i++ {
			if hit, ok := IntersectTriangle(o, d, b.Triangles[i], tMin, closest); ok {
				best = hit
				closest = hit.T
				found = true
			}
		}
		return best, found
	}
	leftHit, leftOK := b.intersectNode(n.left, o, d, tMin, tMax)
	newMax := tMax
	if leftOK {
		newMax = leftHit.T
	}
	rightHit, rightOK := b.intersectNode(n.right, o, d, tMin, newMax)
	if rightOK {
		return rightHit, true
	}
	return leftHit, leftOK
}

// AnyHit reports whether the ray hits anything in [tMin, tMax], without
// finding the closest hit. Used by shadow/occlusion style queries.
func (b *BVH) AnyHit(o, d Vec3, tMin, tMax float64) bool {
	_, ok := b.Intersect(o, d, tMin, tMax)
	return ok
}
