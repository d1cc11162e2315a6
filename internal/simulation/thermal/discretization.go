package thermal

import (
	"fmt"
	"math"

	"github.com/germolinal/simple-sub002/pkg/model"
)

// maxLayerNodes caps the per-layer node count so a very thin, very
// diffusive layer cannot blow up the state vector.
const maxLayerNodes = 12

// maxSubdivisions bounds the search for a stable sub-timestep; at this cap
// a main timestep would already be subdivided into sub-second slices, far
// finer than any realistic building material needs.
const maxSubdivisions = 3600

// selectSubdivisions finds the smallest k such that subdividing mainDt into
// k sub-steps lets every Normal-substance layer in the model keep at least
// two nodes while satisfying the explicit forward-Euler stability
// criterion alpha*dt/dx^2 <= 1/2.
func selectSubdivisions(m *model.Model, mainDt float64) (int, error) {
	for k := 1; k <= maxSubdivisions; k++ {
		subDt := mainDt / float64(k)
		if stableForAll(m, subDt) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("thermal: no sub-timestep subdivision up to %d keeps every layer stable with at least two nodes", maxSubdivisions)
}

func stableForAll(m *model.Model, subDt float64) bool {
	seen := map[*model.Construction]bool{}
	for _, s := range m.AllSurfaceLike() {
		c := s.Construction
		if c == nil || seen[c] {
			continue
		}
		seen[c] = true
		for _, mat := range c.Materials {
			if mat.Substance.Kind != model.SubstanceNormal {
				continue
			}
			alpha := mat.Substance.Diffusivity()
			if alpha <= 0 {
				continue
			}
			// Two nodes means dx = thickness (a single segment); stability
			// at two nodes is the easiest case, so if it fails here no
			// node count will help and a finer subDt is required.
			if subDt > mat.Thickness*mat.Thickness/(2*alpha) {
				return false
			}
		}
	}
	return true
}

// nodeCountForLayer picks the largest node count (finest resolution) that
// still satisfies the stability criterion for this layer at the chosen
// sub-timestep, clamped to [2, maxLayerNodes]. Gas gaps and zero-diffusivity
// layers (pure thermal resistances) get the floor of two nodes: they carry
// no internal conduction state of their own.
func nodeCountForLayer(mat *model.Material, subDt float64) int {
	if mat.Substance.Kind != model.SubstanceNormal {
		return 2
	}
	alpha := mat.Substance.Diffusivity()
	if alpha <= 0 {
		return 2
	}
	dxMin := math.Sqrt(2 * alpha * subDt)
	n := int(math.Floor(mat.Thickness/dxMin)) + 1
	if n < 2 {
		n = 2
	}
	if n > maxLayerNodes {
		n = maxLayerNodes
	}
	return n
}

// assignDiscretization binds a Construction's node layout exactly once;
// every Surface sharing the Construction shares the same layout, so this
// is a no-op on the second and later surface referencing it.
func assignDiscretization(c *model.Construction, subDt float64) error {
	if c.Discretization() != nil {
		return nil
	}
	nodesPerLayer := make([]int, len(c.Materials))
	total := 0
	for i, mat := range c.Materials {
		n := nodeCountForLayer(mat, subDt)
		nodesPerLayer[i] = n
		if i == 0 {
			total += n
		} else {
			// consecutive layers share the node at their interface.
			total += n - 1
		}
	}
	return c.SetDiscretization(model.Discretization{
		NodesPerLayer:      nodesPerLayer,
		TotalNodes:         total,
		SubTimestepSeconds: subDt,
	})
}
