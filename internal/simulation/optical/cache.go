package optical

import (
	"encoding/gob"
	"os"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
	"github.com/germolinal/simple-sub002/pkg/model"
)

// surfaceOptics is one surface's pre-computed optical output: a daylight
// coefficient row and view-factor triple per side.
type surfaceOptics struct {
	frontDC []float64
	backDC  []float64
	frontVF model.ViewFactors
	backVF  model.ViewFactors
}

// cacheFile is the gob-encoded on-disk form of a full pre-compute, keyed
// implicitly by the model's surface-name ordering. This package only
// validates that the cache's shape still matches; no component detects any
// other model change or removes a stale cache file.
type cacheFile struct {
	SurfaceNames []string
	NPatches     int
	FrontDC      [][]float64
	BackDC       [][]float64
	FrontVF      []model.ViewFactors
	BackVF       []model.ViewFactors
}

// loadCache reads a pre-compute cache at path, if set and present. A shape
// mismatch against the current surfaces/sky discretization (different
// count, order, or patch count) is treated as a miss, not an error: the
// caller recomputes from scratch rather than trusting a stale file.
func loadCache(path string, surfaces []*model.Surface, nPatches int) ([]surfaceOptics, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, simerrors.Wrap(moduleName, simerrors.CodeResource, err, "opening optical cache %q", path)
	}
	defer f.Close()

	var cf cacheFile
	if err := gob.NewDecoder(f).Decode(&cf); err != nil {
		return nil, false, simerrors.Wrap(moduleName, simerrors.CodeResource, err, "decoding optical cache %q", path)
	}
	if cf.NPatches != nPatches || len(cf.SurfaceNames) != len(surfaces) {
		return nil, false, nil
	}
	for i, s := range surfaces {
		if cf.SurfaceNames[i] != s.Name {
			return nil, false, nil
		}
	}

	results := make([]surfaceOptics, len(surfaces))
	for i := range surfaces {
		results[i] = surfaceOptics{
			frontDC: cf.FrontDC[i], backDC: cf.BackDC[i],
			frontVF: cf.FrontVF[i], backVF: cf.BackVF[i],
		}
	}
	return results, true, nil
}

// saveCache serializes a freshly computed pre-compute to path for a later
// run against the same model to reuse.
func saveCache(path string, surfaces []*model.Surface, results []surfaceOptics) error {
	cf := cacheFile{
		SurfaceNames: make([]string, len(surfaces)),
		FrontDC:      make([][]float64, len(surfaces)),
		BackDC:       make([][]float64, len(surfaces)),
		FrontVF:      make([]model.ViewFactors, len(surfaces)),
		BackVF:       make([]model.ViewFactors, len(surfaces)),
	}
	for i, s := range surfaces {
		cf.SurfaceNames[i] = s.Name
		cf.FrontDC[i] = results[i].frontDC
		cf.BackDC[i] = results[i].backDC
		cf.FrontVF[i] = results[i].frontVF
		cf.BackVF[i] = results[i].backVF
	}
	if len(results) > 0 {
		cf.NPatches = len(results[0].frontDC)
	}

	f, err := os.Create(path)
	if err != nil {
		return simerrors.Wrap(moduleName, simerrors.CodeResource, err, "creating optical cache %q", path)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(cf); err != nil {
		return simerrors.Wrap(moduleName, simerrors.CodeResource, err, "encoding optical cache %q", path)
	}
	return nil
}
