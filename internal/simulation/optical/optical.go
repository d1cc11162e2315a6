// Package optical implements the engine's daylight/solar sub-engine: a
// ray-traced daylight-coefficient pre-compute against a BVH-accelerated
// scene, synthesized every march step into per-surface short-wave and
// long-wave irradiance via the Perez all-weather sky model.
package optical

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
	"github.com/germolinal/simple-sub002/internal/common/progress"
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/state"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

const moduleName = "optical"

// stefanBoltzmann is sigma, in W/(m2 K4).
const stefanBoltzmann = 5.670374419e-8

// groundReferenceTemperature approximates the ground surface's own
// temperature for the long-wave ground-view term; independent of, and not
// shared with, the thermal engine's own ground boundary model, since the
// two engines only communicate through state slots.
const groundReferenceTemperature = 10.0 // C

// sideRuntime is everything March needs for one side of one surface,
// resolved once at construction time.
type sideRuntime struct {
	swSlot, irSlot int
	dcRow          []float64
	vf             model.ViewFactors

	boundary    model.Boundary
	spaceDBCell *state.Cell // non-nil when boundary.Kind == BoundarySpace
	spaceDBSlot int         // resolved lazily; -1 until first use
}

// Module is the optical engine.
type Module struct {
	sky   *weather.ReinhartSky
	sides []*sideRuntime
}

// New triangulates the model into a ray-traceable scene, computes (or
// loads from cache) each surface side's daylight-coefficient row and view
// factors, and registers the shortwave/IR irradiance slots the thermal
// engine reads (thermal is constructed after optical, so it can resolve
// these eagerly).
func New(meta model.MetaOptions, solar model.SolarOptions, m *model.Model, h *state.Header, nMainSubsteps int) (*Module, error) {
	surfaces := m.AllSurfaceLike()
	sky := weather.NewReinhartSky(solar.SkyDiscretization)

	results, cacheHit, err := loadCache(solar.OpticalDataPath, surfaces, sky.NPatches())
	if err != nil {
		return nil, err
	}
	if !cacheHit {
		sc := buildScene(surfaces)
		results = make([]surfaceOptics, len(surfaces))
		tracker := progress.New(len(surfaces), "optical: daylight coefficients")
		computeConcurrently(sc, sky, solar, surfaces, results, tracker)
		tracker.Finish()
		if solar.OpticalDataPath != "" {
			if err := saveCache(solar.OpticalDataPath, surfaces, results); err != nil {
				return nil, err
			}
		}
	}

	mod := &Module{sky: sky}
	for i, s := range surfaces {
		frontSW, err := h.Register(moduleName, state.EntitySurface, state.FieldFrontShortwaveIrradiance, s.Name, -1)
		if err != nil {
			return nil, err
		}
		backSW, err := h.Register(moduleName, state.EntitySurface, state.FieldBackShortwaveIrradiance, s.Name, -1)
		if err != nil {
			return nil, err
		}
		frontIR, err := h.Register(moduleName, state.EntitySurface, state.FieldFrontIRIrradiance, s.Name, -1)
		if err != nil {
			return nil, err
		}
		backIR, err := h.Register(moduleName, state.EntitySurface, state.FieldBackIRIrradiance, s.Name, -1)
		if err != nil {
			return nil, err
		}
		if !s.FrontShortwaveSlot.Assign(frontSW) || !s.BackShortwaveSlot.Assign(backSW) ||
			!s.FrontIRSlot.Assign(frontIR) || !s.BackIRSlot.Assign(backIR) {
			return nil, simerrors.New(moduleName, simerrors.CodeConstruction, "surface %q: irradiance slot already assigned", s.Name)
		}

		s.FrontDC, s.BackDC = results[i].frontDC, results[i].backDC
		s.FrontViewFactors, s.BackViewFactors = results[i].frontVF, results[i].backVF

		mod.sides = append(mod.sides,
			&sideRuntime{swSlot: frontSW, irSlot: frontIR, dcRow: results[i].frontDC, vf: results[i].frontVF, boundary: s.Front, spaceDBCell: spaceCellFor(m, s.Front), spaceDBSlot: -1},
			&sideRuntime{swSlot: backSW, irSlot: backIR, dcRow: results[i].backDC, vf: results[i].backVF, boundary: s.Back, spaceDBCell: spaceCellFor(m, s.Back), spaceDBSlot: -1},
		)
	}
	return mod, nil
}

func spaceCellFor(m *model.Model, b model.Boundary) *state.Cell {
	if b.Kind != model.BoundarySpace {
		return nil
	}
	sp, ok := m.Spaces[b.SpaceName]
	if !ok {
		return nil
	}
	return &sp.DryBulbTempSlot
}

// Name identifies this module for error tagging and log lines.
func (mod *Module) Name() string { return moduleName }

// March synthesizes the current sky vector from the sun position and
// weather, projects it through each side's daylight-coefficient row for
// shortwave irradiance, and combines sky/ground/air long-wave sources
// weighted by each side's view factors for IR irradiance.
func (mod *Module) March(date weather.Date, w weather.CurrentWeather, mdl *model.Model, st *state.State) error {
	sun := weather.SunPosition(date, mdl.Site)
	skyVec := weather.PerezSkyVector(mod.sky, sun, w.EffectiveDirectNormal(), w.EffectiveDiffuseHorizontal())
	skyIR := w.EffectiveHorizontalIR()
	groundIR := stefanBoltzmann * math.Pow(groundReferenceTemperature+273.15, 4)

	for _, side := range mod.sides {
		var sw float64
		for p, v := range side.dcRow {
			sw += v * skyVec[p]
		}
		st.Set(side.swSlot, sw)

		airT := resolveAirTemperature(side, w, st)
		airIR := stefanBoltzmann * math.Pow(airT+273.15, 4)
		incidentIR := side.vf.Sky*skyIR + side.vf.Ground*groundIR + side.vf.Air*airIR
		st.Set(side.irSlot, incidentIR)
	}
	return nil
}

// resolveAirTemperature returns the temperature backing a side's "air"
// view-factor category: the boundary's fixed temperature for an
// ambient-temperature side, the bounding space's own air temperature for an
// interior side (resolved lazily, since the thermal module that owns that
// slot is constructed after optical), or the outdoor dry-bulb otherwise.
func resolveAirTemperature(side *sideRuntime, w weather.CurrentWeather, st *state.State) float64 {
	switch side.boundary.Kind {
	case model.BoundarySpace:
		if side.spaceDBSlot < 0 {
			side.spaceDBSlot = side.spaceDBCell.MustSlot()
		}
		return st.Get(side.spaceDBSlot)
	case model.BoundaryAmbientTemperature:
		return side.boundary.AmbientTemperature
	default:
		return w.DryBulbTemperature
	}
}

func computeConcurrently(sc *scene, sky *weather.ReinhartSky, solar model.SolarOptions, surfaces []*model.Surface, results []surfaceOptics, tracker *progress.Tracker) {
	n := len(surfaces)
	if n == 0 {
		return
	}
	nprocs := runtime.GOMAXPROCS(0)
	if nprocs > n {
		nprocs = n
	}
	if nprocs < 1 {
		nprocs = 1
	}
	var wg sync.WaitGroup
	for p := 0; p < nprocs; p++ {
		wg.Add(1)
		go func(procNum int) {
			defer wg.Done()
			for i := procNum; i < n; i += nprocs {
				// A per-surface seed keeps runs reproducible across
				// identical inputs without goroutines contending on a
				// shared *rand.Rand.
				rng := rand.New(rand.NewSource(int64(i)*2654435761 + 1))
				s := surfaces[i]
				normal := s.Polygon.Normal()
				frontDC, frontVF := computeSideOptics(sc, sky, solar, s.Polygon, normal, rng)
				backDC, backVF := computeSideOptics(sc, sky, solar, s.Polygon, normal.Scale(-1), rng)
				results[i] = surfaceOptics{frontDC: frontDC, backDC: backDC, frontVF: frontVF, backVF: backVF}
				tracker.Add(1)
			}
		}(p)
	}
	wg.Wait()
}
