// Package thermal implements the engine's conduction/convection/radiation
// sub-engine: per-surface finite-difference node temperatures and per-space
// air temperatures, advanced by a fixed number of sub-steps per main
// timestep.
package thermal

import (
	"math"
	"runtime"
	"sync"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/state"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

const moduleName = "thermal"

// surfaceRuntime is everything the per-sub-step conduction solve needs for
// one Surface or Fenestration, resolved once at construction time.
type surfaceRuntime struct {
	surface *model.Surface
	net     surfaceNetwork
	nNodes  int
	area    float64

	nodeStart     int
	frontConvSlot int
	backConvSlot  int
	frontSWSlot   int
	backSWSlot    int
	frontIRSlot   int
	backIRSlot    int

	frontAbsorptance, frontEmissivity float64
	backAbsorptance, backEmissivity   float64
}

// surfaceSide references one side of a surface for a space's zone-balance
// coupling.
type surfaceSide struct {
	surf    *surfaceRuntime
	isFront bool
}

// spaceRuntime is everything the zone heat-balance needs for one Space,
// resolved once at construction time.
type spaceRuntime struct {
	space         *model.Space
	dryBulbSlot   int
	infVolumeSlot int
	infTempSlot   int
	sides         []surfaceSide
	hvacs         []*model.HVAC
	hvacSlots     []int
	luminaires    []*model.Luminaire
	luminaireSlots []int
}

// Module is the thermal engine.
type Module struct {
	surfaces     []*surfaceRuntime
	spaces       []*spaceRuntime
	subdivisions int
	subDt        float64
}

// New discretizes every Construction, registers node-temperature,
// convection, HVAC-consumption and luminaire-power slots, and resolves the
// optical engine's already-assigned shortwave/IR slots (optical is
// constructed before thermal) and the air-flow engine's already-assigned
// infiltration slots (air-flow is constructed before thermal too).
func New(meta model.MetaOptions, solar model.SolarOptions, m *model.Model, h *state.Header, nMainSubsteps int) (*Module, error) {
	if nMainSubsteps <= 0 {
		return nil, simerrors.New(moduleName, simerrors.CodeConstruction, "nMainSubsteps must be positive, got %d", nMainSubsteps)
	}
	mainDt := 3600.0 / float64(nMainSubsteps)
	subdivisions, err := selectSubdivisions(m, mainDt)
	if err != nil {
		return nil, err
	}
	subDt := mainDt / float64(subdivisions)

	mod := &Module{subdivisions: subdivisions, subDt: subDt}

	surfRuntimeByPtr := map[*model.Surface]*surfaceRuntime{}
	for _, s := range m.AllSurfaceLike() {
		if err := assignDiscretization(s.Construction, subDt); err != nil {
			return nil, err
		}
		d := s.Construction.Discretization()
		area := s.Area()

		startSlot := -1
		for i := 0; i < d.TotalNodes; i++ {
			slot, err := h.Register(moduleName, state.EntitySurface, state.FieldNodeTemperature, s.Name, i)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				startSlot = slot
			}
		}
		if !s.NodeTempStart.Assign(startSlot) {
			return nil, simerrors.New(moduleName, simerrors.CodeConstruction, "surface %q: node temperature slot already assigned", s.Name)
		}

		frontConv, err := h.Register(moduleName, state.EntitySurface, state.FieldFrontConvectionCoefficient, s.Name, -1)
		if err != nil {
			return nil, err
		}
		backConv, err := h.Register(moduleName, state.EntitySurface, state.FieldBackConvectionCoefficient, s.Name, -1)
		if err != nil {
			return nil, err
		}
		s.FrontConvectionSlot.Assign(frontConv)
		s.BackConvectionSlot.Assign(backConv)

		frontAbs, frontEmis := sideOpticalProperties(s.Construction, true)
		backAbs, backEmis := sideOpticalProperties(s.Construction, false)

		sr := &surfaceRuntime{
			surface:          s,
			net:              buildSurfaceNetwork(s.Construction, area),
			nNodes:           d.TotalNodes,
			area:             area,
			nodeStart:        startSlot,
			frontConvSlot:    frontConv,
			backConvSlot:     backConv,
			frontSWSlot:      s.FrontShortwaveSlot.MustSlot(),
			backSWSlot:       s.BackShortwaveSlot.MustSlot(),
			frontIRSlot:      s.FrontIRSlot.MustSlot(),
			backIRSlot:       s.BackIRSlot.MustSlot(),
			frontAbsorptance: frontAbs,
			frontEmissivity:  frontEmis,
			backAbsorptance:  backAbs,
			backEmissivity:   backEmis,
		}
		mod.surfaces = append(mod.surfaces, sr)
		surfRuntimeByPtr[s] = sr
	}

	spaceRuntimeByName := map[string]*spaceRuntime{}
	for _, name := range m.SortedSpaceNames() {
		sp := m.Spaces[name]
		dbSlot, err := h.Register(moduleName, state.EntitySpace, state.FieldDryBulbTemperature, name, -1)
		if err != nil {
			return nil, err
		}
		sp.DryBulbTempSlot.Assign(dbSlot)
		sr := &spaceRuntime{
			space:         sp,
			dryBulbSlot:   dbSlot,
			infVolumeSlot: sp.InfiltrationVolumeSlot.MustSlot(),
			infTempSlot:   sp.InfiltrationTemperatureSlot.MustSlot(),
		}
		mod.spaces = append(mod.spaces, sr)
		spaceRuntimeByName[name] = sr
	}

	for _, s := range m.AllSurfaceLike() {
		sr := surfRuntimeByPtr[s]
		if s.Front.Kind == model.BoundarySpace {
			if spr, ok := spaceRuntimeByName[s.Front.SpaceName]; ok {
				spr.sides = append(spr.sides, surfaceSide{surf: sr, isFront: true})
			}
		}
		if s.Back.Kind == model.BoundarySpace {
			if spr, ok := spaceRuntimeByName[s.Back.SpaceName]; ok {
				spr.sides = append(spr.sides, surfaceSide{surf: sr, isFront: false})
			}
		}
	}

	for _, name := range m.SortedHVACNames() {
		hv := m.HVACs[name]
		if hv.Target == nil {
			continue
		}
		slot, err := h.Register(moduleName, state.EntityHVAC, state.FieldHVACConsumption, name, -1)
		if err != nil {
			return nil, err
		}
		hv.ConsumptionSlot.Assign(slot)
		spr := spaceRuntimeByName[hv.Target.Name]
		spr.hvacs = append(spr.hvacs, hv)
		spr.hvacSlots = append(spr.hvacSlots, slot)
	}

	for _, name := range m.SortedLuminaireNames() {
		lu := m.Luminaires[name]
		if lu.Target == nil {
			continue
		}
		slot, err := h.Register(moduleName, state.EntityLuminaire, state.FieldLuminairePower, name, -1)
		if err != nil {
			return nil, err
		}
		lu.PowerSlot.Assign(slot)
		spr := spaceRuntimeByName[lu.Target.Name]
		spr.luminaires = append(spr.luminaires, lu)
		spr.luminaireSlots = append(spr.luminaireSlots, slot)
	}

	return mod, nil
}

// Name identifies this module for error tagging and log lines.
func (m *Module) Name() string { return moduleName }

// March advances every surface's node temperatures and every space's air
// temperature by m.subdivisions sub-steps.
func (m *Module) March(date weather.Date, w weather.CurrentWeather, mdl *model.Model, st *state.State) error {
	for sub := 0; sub < m.subdivisions; sub++ {
		m.computeConvectionCoefficients(w, mdl, st)
		if err := m.solveSurfacesConcurrently(w, mdl, st); err != nil {
			return err
		}
		m.integrateZones(mdl, st)
	}
	if ok, bad := st.AllFinite(); !ok {
		return simerrors.New(moduleName, simerrors.CodeNumerical, "non-finite state at %q, date %s", st.Name(bad), date.String())
	}
	return nil
}

func (m *Module) computeConvectionCoefficients(w weather.CurrentWeather, mdl *model.Model, st *state.State) {
	windSpeed := mdl.Site.Terrain.LocalWindSpeed(w.WindSpeed, 10)
	for _, sr := range m.surfaces {
		tilt := sr.surface.Tilt()
		frontNodeT := st.Get(sr.nodeStart)
		backNodeT := st.Get(sr.nodeStart + sr.nNodes - 1)

		frontAirT := resolveSideTemperature(sr.surface.Front, w, mdl, st)
		backAirT := resolveSideTemperature(sr.surface.Back, w, mdl, st)

		var hFront float64
		if sr.surface.PrecalculatedFrontConvection != nil {
			hFront = *sr.surface.PrecalculatedFrontConvection
		} else if sr.surface.Front.IsExterior() {
			hFront = exteriorConvectionCoefficient(frontNodeT-frontAirT, tilt, windSpeed)
		} else {
			hFront = interiorConvectionCoefficient(frontNodeT-frontAirT, tilt)
		}

		var hBack float64
		backTilt := math.Pi - tilt
		if sr.surface.PrecalculatedBackConvection != nil {
			hBack = *sr.surface.PrecalculatedBackConvection
		} else if sr.surface.Back.IsExterior() {
			hBack = exteriorConvectionCoefficient(backNodeT-backAirT, backTilt, windSpeed)
		} else {
			hBack = interiorConvectionCoefficient(backNodeT-backAirT, backTilt)
		}

		st.Set(sr.frontConvSlot, hFront)
		st.Set(sr.backConvSlot, hBack)
	}
}

func resolveSideTemperature(b model.Boundary, w weather.CurrentWeather, mdl *model.Model, st *state.State) float64 {
	switch b.Kind {
	case model.BoundaryOutdoor:
		return w.DryBulbTemperature
	case model.BoundaryGround:
		return groundReferenceTemperature
	case model.BoundarySpace:
		sp := mdl.Spaces[b.SpaceName]
		return st.Get(sp.DryBulbTempSlot.MustSlot())
	case model.BoundaryAmbientTemperature:
		return b.AmbientTemperature
	default: // BoundaryAdiabatic
		return 0
	}
}

func (m *Module) solveSurfacesConcurrently(w weather.CurrentWeather, mdl *model.Model, st *state.State) error {
	n := len(m.surfaces)
	if n == 0 {
		return nil
	}
	nprocs := runtime.GOMAXPROCS(0)
	if nprocs > n {
		nprocs = n
	}
	if nprocs < 1 {
		nprocs = 1
	}
	errs := make([]error, nprocs)
	var wg sync.WaitGroup
	for p := 0; p < nprocs; p++ {
		wg.Add(1)
		go func(procNum int) {
			defer wg.Done()
			for ii := procNum; ii < n; ii += nprocs {
				if err := m.solveSurface(m.surfaces[ii], w, mdl, st); err != nil {
					errs[procNum] = err
					return
				}
			}
		}(p)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (m *Module) solveSurface(sr *surfaceRuntime, w weather.CurrentWeather, mdl *model.Model, st *state.State) error {
	tOld := make([]float64, sr.nNodes)
	for i := 0; i < sr.nNodes; i++ {
		tOld[i] = st.Get(sr.nodeStart + i)
	}

	frontAirT := resolveSideTemperature(sr.surface.Front, w, mdl, st)
	backAirT := resolveSideTemperature(sr.surface.Back, w, mdl, st)
	hConvFront := st.Get(sr.frontConvSlot)
	hConvBack := st.Get(sr.backConvSlot)

	frontIR := st.Get(sr.frontIRSlot)
	backIR := st.Get(sr.backIRSlot)
	hRadFront, tRadFront := radiativeCoupling(frontIR, sr.frontEmissivity, tOld[0])
	hRadBack, tRadBack := radiativeCoupling(backIR, sr.backEmissivity, tOld[sr.nNodes-1])

	frontSW := st.Get(sr.frontSWSlot) * sr.frontAbsorptance * sr.area
	backSW := st.Get(sr.backSWSlot) * sr.backAbsorptance * sr.area

	frontFilm := hConvFront*sr.area + hRadFront*sr.area
	frontSourceT := frontAirT
	if frontFilm > 0 {
		frontSourceT = (hConvFront*sr.area*frontAirT + hRadFront*sr.area*tRadFront) / frontFilm
	}
	front := boundaryCondition{filmConductance: frontFilm, sourceTempC: frontSourceT, absorbedPowerW: frontSW}

	backFilm := hConvBack*sr.area + hRadBack*sr.area
	backSourceT := backAirT
	if backFilm > 0 {
		backSourceT = (hConvBack*sr.area*backAirT + hRadBack*sr.area*tRadBack) / backFilm
	}
	back := boundaryCondition{filmConductance: backFilm, sourceTempC: backSourceT, absorbedPowerW: backSW}

	tNew, err := assembleAndSolve(sr.net, front, back, tOld, m.subDt)
	if err != nil {
		return simerrors.Wrap(moduleName, simerrors.CodeNumerical, err, "surface %q: conduction solve failed", sr.surface.Name)
	}
	for i, t := range tNew {
		st.Set(sr.nodeStart+i, t)
	}
	return nil
}

func (m *Module) integrateZones(mdl *model.Model, st *state.State) {
	for _, spr := range m.spaces {
		tZone := st.Get(spr.dryBulbSlot)
		mcp := spr.space.Volume * airDensity * airSpecificHeat

		var surfaceConductance, surfaceSourceW float64
		for _, side := range spr.sides {
			var h, t float64
			if side.isFront {
				h = st.Get(side.surf.frontConvSlot)
				t = st.Get(side.surf.nodeStart)
			} else {
				h = st.Get(side.surf.backConvSlot)
				t = st.Get(side.surf.nodeStart + side.surf.nNodes - 1)
			}
			surfaceConductance += h * side.surf.area
			surfaceSourceW += h * side.surf.area * t
		}

		infVolume := st.Get(spr.infVolumeSlot)
		infTemp := st.Get(spr.infTempSlot)
		mdotCp := infVolume * airDensity * airSpecificHeat

		var heatGain float64
		for _, slot := range spr.hvacSlots {
			heatGain += st.Get(slot)
		}
		for _, slot := range spr.luminaireSlots {
			heatGain += st.Get(slot)
		}

		forcing := zoneForcing{
			surfaceConductance: surfaceConductance,
			surfaceSourceW:     surfaceSourceW,
			infiltrationMdotCp: mdotCp,
			outdoorTempC:       infTemp,
			heatGainW:          heatGain,
		}
		tZone = rk4ZoneStep(tZone, mcp, m.subDt, forcing)
		st.Set(spr.dryBulbSlot, tZone)

		powers, _ := evaluateHVAC(spr.hvacs, tZone, mcp, m.subDt)
		for i, slot := range spr.hvacSlots {
			st.Set(slot, powers[i])
		}
	}
}
