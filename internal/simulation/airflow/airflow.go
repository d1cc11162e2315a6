// Package airflow implements the engine's infiltration sub-engine: analytic
// correlations (constant, BLAST, DOE-2, design-flow-rate,
// effective-leakage-area) that write each Space's infiltration volume and
// temperature slots every main timestep.
package airflow

import (
	"math"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/state"
	"github.com/germolinal/simple-sub002/pkg/weather"

	"github.com/germolinal/simple-sub002/internal/common/logger"
)

const moduleName = "airflow"

// resolver computes and writes one Space's infiltration volume/temperature
// for the current weather sample. Closing over the space and its
// pre-resolved coefficients at construction time avoids re-deriving Cs/Cw
// (and re-checking building data) on every march step.
type resolver func(w weather.CurrentWeather, site weather.SiteDetails, st *state.State) error

// Module is the air-flow engine.
type Module struct {
	resolvers []resolver
}

// New registers InfiltrationVolume and InfiltrationTemperature slots for
// every Space (a space with no Infiltration spec gets a no-op resolver), and
// pre-resolves each space's correlation into a closure so March does no
// per-step branching.
func New(meta model.MetaOptions, solar model.SolarOptions, m *model.Model, h *state.Header, nMainSubsteps int) (*Module, error) {
	mod := &Module{}
	for _, name := range m.SortedSpaceNames() {
		sp := m.Spaces[name]
		volSlot, err := h.Register(moduleName, state.EntitySpace, state.FieldInfiltrationVolume, name, -1)
		if err != nil {
			return nil, err
		}
		tempSlot, err := h.Register(moduleName, state.EntitySpace, state.FieldInfiltrationTemperature, name, -1)
		if err != nil {
			return nil, err
		}
		sp.InfiltrationVolumeSlot.Assign(volSlot)
		sp.InfiltrationTemperatureSlot.Assign(tempSlot)

		if sp.Infiltration == nil {
			mod.resolvers = append(mod.resolvers, noOpResolver(sp))
			continue
		}
		r, err := buildResolver(m, sp)
		if err != nil {
			return nil, err
		}
		mod.resolvers = append(mod.resolvers, r)
	}
	logger.Debug("%s: registered infiltration slots for %d spaces", moduleName, len(mod.resolvers))
	return mod, nil
}

// Name identifies this module for error tagging and log lines.
func (m *Module) Name() string { return moduleName }

// March evaluates every space's infiltration resolver against the current
// weather sample.
func (m *Module) March(date weather.Date, w weather.CurrentWeather, mdl *model.Model, st *state.State) error {
	site := mdl.Site
	for _, r := range m.resolvers {
		if err := r(w, site, st); err != nil {
			return err
		}
	}
	return nil
}

func noOpResolver(sp *model.Space) resolver {
	volSlot := sp.InfiltrationVolumeSlot.MustSlot
	tempSlot := sp.InfiltrationTemperatureSlot.MustSlot
	return func(w weather.CurrentWeather, site weather.SiteDetails, st *state.State) error {
		st.Set(volSlot(), 0)
		st.Set(tempSlot(), w.DryBulbTemperature)
		return nil
	}
}

func buildResolver(m *model.Model, sp *model.Space) (resolver, error) {
	inf := sp.Infiltration
	volSlot := sp.InfiltrationVolumeSlot.MustSlot()
	tempSlot := sp.InfiltrationTemperatureSlot.MustSlot()
	// DryBulbTempSlot is assigned later, by the thermal module's own
	// construction: air-flow is built first, so its resolvers must resolve
	// this cell lazily rather than at construction time.
	dryBulbSlot := &sp.DryBulbTempSlot

	switch inf.Kind {
	case model.InfiltrationConstant:
		return func(w weather.CurrentWeather, site weather.SiteDetails, st *state.State) error {
			st.Set(tempSlot, w.DryBulbTemperature)
			st.Set(volSlot, inf.Flow)
			return nil
		}, nil

	case model.InfiltrationBlast:
		return designFlowRateResolverABCD(sp, dryBulbSlot, volSlot, tempSlot, inf.Flow, 0.606, 0.03636, 0.1177, 0), nil

	case model.InfiltrationDoe2:
		return designFlowRateResolverABCD(sp, dryBulbSlot, volSlot, tempSlot, inf.Flow, 0, 0, 0.224, 0), nil

	case model.InfiltrationDesignFlowRate:
		return designFlowRateResolverABCD(sp, dryBulbSlot, volSlot, tempSlot, inf.Phi, inf.A, inf.B, inf.C, inf.D), nil

	case model.InfiltrationEffectiveLeakageArea:
		return effectiveLeakageAreaResolver(m, sp, dryBulbSlot, volSlot, tempSlot, inf.AreaM2)

	default:
		return nil, simerrors.New(moduleName, simerrors.CodeUserInput, "space %q has unknown infiltration kind %d", sp.Name, inf.Kind)
	}
}

// designFlowRateResolverABCD implements the general design-flow-rate
// correlation; Blast and Doe2 are callers with fixed (a,b,c,d).
func designFlowRateResolverABCD(sp *model.Space, dryBulb *state.Cell, volSlot, tempSlot int, designRate, a, b, c, d float64) resolver {
	dbSlot := -1
	return func(w weather.CurrentWeather, site weather.SiteDetails, st *state.State) error {
		if dbSlot < 0 {
			dbSlot = dryBulb.MustSlot()
		}
		tOut := w.DryBulbTemperature
		tSpace := st.Get(dbSlot)
		st.Set(tempSlot, tOut)

		windSpeed := site.Terrain.LocalWindSpeed(w.WindSpeed, 10)
		volume := designRate * (a + b*math.Abs(tSpace-tOut) + c*windSpeed + d*windSpeed*windSpeed)
		st.Set(volSlot, volume)
		return nil
	}
}

// effectiveLeakageAreaResolver resolves the Building's stack/wind
// coefficients once at construction time (the original's
// resolve_stack_coefficient/resolve_wind_coefficient) rather than looking
// them up on every march step.
func effectiveLeakageAreaResolver(m *model.Model, sp *model.Space, dryBulb *state.Cell, volSlot, tempSlot int, areaM2 float64) (resolver, error) {
	if sp.Building == nil {
		return nil, simerrors.New(moduleName, simerrors.CodeUserInput,
			"space %q uses EffectiveLeakageArea infiltration but has no building", sp.Name)
	}
	cs, err := resolveStackCoefficient(sp, sp.Building)
	if err != nil {
		return nil, err
	}
	cw, err := resolveWindCoefficient(sp, sp.Building)
	if err != nil {
		return nil, err
	}
	dbSlot := -1
	return func(w weather.CurrentWeather, site weather.SiteDetails, st *state.State) error {
		if dbSlot < 0 {
			dbSlot = dryBulb.MustSlot()
		}
		tOut := w.DryBulbTemperature
		tSpace := st.Get(dbSlot)
		st.Set(tempSlot, tOut)

		deltaT := math.Abs(tOut - tSpace)
		ws := w.WindSpeed
		aux := math.Sqrt(cs*deltaT + cw*ws*ws)
		st.Set(volSlot, areaM2*10.0*aux)
		return nil
	}, nil
}

// stackCoefficientByStoreys is ASHRAE Fundamentals' Cs table for
// EffectiveLeakageArea infiltration, keyed by storey count 1-3. Buildings
// above 3 storeys clamp to the 3-storey value and log a warning: the table
// was not derived for taller buildings, and guessing an extrapolation would
// be worse than the documented clamp.
var stackCoefficientByStoreys = map[int]float64{1: 0.000145, 2: 0.000290, 3: 0.000435}

func resolveStackCoefficient(sp *model.Space, b *model.Building) (float64, error) {
	if b.StackCoefficient != nil {
		return *b.StackCoefficient, nil
	}
	if b.NStoreys == nil {
		return 0, simerrors.New(moduleName, simerrors.CodeUserInput,
			"space %q: building %q has neither stack_coefficient nor n_storeys set", sp.Name, b.Name)
	}
	n := *b.NStoreys
	if n <= 0 {
		return 0, simerrors.New(moduleName, simerrors.CodeUserInput, "building %q has %d storeys", b.Name, n)
	}
	if n > 3 {
		logger.Warn("%s: building %q has %d storeys; EffectiveLeakageArea's stack coefficient table tops out at 3, clamping", moduleName, b.Name, n)
		n = 3
	}
	return stackCoefficientByStoreys[n], nil
}

// windCoefficientByShelterAndStoreys is ASHRAE Fundamentals' Cw table,
// keyed by (shelter class, storey count 1-3, clamped above 3 the same way
// as the stack coefficient).
var windCoefficientByShelterAndStoreys = map[model.ShelterClass]map[int]float64{
	model.ShelterNoObstructions: {1: 0.000319, 2: 0.000420, 3: 0.000494},
	model.ShelterIsolatedRural:  {1: 0.000246, 2: 0.000325, 3: 0.000382},
	model.ShelterUrban:          {1: 0.000172, 2: 0.000231, 3: 0.000271},
	model.ShelterLargeLotUrban:  {1: 0.000104, 2: 0.000137, 3: 0.000161},
	model.ShelterSmallLotUrban:  {1: 0.000032, 2: 0.000042, 3: 0.000049},
}

func resolveWindCoefficient(sp *model.Space, b *model.Building) (float64, error) {
	if b.WindCoefficient != nil {
		return *b.WindCoefficient, nil
	}
	if b.NStoreys == nil {
		return 0, simerrors.New(moduleName, simerrors.CodeUserInput,
			"space %q: building %q has no n_storeys, cannot resolve wind coefficient", sp.Name, b.Name)
	}
	if b.Shelter == nil {
		return 0, simerrors.New(moduleName, simerrors.CodeUserInput,
			"space %q: building %q has no shelter_class, cannot resolve wind coefficient", sp.Name, b.Name)
	}
	n := *b.NStoreys
	if n > 3 {
		logger.Warn("%s: building %q has %d storeys; EffectiveLeakageArea's wind coefficient table tops out at 3, clamping", moduleName, b.Name, n)
		n = 3
	}
	if n < 1 {
		n = 1
	}
	table, ok := windCoefficientByShelterAndStoreys[*b.Shelter]
	if !ok {
		return 0, simerrors.New(moduleName, simerrors.CodeUserInput, "building %q has unknown shelter class", b.Name)
	}
	return table[n], nil
}
