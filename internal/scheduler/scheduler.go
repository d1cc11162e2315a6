// Package scheduler drives a simulation: it constructs the physics
// modules in their required order, resolves user output requests to state
// slots, runs an optional warmup period to seed stable initial
// temperatures, then marches the main period while serializing requested
// outputs.
package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
	"github.com/germolinal/simple-sub002/internal/common/logger"
	"github.com/germolinal/simple-sub002/internal/common/progress"
	"github.com/germolinal/simple-sub002/internal/simulation"
	"github.com/germolinal/simple-sub002/internal/simulation/airflow"
	"github.com/germolinal/simple-sub002/internal/simulation/optical"
	"github.com/germolinal/simple-sub002/internal/simulation/thermal"
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/state"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

const moduleName = "scheduler"

// Controller is the user hook invoked before each main-timestep march. It
// may write only to the operational slots the driver exposes (fenestration
// open fractions, HVAC setpoints) — every other slot belongs to a physics
// module and writing it here would violate the exclusive-writer-per-slot
// rule the rest of the engine relies on.
type Controller func(date weather.Date, m *model.Model, st *state.State) error

// outputBinding ties one user-requested output to the slot it resolved to.
type outputBinding struct {
	slot int
}

// Driver owns the model's state for the life of a run and lends it
// mutably to exactly one module at a time during a march, per the
// single-threaded top-level scheduling model.
type Driver struct {
	model   *model.Model
	state   *state.State
	modules []simulation.Module // air-flow, optical, thermal, in construction and march order

	outputs []outputBinding

	runID   string
	metrics *Metrics
}

// New constructs the air-flow, optical, and thermal modules in that order
// against a single shared header, registers the controller-writable
// operational slots (no physics module owns these), then finalizes the
// header into the value-phase State.
func New(m *model.Model, nMainSubsteps int) (*Driver, error) {
	h := state.NewHeader()

	airMod, err := airflow.New(m.Meta, m.Solar, m, h, nMainSubsteps)
	if err != nil {
		return nil, err
	}
	opticalMod, err := optical.New(m.Meta, m.Solar, m, h, nMainSubsteps)
	if err != nil {
		return nil, err
	}
	thermalMod, err := thermal.New(m.Meta, m.Solar, m, h, nMainSubsteps)
	if err != nil {
		return nil, err
	}

	if err := registerControlSlots(m, h); err != nil {
		return nil, err
	}

	st := h.Finalize()
	logger.Info("scheduler: constructed %d modules, %d state slots", 3, st.Len())

	return &Driver{
		model:   m,
		state:   st,
		modules: []simulation.Module{airMod, opticalMod, thermalMod},
		runID:   uuid.NewString(),
	}, nil
}

// registerControlSlots gives every fenestration's open fraction and every
// space's heating/cooling setpoint a state slot, owned by no physics
// module: the scheduler's Controller hook is their only legitimate writer,
// and thermal reads the HVAC's static setpoint fields directly rather than
// through these slots (see DESIGN.md for why the two coexist).
func registerControlSlots(m *model.Model, h *state.Header) error {
	for _, name := range m.SortedFenestrationNames() {
		f := m.Fenestrations[name]
		slot, err := h.Register(moduleName, state.EntityFenestration, state.FieldOpenFraction, name, -1)
		if err != nil {
			return err
		}
		if !f.OpenFractionSlot.Assign(slot) {
			return simerrors.New(moduleName, simerrors.CodeConstruction, "fenestration %q: open fraction slot already assigned", name)
		}
	}
	for name, sp := range m.Spaces {
		heatSlot, err := h.Register(moduleName, state.EntitySpace, state.FieldHeatingSetpoint, name, -1)
		if err != nil {
			return err
		}
		if !sp.HeatingSetpointSlot.Assign(heatSlot) {
			return simerrors.New(moduleName, simerrors.CodeConstruction, "space %q: heating setpoint slot already assigned", name)
		}
		coolSlot, err := h.Register(moduleName, state.EntitySpace, state.FieldCoolingSetpoint, name, -1)
		if err != nil {
			return err
		}
		if !sp.CoolingSetpointSlot.Assign(coolSlot) {
			return simerrors.New(moduleName, simerrors.CodeConstruction, "space %q: cooling setpoint slot already assigned", name)
		}
	}
	return nil
}

// RunID returns the uuid tagging this driver's construction, used to
// namespace an optical cache file or correlate this run's log lines.
func (d *Driver) RunID() string { return d.runID }

// State exposes the driver's shared value vector, e.g. for a caller that
// wants to seed initial conditions before Warmup.
func (d *Driver) State() *state.State { return d.state }

// SetMetrics attaches a prometheus exporter; nil disables metrics
// reporting (the default).
func (d *Driver) SetMetrics(metrics *Metrics) { d.metrics = metrics }

// ResolveOutputs resolves each of the model's declared output requests to
// a slot index once, at construction time, the way every other
// cross-module reference in this engine is resolved up front rather than
// looked up every timestep.
func (d *Driver) ResolveOutputs() error {
	d.outputs = d.outputs[:0]
	for _, req := range d.model.Outputs {
		kind, field, nodeIndex := fieldFor(req)
		slot, err := d.state.FindSlot(kind, field, req.EntityName, nodeIndex)
		if err != nil {
			return simerrors.Wrap(moduleName, simerrors.CodeUserInput, err, "resolving output request %v", req.Kind)
		}
		d.outputs = append(d.outputs, outputBinding{slot: slot})
	}
	return nil
}

func fieldFor(req model.OutputRequest) (state.EntityKind, state.Field, int) {
	switch req.Kind {
	case model.OutputSpaceDryBulbTemperature:
		return state.EntitySpace, state.FieldDryBulbTemperature, -1
	case model.OutputSurfaceFrontSolarIrradiance:
		return state.EntitySurface, state.FieldFrontShortwaveIrradiance, -1
	case model.OutputSurfaceBackSolarIrradiance:
		return state.EntitySurface, state.FieldBackShortwaveIrradiance, -1
	case model.OutputSurfaceFrontIRIrradiance:
		return state.EntitySurface, state.FieldFrontIRIrradiance, -1
	case model.OutputSurfaceBackIRIrradiance:
		return state.EntitySurface, state.FieldBackIRIrradiance, -1
	case model.OutputSurfaceNodeTemperature:
		return state.EntitySurface, state.FieldNodeTemperature, req.NodeIndex
	case model.OutputFenestrationOpenFraction:
		return state.EntityFenestration, state.FieldOpenFraction, -1
	case model.OutputSpaceInfiltrationVolume:
		return state.EntitySpace, state.FieldInfiltrationVolume, -1
	case model.OutputHVACConsumption:
		return state.EntityHVAC, state.FieldHVACConsumption, -1
	case model.OutputLuminairePower:
		return state.EntityLuminaire, state.FieldLuminairePower, -1
	default:
		return state.EntitySpace, state.FieldDryBulbTemperature, -1
	}
}

// Warmup marches air-flow, optical, and thermal repeatedly over period
// without invoking the controller or emitting output, to let the thermal
// engine's node and zone temperatures settle away from their cold-start
// initial values before the recorded main loop begins.
func (d *Driver) Warmup(ctx context.Context, period *weather.Period, w weather.Weather) error {
	logger.Info("scheduler[%s]: warmup started", d.runID)
	tracker := progress.New(0, "scheduler: warmup")
	date, ok := period.Next()
	for ok {
		if err := ctx.Err(); err != nil {
			return simerrors.Wrap(moduleName, simerrors.CodeResource, err, "warmup canceled")
		}
		if err := d.marchOneStep(date, w); err != nil {
			return err
		}
		tracker.Add(1)
		date, ok = period.Next()
	}
	tracker.Finish()
	logger.Info("scheduler[%s]: warmup finished", d.runID)
	return nil
}

// Run marches the main period, invoking controller (if non-nil) before
// each timestep's physics modules and writing a CSV row of the resolved
// outputs after each one. It polls ctx between timesteps, never mid-march.
func (d *Driver) Run(ctx context.Context, period *weather.Period, w weather.Weather, controller Controller, out *CSVWriter) error {
	logger.Info("scheduler[%s]: main loop started", d.runID)
	if out != nil {
		if err := out.WriteHeader(d.headerNames()); err != nil {
			return err
		}
	}

	step := 0
	date, ok := period.Next()
	for ok {
		if err := ctx.Err(); err != nil {
			return simerrors.Wrap(moduleName, simerrors.CodeResource, err, "run canceled at step %d", step)
		}
		if controller != nil {
			if err := controller(date, d.model, d.state); err != nil {
				return simerrors.Wrap(moduleName, simerrors.CodeUserInput, err, "controller failed at %s", date)
			}
		}
		if err := d.marchOneStep(date, w); err != nil {
			return err
		}
		if out != nil {
			if err := out.WriteRow(d.currentOutputValues()); err != nil {
				return err
			}
		}
		if d.metrics != nil {
			d.metrics.ObserveStep(date, step)
		}
		logger.Debug("scheduler[%s]: step %d at %s", d.runID, step, date)
		step++
		date, ok = period.Next()
	}

	logger.Info("scheduler[%s]: main loop completed, %d steps", d.runID, step)
	return nil
}

func (d *Driver) marchOneStep(date weather.Date, w weather.Weather) error {
	cw, err := w.CurrentWeather(date)
	if err != nil {
		return simerrors.Wrap(moduleName, simerrors.CodeResource, err, "reading weather at %s", date)
	}
	for _, mod := range d.modules {
		var start timerStart
		if d.metrics != nil {
			start = d.metrics.startTimer()
		}
		if err := mod.March(date, cw, d.model, d.state); err != nil {
			return fmt.Errorf("%s: %w", mod.Name(), err)
		}
		if d.metrics != nil {
			d.metrics.ObserveMarchDuration(mod.Name(), start)
		}
	}
	if ok, badSlot := d.state.AllFinite(); !ok {
		return simerrors.New(moduleName, simerrors.CodeNumerical, "non-finite state after march at %s: slot %s", date, d.state.Name(badSlot))
	}
	return nil
}

func (d *Driver) headerNames() []string {
	names := make([]string, len(d.outputs))
	for i, b := range d.outputs {
		names[i] = d.state.Name(b.slot)
	}
	return names
}

func (d *Driver) currentOutputValues() []float64 {
	values := make([]float64, len(d.outputs))
	for i, b := range d.outputs {
		values[i] = d.state.Get(b.slot)
	}
	return values
}
