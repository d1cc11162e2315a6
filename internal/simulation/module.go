// Package simulation defines the contract every physics engine (air-flow,
// optical, thermal) implements.
package simulation

import (
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/state"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

// Module is the contract every physics engine implements: Name and March.
// Each engine package's New performs the header-phase registration; March
// performs one main-timestep's physics. There is no separate
// memory-allocation operation and no scratch argument: an engine allocates
// whatever working buffers it needs inside March.
type Module interface {
	// Name identifies the module for error tagging and log lines.
	Name() string

	// March advances the module by one main timestep, reading the current
	// weather, relevant state slots, and the model; writing only the slots
	// this module registered during New.
	March(date weather.Date, w weather.CurrentWeather, m *model.Model, st *state.State) error
}

// Constructor documents the signature every module's New function follows:
// (metaOptions, solarOptions, model, header, nMainSubsteps) -> (Module, error).
// Go has no room for a shared constructor type across differently-shaped
// New functions, so this is a comment-only contract rather than an
// interface; each engine package's New is checked against it by hand.
type Constructor func(meta model.MetaOptions, solar model.SolarOptions, m *model.Model, h *state.Header, nMainSubsteps int) (Module, error)
