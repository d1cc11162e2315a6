// Package state implements the shared simulation state: a header phase in
// which physics modules register typed state elements and receive stable
// slot indices, followed by a value phase in which all cross-module
// communication happens by reading and writing a single flat vector of
// floats through those indices.
package state

import (
	"fmt"
	"sync"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
)

// EntityKind identifies which model collection a state element belongs to.
type EntityKind int

const (
	EntitySpace EntityKind = iota
	EntitySurface
	EntityFenestration
	EntityHVAC
	EntityLuminaire
)

func (k EntityKind) String() string {
	switch k {
	case EntitySpace:
		return "Space"
	case EntitySurface:
		return "Surface"
	case EntityFenestration:
		return "Fenestration"
	case EntityHVAC:
		return "HVAC"
	case EntityLuminaire:
		return "Luminaire"
	default:
		return "Unknown"
	}
}

// Field is the small closed enum of per-entity quantities a module can
// register. Favors a single get_slot/set_slot pair keyed by this enum over
// a generated accessor method per field.
type Field int

const (
	FieldDryBulbTemperature Field = iota
	FieldNodeTemperature
	FieldFrontConvectionCoefficient
	FieldBackConvectionCoefficient
	FieldFrontShortwaveIrradiance
	FieldBackShortwaveIrradiance
	FieldFrontIRIrradiance
	FieldBackIRIrradiance
	FieldOpenFraction
	FieldInfiltrationVolume
	FieldInfiltrationTemperature
	FieldHVACConsumption
	FieldLuminairePower
	FieldHeatingSetpoint
	FieldCoolingSetpoint
)

func (f Field) String() string {
	names := map[Field]string{
		FieldDryBulbTemperature:         "DryBulbTemperature",
		FieldNodeTemperature:            "NodeTemperature",
		FieldFrontConvectionCoefficient: "FrontConvectionCoefficient",
		FieldBackConvectionCoefficient:  "BackConvectionCoefficient",
		FieldFrontShortwaveIrradiance:   "FrontShortwaveIrradiance",
		FieldBackShortwaveIrradiance:    "BackShortwaveIrradiance",
		FieldFrontIRIrradiance:          "FrontIRIrradiance",
		FieldBackIRIrradiance:           "BackIRIrradiance",
		FieldOpenFraction:               "OpenFraction",
		FieldInfiltrationVolume:         "InfiltrationVolume",
		FieldInfiltrationTemperature:    "InfiltrationTemperature",
		FieldHVACConsumption:            "HVACConsumption",
		FieldLuminairePower:             "LuminairePower",
		FieldHeatingSetpoint:            "HeatingSetpoint",
		FieldCoolingSetpoint:            "CoolingSetpoint",
	}
	if n, ok := names[f]; ok {
		return n
	}
	return "Unknown"
}

// Element describes one registered state slot: its metadata (for output
// naming and error messages) but not its value -- values live in the flat
// vector built by Finalize.
type Element struct {
	Module     string
	Kind       EntityKind
	Field      Field
	EntityName string
	NodeIndex  int // -1 when the field is not per-node (e.g. not NodeTemperature)
}

// Name renders a human-readable, stable identifier for this element, used
// both in CSV output headers and in error messages.
func (e Element) Name() string {
	if e.NodeIndex >= 0 {
		return fmt.Sprintf("%s.%s[%s].node%d", e.Kind, e.Field, e.EntityName, e.NodeIndex)
	}
	return fmt.Sprintf("%s.%s[%s]", e.Kind, e.Field, e.EntityName)
}

// Header is the mutable registry used during module construction. Once
// Finalize is called no further elements may be registered.
type Header struct {
	mu        sync.Mutex
	elements  []Element
	finalized bool
}

// NewHeader creates an empty header ready to accept registrations.
func NewHeader() *Header {
	return &Header{}
}

// Register appends a new state element and returns its slot index. It fails
// if the header has already been finalized into the value phase.
func (h *Header) Register(module string, kind EntityKind, field Field, entityName string, nodeIndex int) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.finalized {
		return 0, simerrors.New(module, simerrors.CodeConstruction,
			"cannot register state element %s.%s[%s]: header already finalized", kind, field, entityName)
	}
	idx := len(h.elements)
	h.elements = append(h.elements, Element{
		Module:     module,
		Kind:       kind,
		Field:      field,
		EntityName: entityName,
		NodeIndex:  nodeIndex,
	})
	return idx, nil
}

// Len returns the number of elements registered so far.
func (h *Header) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.elements)
}

// Finalize freezes the header and returns the value-phase State backed by a
// flat float vector of the same length. No further registration is possible
// after this call.
func (h *Header) Finalize() *State {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finalized = true
	names := make([]Element, len(h.elements))
	copy(names, h.elements)
	return &State{
		values: make([]float64, len(names)),
		names:  names,
	}
}
