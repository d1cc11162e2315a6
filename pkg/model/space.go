package model

import "github.com/germolinal/simple-sub002/pkg/state"

// ShelterClass qualitatively categorizes a Building's wind exposure, used
// by the effective-leakage-area infiltration table lookup when the building
// does not supply explicit stack/wind coefficients. The five categories and
// their ordering follow ASHRAE Fundamentals' shelter classification.
type ShelterClass int

const (
	ShelterNoObstructions ShelterClass = iota
	ShelterIsolatedRural
	ShelterUrban
	ShelterLargeLotUrban
	ShelterSmallLotUrban
)

func (s ShelterClass) String() string {
	switch s {
	case ShelterNoObstructions:
		return "NoObstructions"
	case ShelterIsolatedRural:
		return "IsolatedRural"
	case ShelterUrban:
		return "Urban"
	case ShelterLargeLotUrban:
		return "LargeLotUrban"
	case ShelterSmallLotUrban:
		return "SmallLotUrban"
	default:
		return "Unknown"
	}
}

// Space is a homogeneous-temperature zone. It owns no geometry itself;
// Surfaces with a matching Boundary connect to it.
type Space struct {
	Name           string
	Volume         float64 // m3
	Infiltration   *Infiltration
	Building       *Building
	Storey         *int
	PurposeTags    []string

	DryBulbTempSlot           state.Cell
	InfiltrationVolumeSlot    state.Cell
	InfiltrationTemperatureSlot state.Cell
	HeatingSetpointSlot       state.Cell
	CoolingSetpointSlot       state.Cell
}

// Building groups Spaces and carries the aggregate properties the
// infiltration engine needs when a Space's own Infiltration spec does not
// supply its own stack/wind coefficients.
type Building struct {
	Name             string
	NStoreys         *int
	Shelter          *ShelterClass
	StackCoefficient *float64 // Cs
	WindCoefficient  *float64 // Cw
	Spaces           []*Space
}

// HVACKind is the closed set of HVAC device variants.
type HVACKind int

const (
	HVACIdealHeaterCooler HVACKind = iota
	HVACElectricHeater
)

// HVAC is a heating/cooling device targeting one Space.
type HVAC struct {
	Name             string
	Kind             HVACKind
	Target           *Space
	HeatingSetpoint  float64
	CoolingSetpoint  float64 // only meaningful for IdealHeaterCooler
	MaxHeatingPower  float64 // W
	MaxCoolingPower  float64 // W, only meaningful for IdealHeaterCooler

	ConsumptionSlot state.Cell
}

// IsHeatingOnly reports whether this device can only heat (ElectricHeater).
func (h *HVAC) IsHeatingOnly() bool { return h.Kind == HVACElectricHeater }

// Luminaire is a light fixture with a maximum power, targeting one Space.
type Luminaire struct {
	Name     string
	Target   *Space
	MaxPower float64 // W

	PowerSlot state.Cell
}
