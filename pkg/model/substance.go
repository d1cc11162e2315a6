package model

// SubstanceKind discriminates the two substance variants. A solid
// "Normal" substance carries thermal and optional optical properties; a
// "Gas" substance is a named reference to a tabulated gas.
type SubstanceKind int

const (
	SubstanceNormal SubstanceKind = iota
	SubstanceGas
)

// Gas is the closed set of gases with tabulated density and heat capacity.
type Gas int

const (
	GasAir Gas = iota
	GasArgon
	GasKrypton
	GasXenon
)

// gas properties at standard conditions, used by the thermal engine for
// gas-layer nodes and (for air) for the zone air heat balance.
var gasDensity = map[Gas]float64{
	GasAir:     1.2250,
	GasArgon:   1.6840,
	GasKrypton: 3.4890,
	GasXenon:   5.4950,
}

var gasSpecificHeat = map[Gas]float64{
	GasAir:     1006.0,
	GasArgon:   519.0,
	GasKrypton: 248.0,
	GasXenon:   158.0,
}

// gasConductivity tabulates thermal conductivity at room temperature, used
// by the thermal engine to treat a sealed gas gap as a conduction-only
// layer (convection within the cavity itself is not modeled).
var gasConductivity = map[Gas]float64{
	GasAir:     0.0250,
	GasArgon:   0.0177,
	GasKrypton: 0.0093,
	GasXenon:   0.0057,
}

// Density returns the tabulated density of the gas, in kg/m3.
func (g Gas) Density() float64 { return gasDensity[g] }

// SpecificHeat returns the tabulated specific heat of the gas, in J/(kg K).
func (g Gas) SpecificHeat() float64 { return gasSpecificHeat[g] }

// Conductivity returns the tabulated thermal conductivity of the gas, in
// W/(m K).
func (g Gas) Conductivity() float64 { return gasConductivity[g] }

// OpticalProperties bundles the optional front/back optical coefficients a
// Normal substance may carry. All are in [0, 1].
type OpticalProperties struct {
	FrontSolarAbsorptance  float64
	BackSolarAbsorptance   float64
	SolarTransmittance     float64
	FrontVisibleReflectance float64
	BackVisibleReflectance  float64
	VisibleTransmissivity   float64
	FrontThermalAbsorptance float64
	BackThermalAbsorptance  float64
}

// Substance is a material-property bundle, independent of thickness. A
// Material pairs a Substance with a thickness because several materials may
// share one substance.
type Substance struct {
	Name string
	Kind SubstanceKind

	// Normal fields
	Conductivity float64 // W/(m K)
	SpecificHeat float64 // J/(kg K)
	Density      float64 // kg/m3
	Optical      *OpticalProperties

	// Gas fields
	GasType Gas
}

// NewNormalSubstance builds a solid substance with the given thermal
// properties and no optical properties (opaque core layer).
func NewNormalSubstance(name string, conductivity, specificHeat, density float64) *Substance {
	return &Substance{
		Name:         name,
		Kind:         SubstanceNormal,
		Conductivity: conductivity,
		SpecificHeat: specificHeat,
		Density:      density,
	}
}

// NewGasSubstance builds a gas substance referencing a tabulated gas.
func NewGasSubstance(name string, gas Gas) *Substance {
	return &Substance{Name: name, Kind: SubstanceGas, GasType: gas}
}

// Diffusivity returns the thermal diffusivity alpha = k / (rho cp), used by
// the thermal engine's node-count/sub-timestep selection. Only meaningful
// for Normal substances.
func (s *Substance) Diffusivity() float64 {
	if s.Density == 0 || s.SpecificHeat == 0 {
		return 0
	}
	return s.Conductivity / (s.Density * s.SpecificHeat)
}
