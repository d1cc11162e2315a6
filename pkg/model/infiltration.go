package model

// InfiltrationKind is the closed set of infiltration correlations supported
// by the air-flow engine.
type InfiltrationKind int

const (
	InfiltrationConstant InfiltrationKind = iota
	InfiltrationBlast
	InfiltrationDoe2
	InfiltrationDesignFlowRate
	InfiltrationEffectiveLeakageArea
)

// Infiltration describes how a Space exchanges air with the outdoors.
type Infiltration struct {
	Kind InfiltrationKind

	// Constant, Blast, Doe2
	Flow float64 // m3/s

	// DesignFlowRate coefficients and design flow
	A, B, C, D float64
	Phi        float64 // design flow rate, m3/s

	// EffectiveLeakageArea
	AreaM2 float64
}

// NewConstantInfiltration returns a Constant-flow infiltration spec.
func NewConstantInfiltration(flow float64) Infiltration {
	return Infiltration{Kind: InfiltrationConstant, Flow: flow}
}

// NewBlastInfiltration returns a Blast-correlation infiltration spec.
func NewBlastInfiltration(flow float64) Infiltration {
	return Infiltration{Kind: InfiltrationBlast, Flow: flow}
}

// NewDoe2Infiltration returns a DOE-2-correlation infiltration spec.
func NewDoe2Infiltration(flow float64) Infiltration {
	return Infiltration{Kind: InfiltrationDoe2, Flow: flow}
}

// NewDesignFlowRateInfiltration returns a fully general design-flow-rate
// infiltration spec.
func NewDesignFlowRateInfiltration(a, b, c, d, phi float64) Infiltration {
	return Infiltration{Kind: InfiltrationDesignFlowRate, A: a, B: b, C: c, D: d, Phi: phi}
}

// NewEffectiveLeakageAreaInfiltration returns an effective-leakage-area
// infiltration spec, area in m2.
func NewEffectiveLeakageAreaInfiltration(areaM2 float64) Infiltration {
	return Infiltration{Kind: InfiltrationEffectiveLeakageArea, AreaM2: areaM2}
}
