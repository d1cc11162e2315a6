package thermal

import "github.com/germolinal/simple-sub002/pkg/model"

// airDensity and airSpecificHeat are the zone air properties used by the
// heat-balance ODE and the infiltration mass-flow term; both are taken
// from model.GasAir's tabulated properties.
var airDensity = model.GasAir.Density()
var airSpecificHeat = model.GasAir.SpecificHeat()

// zoneForcing bundles everything the zone heat-balance ODE treats as
// constant across one sub-timestep: the surface convective coupling terms
// (already evaluated from the just-updated node temperatures), the
// infiltration exchange, and the heat gains carried over from HVAC and
// luminaires.
type zoneForcing struct {
	surfaceConductance float64 // sum_i h_i A_i, W/K
	surfaceSourceW     float64 // sum_i h_i A_i T_surf_i, W
	infiltrationMdotCp float64 // kg/s * J/(kg K) = W/K
	outdoorTempC       float64
	heatGainW          float64 // HVAC + luminaire, carried from the previous evaluation
}

// rk4ZoneStep integrates m*cp*dT/dt = surfaceSourceW - surfaceConductance*T
// + infiltrationMdotCp*(outdoorTempC - T) + heatGainW over one sub-timestep
// using fourth-order Runge-Kutta, matching the conduction solve's own
// sub-timestep so both halves of the one-step-lag coupling advance
// together.
func rk4ZoneStep(tZone, mcp, subDt float64, f zoneForcing) float64 {
	deriv := func(t float64) float64 {
		num := f.surfaceSourceW - f.surfaceConductance*t +
			f.infiltrationMdotCp*(f.outdoorTempC-t) + f.heatGainW
		return num / mcp
	}
	k1 := deriv(tZone)
	k2 := deriv(tZone + subDt/2*k1)
	k3 := deriv(tZone + subDt/2*k2)
	k4 := deriv(tZone + subDt*k3)
	return tZone + subDt/6*(k1+2*k2+2*k3+k4)
}

// evaluateHVAC computes the ideal heating/cooling power each device
// targeting this zone delivers to bring tZone toward its setpoint within
// one sub-timestep, clipped to the device's capacity. Returns the signed
// power for each device in device order (positive = heating, negative =
// cooling) and their sum for the next sub-step's heat gain.
func evaluateHVAC(hvacs []*model.HVAC, tZone, mcp, subDt float64) ([]float64, float64) {
	powers := make([]float64, len(hvacs))
	var total float64
	for i, h := range hvacs {
		var p float64
		switch {
		case tZone < h.HeatingSetpoint:
			needed := (h.HeatingSetpoint - tZone) * mcp / subDt
			p = clip(needed, 0, h.MaxHeatingPower)
		case !h.IsHeatingOnly() && tZone > h.CoolingSetpoint:
			needed := (tZone - h.CoolingSetpoint) * mcp / subDt
			p = -clip(needed, 0, h.MaxCoolingPower)
		}
		powers[i] = p
		total += p
	}
	return powers, total
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
