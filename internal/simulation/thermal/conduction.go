package thermal

import (
	"math"

	"github.com/germolinal/simple-sub002/pkg/matrix"
	"github.com/germolinal/simple-sub002/pkg/model"
)

// crankNicolsonTheta blends the implicit (theta) and explicit (1-theta)
// operators in the conduction assembly; 0.5 is classic Crank-Nicolson.
const crankNicolsonTheta = 0.5

const gaussSeidelMaxIter = 500
const gaussSeidelTol = 1e-6

// stefanBoltzmann is sigma, in W/(m2 K4).
const stefanBoltzmann = 5.670374419e-8

// groundReferenceTemperature approximates the undisturbed deep-ground
// temperature a ground-contact boundary couples to.
const groundReferenceTemperature = 10.0 // C

// defaultThermalEmissivity is used when a substance carries no optical
// properties (opaque core layers with no Optical block set).
const defaultThermalEmissivity = 0.9

// surfaceNetwork is a Construction's fixed per-node capacitance and
// per-segment conductance, computed once from layer thicknesses and
// substance properties (independent of any one Surface instance, since
// every Surface sharing the Construction shares the same network modulo
// area scaling, applied when the network is built per-surface).
type surfaceNetwork struct {
	capacitance []float64 // per node, J/K
	conductance []float64 // per internal segment i -> i+1, W/K
}

// buildSurfaceNetwork expands a Construction's discretization into a
// per-node capacitance/conductance network scaled by the given surface
// area, splitting each segment's capacitance evenly between its two end
// nodes (the standard finite-volume lumping) and sharing a node at every
// layer interface.
func buildSurfaceNetwork(c *model.Construction, area float64) surfaceNetwork {
	d := c.Discretization()
	net := surfaceNetwork{
		capacitance: make([]float64, d.TotalNodes),
		conductance: make([]float64, d.TotalNodes-1),
	}

	nodeOffset := 0
	for li, mat := range c.Materials {
		n := d.NodesPerLayer[li]
		dx := mat.Thickness / float64(n-1)

		var rho, cp, k float64
		if mat.Substance.Kind == model.SubstanceNormal {
			rho, cp, k = mat.Substance.Density, mat.Substance.SpecificHeat, mat.Substance.Conductivity
		} else {
			g := mat.Substance.GasType
			rho, cp, k = g.Density(), g.SpecificHeat(), g.Conductivity()
		}

		segCapacitance := rho * cp * area * dx / 2.0
		segConductance := k * area / dx

		for seg := 0; seg < n-1; seg++ {
			a := nodeOffset + seg
			net.capacitance[a] += segCapacitance
			net.capacitance[a+1] += segCapacitance
			net.conductance[a] = segConductance
		}
		nodeOffset += n - 1
	}
	return net
}

// sideOpticalProperties returns the solar absorptance and thermal
// emissivity of a Construction's front or back-most material, defaulting
// to a typical opaque emissivity when no Optical block is set.
func sideOpticalProperties(c *model.Construction, front bool) (solarAbsorptance, emissivity float64) {
	var mat *model.Material
	if front {
		mat = c.Materials[0]
	} else {
		mat = c.Materials[len(c.Materials)-1]
	}
	if mat.Substance.Optical == nil {
		return 0, defaultThermalEmissivity
	}
	if front {
		return mat.Substance.Optical.FrontSolarAbsorptance, orDefault(mat.Substance.Optical.FrontThermalAbsorptance, defaultThermalEmissivity)
	}
	return mat.Substance.Optical.BackSolarAbsorptance, orDefault(mat.Substance.Optical.BackThermalAbsorptance, defaultThermalEmissivity)
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// radiativeCoupling linearizes the net long-wave exchange between a
// surface at surfaceTempC and an environment radiating incidentIR (W/m2)
// about the current surface temperature, returning an equivalent
// convective-style coefficient and source temperature so the boundary can
// be assembled the same way as the convective film.
func radiativeCoupling(incidentIR, emissivity, surfaceTempC float64) (hRad, sourceTempC float64) {
	if incidentIR <= 0 || emissivity <= 0 {
		return 0, surfaceTempC
	}
	surfaceTempK := surfaceTempC + 273.15
	sourceTempK := math.Pow(incidentIR/stefanBoltzmann, 0.25)
	hRad = 4 * emissivity * stefanBoltzmann * surfaceTempK * surfaceTempK * surfaceTempK
	return hRad, sourceTempK - 273.15
}

// boundaryCondition is one side's Robin-type coupling to its environment:
// an equivalent film conductance (W/K, convective + linearized radiative)
// and equivalent source temperature, plus any temperature-independent
// absorbed shortwave heat flow (W).
type boundaryCondition struct {
	filmConductance float64
	sourceTempC     float64
	absorbedPowerW  float64
}

// assembleAndSolve builds the Crank-Nicolson M/K system for one surface's
// conduction network and advances its node temperatures by one
// sub-timestep, falling back to Gauss-Seidel if the banded solve reports a
// near-zero pivot.
func assembleAndSolve(net surfaceNetwork, front, back boundaryCondition, tOld []float64, subDt float64) ([]float64, error) {
	n := len(net.capacitance)
	diagA := make([]float64, n)
	for i, g := range net.conductance {
		diagA[i] += g
		diagA[i+1] += g
	}
	diagA[0] += front.filmConductance
	diagA[n-1] += back.filmConductance

	m := matrix.NewBand(n, 1)
	k := matrix.NewBand(n, 1)
	for i := 0; i < n; i++ {
		cdt := net.capacitance[i] / subDt
		if err := m.Set(i, i, cdt+crankNicolsonTheta*diagA[i]); err != nil {
			return nil, err
		}
		if err := k.Set(i, i, cdt-(1-crankNicolsonTheta)*diagA[i]); err != nil {
			return nil, err
		}
	}
	for i, g := range net.conductance {
		if err := m.Set(i, i+1, -crankNicolsonTheta*g); err != nil {
			return nil, err
		}
		if err := m.Set(i+1, i, -crankNicolsonTheta*g); err != nil {
			return nil, err
		}
		if err := k.Set(i, i+1, (1-crankNicolsonTheta)*g); err != nil {
			return nil, err
		}
		if err := k.Set(i+1, i, (1-crankNicolsonTheta)*g); err != nil {
			return nil, err
		}
	}

	b := make([]float64, n)
	if err := k.MulVecInto(tOld, b); err != nil {
		return nil, err
	}
	b[0] += front.filmConductance*front.sourceTempC + front.absorbedPowerW
	b[n-1] += back.filmConductance*back.sourceTempC + back.absorbedPowerW

	tNew, err := matrix.BandedSolve(m, b)
	if err != nil {
		return matrix.GaussSeidel(m, b, tOld, gaussSeidelMaxIter, gaussSeidelTol)
	}
	return tNew, nil
}
