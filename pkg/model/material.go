package model

import (
	"fmt"
	"sync"
)

// Material pairs a Substance reference with a thickness in meters. The
// thickness is not a property of the Substance because several Materials
// may reference the same Substance with different thicknesses.
type Material struct {
	Name      string
	Substance *Substance
	Thickness float64 // meters
}

// Construction is the ordered, front-to-back sequence of Materials defining
// the physical layer stack of a Surface or Fenestration.
type Construction struct {
	Name      string
	Materials []*Material

	mu             sync.Mutex
	discretization *Discretization // assigned once by the thermal engine
}

// SetDiscretization binds the thermal engine's node layout to this
// construction. Every Surface sharing this Construction shares the same
// node count, since discretization depends only on layer thicknesses and
// material diffusivity, not on any one surface's instance data. Returns an
// error if already assigned.
func (c *Construction) SetDiscretization(d Discretization) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discretization != nil {
		return fmt.Errorf("construction %q: discretization already assigned", c.Name)
	}
	c.discretization = &d
	return nil
}

// Discretization returns the assigned node layout, or nil if the thermal
// engine has not yet run construction for this construction.
func (c *Construction) Discretization() *Discretization {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discretization
}

// NLayers returns the number of material layers.
func (c *Construction) NLayers() int { return len(c.Materials) }

// TotalThickness returns the sum of all layer thicknesses, in meters.
func (c *Construction) TotalThickness() float64 {
	var t float64
	for _, m := range c.Materials {
		t += m.Thickness
	}
	return t
}

// IsTransparent reports whether any Normal material's substance carries a
// positive solar transmittance.
func (c *Construction) IsTransparent() bool {
	for _, m := range c.Materials {
		if m.Substance.Kind == SubstanceNormal && m.Substance.Optical != nil && m.Substance.Optical.SolarTransmittance > 0 {
			return true
		}
		if m.Substance.Kind == SubstanceGas {
			continue
		}
	}
	return false
}
