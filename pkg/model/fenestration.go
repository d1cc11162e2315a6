package model

import "github.com/germolinal/simple-sub002/pkg/state"

// OperationKind is the closed set of open-fraction control policies a
// Fenestration can follow.
type OperationKind int

const (
	// OperationFixed never changes its open fraction from the model value.
	OperationFixed OperationKind = iota
	// OperationContinuous is written by the user controller to any value
	// in [0, 1] each main timestep.
	OperationContinuous
	// OperationBinary is written by the controller to either 0 or 1.
	OperationBinary
)

// Fenestration is a Surface-like planar polygon that additionally has an
// operable open fraction and may be cut as a hole into a parent opaque
// Surface.
type Fenestration struct {
	Surface
	Operation     OperationKind
	ParentSurface *Surface // nil if freestanding

	OpenFractionSlot state.Cell
}
