package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfiltration_Constructors(t *testing.T) {
	c := NewConstantInfiltration(0.02)
	assert.Equal(t, InfiltrationConstant, c.Kind)
	assert.Equal(t, 0.02, c.Flow)

	dfr := NewDesignFlowRateInfiltration(1, 0.2, 0.1, 0.05, 0.5)
	assert.Equal(t, InfiltrationDesignFlowRate, dfr.Kind)
	assert.Equal(t, 0.5, dfr.Phi)

	ela := NewEffectiveLeakageAreaInfiltration(0.003)
	assert.Equal(t, InfiltrationEffectiveLeakageArea, ela.Kind)
	assert.Equal(t, 0.003, ela.AreaM2)
}
