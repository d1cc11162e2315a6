package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FormatsMessageWithModuleAndCode(t *testing.T) {
	err := New("thermal", CodeNumerical, "pivot %.2e below threshold", 1e-30)
	assert.Equal(t, "thermal: NUMERICAL: pivot 1.00e-30 below threshold", err.Error())
}

func TestWrap_IncludesUnderlyingError(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap("scheduler", CodeResource, cause, "failed to write output csv")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, err.Unwrap())
}

func TestIs_MatchesCodeThroughWrappedChain(t *testing.T) {
	inner := New("airflow", CodeUserInput, "unknown shelter class")
	wrapped := Wrap("scheduler", CodeConstruction, inner, "model load failed")
	assert.True(t, Is(wrapped, CodeConstruction))
	assert.False(t, Is(wrapped, CodeUserInput))
}

func TestIs_ReturnsFalseForPlainErrors(t *testing.T) {
	plain := errors.New("not tagged")
	assert.False(t, Is(plain, CodeUserInput))
}
