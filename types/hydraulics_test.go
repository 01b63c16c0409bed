package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameMapsRoundTrip(t *testing.T) {
	assert.Equal(t, OUTFALL, NodeTypeNameMap["outfall"])
	assert.Equal(t, "OUTFALL", OUTFALL.String())

	assert.Equal(t, TRAPEZOIDAL, XsectNameMap["trapezoidal"])
	assert.Equal(t, "TRAPEZOIDAL", TRAPEZOIDAL.String())

	assert.Equal(t, NO_DAMPING, InertialDampingNameMap["none"])
	assert.Equal(t, FROUDE, NormalFlowLimitedNameMap["froude"])
	assert.Equal(t, DARCY_WEISBACH, ForceMainEqnNameMap["darcy-weisbach"])

	assert.Equal(t, "SUPCRITICAL", SUPCRITICAL.String())
	assert.Equal(t, "ALL_FULL", ALL_FULL.String())
}

func TestXsectOpenness(t *testing.T) {
	open := []XsectType{RECT_OPEN, TRAPEZOIDAL, TRIANGULAR, PARABOLIC}
	closed := []XsectType{CIRCULAR, FORCE_MAIN, RECT_CLOSED}
	for _, xt := range open {
		assert.True(t, xt.IsOpen(), xt.String())
	}
	for _, xt := range closed {
		assert.False(t, xt.IsOpen(), xt.String())
	}
}
