package DW1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydronet/dynwave/types"
)

func TestHazenWilliamsFricSlope(t *testing.T) {
	sys := NewSystem()
	xsect, err := NewCrossSection(types.FORCE_MAIN, 2, 0, 0)
	require.NoError(t, err)
	xsect.ForceMainEqn = types.HAZEN_WILLIAMS
	xsect.HWCoeff = 130
	link := &Link{Xsect: xsect}

	v, hrad := 6.0, 0.5
	want := sys.Gravity * math.Pow(v, 0.852) /
		math.Pow(1.318*130, 1.852) / math.Pow(hrad, 1.1667)
	assert.InDelta(t, want, sys.ForceMainFricSlope(link, v, hrad), 1.e-12)

	// Symmetric in flow direction.
	assert.Equal(t, sys.ForceMainFricSlope(link, v, hrad),
		sys.ForceMainFricSlope(link, -v, hrad))

	assert.Equal(t, 0.0, sys.ForceMainFricSlope(link, v, 0))
}

func TestDarcyWeisbachFricSlope(t *testing.T) {
	sys := NewSystem()
	xsect, err := NewCrossSection(types.FORCE_MAIN, 2, 0, 0)
	require.NoError(t, err)
	xsect.ForceMainEqn = types.DARCY_WEISBACH
	xsect.DWRough = 0.0005
	link := &Link{Xsect: xsect}

	// Turbulent: Swamee-Jain friction factor.
	v, hrad := 6.0, 0.5
	re := 4.0 * hrad * v / viscosity
	d := math.Log10(0.0005/(14.8*hrad) + 5.74/math.Pow(re, 0.9))
	f := 0.25 / (d * d)
	assert.InDelta(t, f*v/(8.0*hrad), sys.ForceMainFricSlope(link, v, hrad), 1.e-12)

	// Laminar: f = 64/Re.
	v = 1.e-4
	re = 4.0 * hrad * v / viscosity
	assert.True(t, re <= 2000.0)
	assert.InDelta(t, (64.0/re)*v/(8.0*hrad),
		sys.ForceMainFricSlope(link, v, hrad), 1.e-15)
}

func TestFricSlopeRequiresEquation(t *testing.T) {
	sys := NewSystem()
	xsect, err := NewCrossSection(types.CIRCULAR, 2, 0, 0)
	require.NoError(t, err)
	link := &Link{Xsect: xsect}
	assert.Equal(t, 0.0, sys.ForceMainFricSlope(link, 6, 0.5))
}
