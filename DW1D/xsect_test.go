package DW1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydronet/dynwave/types"
)

func TestCrossSectionFullProperties(t *testing.T) {
	circ, err := NewCrossSection(types.CIRCULAR, 4, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*4., circ.AFull, 1.e-12)
	assert.InDelta(t, 1.0, circ.RFull, 1.e-12)
	assert.Equal(t, 4.0, circ.WMax)

	rect, err := NewCrossSection(types.RECT_OPEN, 2, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 12.0, rect.AFull)
	assert.InDelta(t, 12./10., rect.RFull, 1.e-12)

	trap, err := NewCrossSection(types.TRAPEZOIDAL, 2, 4, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 2*(4+1.5*2), trap.AFull, 1.e-12)
	assert.Equal(t, 4+2*1.5*2, trap.WMax)

	tri, err := NewCrossSection(types.TRIANGULAR, 3, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 18.0, tri.AFull)
	assert.Equal(t, 12.0, tri.WMax)

	par, err := NewCrossSection(types.PARABOLIC, 2, 6, 0)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, par.AFull, 1.e-12)
}

func TestCrossSectionValidation(t *testing.T) {
	_, err := NewCrossSection(types.CIRCULAR, 0, 0, 0)
	assert.Error(t, err)
	_, err = NewCrossSection(types.RECT_OPEN, 2, 0, 0)
	assert.Error(t, err)
	_, err = NewCrossSection(types.TRIANGULAR, 2, 0, 0)
	assert.Error(t, err)
	_, err = NewCrossSection(types.XsectType(99), 2, 1, 1)
	assert.Error(t, err)
}

func TestCircularGeometry(t *testing.T) {
	circ, err := NewCrossSection(types.CIRCULAR, 4, 0, 0)
	require.NoError(t, err)

	// Half full: area is half of full, top width is the diameter.
	assert.InDelta(t, circ.AFull/2., circ.AofY(2), 1.e-9)
	assert.InDelta(t, 4.0, circ.WofY(2), 1.e-9)

	// Area and hydraulic radius are non-negative and area is
	// monotone increasing in depth.
	prev := 0.0
	for y := 0.1; y <= 4.0; y += 0.1 {
		a := circ.AofY(y)
		assert.Greater(t, a, prev)
		assert.GreaterOrEqual(t, circ.RofY(y), 0.0)
		prev = a
	}

	// Above full depth the raw evaluators saturate.
	assert.Equal(t, circ.AFull, circ.AofY(5))
	assert.Equal(t, circ.RFull, circ.RofY(5))
}

func TestWidthCapsNearFullClosedShapes(t *testing.T) {
	circ, err := NewCrossSection(types.CIRCULAR, 4, 0, 0)
	require.NoError(t, err)

	// The raw width pinches off toward zero at the crown; the clamped
	// width holds the 0.96-depth value instead.
	wCap := circ.WofY(0.96 * 4)
	assert.Equal(t, wCap, Width(&circ, 3.99))
	assert.Equal(t, wCap, Width(&circ, 4.0))
	assert.Less(t, circ.WofY(3.99), wCap)

	// Open shapes are not capped.
	rect, err := NewCrossSection(types.RECT_OPEN, 2, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, Width(&rect, 1.99))
}

func TestClampedAdapters(t *testing.T) {
	circ, err := NewCrossSection(types.CIRCULAR, 4, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, Area(&circ, -1))
	assert.Equal(t, circ.AFull, Area(&circ, 10))
	assert.Equal(t, circ.RFull, HydRadius(&circ, 10))
	assert.Equal(t, 0.0, HydRadius(&circ, -1))
}

func TestTrapezoidalGeometry(t *testing.T) {
	trap, err := NewCrossSection(types.TRAPEZOIDAL, 2, 4, 1.5)
	require.NoError(t, err)

	y := 1.0
	assert.InDelta(t, y*(4+1.5*y), trap.AofY(y), 1.e-12)
	assert.InDelta(t, 4+2*1.5*y, trap.WofY(y), 1.e-12)
	p := 4 + 2*y*math.Sqrt(1+1.5*1.5)
	assert.InDelta(t, trap.AofY(y)/p, trap.RofY(y), 1.e-12)
}
