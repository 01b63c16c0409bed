package DW1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydronet/dynwave/types"
)

func depthsConduit(t *testing.T) (*System, *Link, *ConduitState) {
	t.Helper()
	sys := NewSystem()
	xsect, err := NewCrossSection(types.CIRCULAR, 4, 0, 0)
	require.NoError(t, err)
	link := &Link{
		Name:      "C1",
		Node1:     &Node{Name: "N1", Type: types.JUNCTION, InvertElev: 4},
		Node2:     &Node{Name: "N2", Type: types.JUNCTION, InvertElev: 0},
		Xsect:     xsect,
		Setting:   1.0,
		Direction: 1.0,
	}
	cs, err := NewConduitState(sys, link, 400, 0.013, 0.025, 1)
	require.NoError(t, err)
	return sys, link, cs
}

func TestNormalDepthInvertsManning(t *testing.T) {
	sys, link, cs := depthsConduit(t)

	// Pick a depth, compute its uniform flow, and recover the depth.
	y := 1.3
	q := cs.Beta * link.Xsect.AofY(y) * math.Pow(link.Xsect.RofY(y), 2./3.)
	assert.InDelta(t, y, sys.GetYnorm(link, cs, q), 1.e-6)
	assert.InDelta(t, y, sys.GetYnorm(link, cs, -q), 1.e-6)

	// Flows beyond the section's capacity saturate at full depth.
	assert.Equal(t, link.Xsect.YFull, sys.GetYnorm(link, cs, 1.e6))

	assert.Equal(t, 0.0, sys.GetYnorm(link, cs, 0))
}

func TestCriticalDepthInvertsCriticalFlow(t *testing.T) {
	sys, link, _ := depthsConduit(t)

	y := 1.3
	var (
		a = link.Xsect.AofY(y)
		w = link.Xsect.WofY(y)
	)
	q := a * math.Sqrt(sys.Gravity*a/w)
	assert.InDelta(t, y, sys.GetYcrit(link, q), 1.e-6)

	assert.InDelta(t, link.Xsect.YFull, sys.GetYcrit(link, 1.e6), 1.e-9)
	assert.Equal(t, 0.0, sys.GetYcrit(link, 0))
}

func TestFroudeNumber(t *testing.T) {
	sys := NewSystem()
	xsect, err := NewCrossSection(types.RECT_OPEN, 4, 6, 0)
	require.NoError(t, err)
	link := &Link{Xsect: xsect}

	// Rectangular sections give the textbook v/sqrt(g*y).
	y, v := 2.0, 8.0
	assert.InDelta(t, v/math.Sqrt(sys.Gravity*y), sys.GetFroude(link, v, y), 1.e-12)
	assert.Equal(t, sys.GetFroude(link, v, y), sys.GetFroude(link, -v, y))

	// No free surface, no Froude number.
	assert.Equal(t, 0.0, sys.GetFroude(link, v, FUDGE))
	closed, err := NewCrossSection(types.CIRCULAR, 4, 0, 0)
	require.NoError(t, err)
	link2 := &Link{Xsect: closed}
	assert.Equal(t, 0.0, sys.GetFroude(link2, v, 4.0-FUDGE/2))
}

func TestFullStateFromEndAreas(t *testing.T) {
	aFull := 10.0
	assert.Equal(t, types.ALL_FULL, GetFullState(10, 10, aFull))
	assert.Equal(t, types.ALL_FULL, GetFullState(9.9995, 9.9999, aFull))
	assert.Equal(t, types.UP_FULL, GetFullState(10, 5, aFull))
	assert.Equal(t, types.DN_FULL, GetFullState(5, 10, aFull))
	assert.Equal(t, types.PARTIAL_FULL, GetFullState(5, 5, aFull))
}

func TestLossRateCappedByFlow(t *testing.T) {
	_, _, cs := depthsConduit(t)

	cs.EvapLossRate = 0.02
	cs.SeepLossRate = 0.03
	assert.InDelta(t, 0.05, GetLossRate(cs, 10), 1.e-12)
	assert.InDelta(t, 0.01, GetLossRate(cs, 0.01), 1.e-12)
	assert.InDelta(t, 0.01, GetLossRate(cs, -0.01), 1.e-12)

	cs.EvapLossRate, cs.SeepLossRate = 0, 0
	assert.Equal(t, 0.0, GetLossRate(cs, 10))
}
