package DW1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydronet/dynwave/types"
)

func TestNormalFlowSlopeTrigger(t *testing.T) {
	sys, link, cs := depthsConduit(t)
	sys.NormalFlowLtd = types.SLOPE

	y1, y2 := 1.0, 2.0 // adverse water surface slope
	a1 := link.Xsect.AofY(y1)
	r1 := link.Xsect.RofY(y1)
	qNorm := cs.Beta * a1 * math.Pow(r1, 2./3.)

	q := sys.CheckNormalFlow(link, cs, 50, y1, y2, a1, r1)
	assert.InDelta(t, qNorm, q, 1.e-12)
	assert.True(t, link.NormalFlow)

	// A dynamic flow already below the uniform value is kept.
	link.NormalFlow = false
	q = sys.CheckNormalFlow(link, cs, 1, y1, y2, a1, r1)
	assert.Equal(t, 1.0, q)
	assert.False(t, link.NormalFlow)
}

func TestNormalFlowFroudeTrigger(t *testing.T) {
	sys, link, cs := depthsConduit(t)
	sys.NormalFlowLtd = types.FROUDE

	y1, y2 := 1.0, 0.5 // favorable slope, so only Froude can trigger
	a1 := link.Xsect.AofY(y1)
	r1 := link.Xsect.RofY(y1)
	qNorm := cs.Beta * a1 * math.Pow(r1, 2./3.)

	// Supercritical at the upstream end
	q := sys.CheckNormalFlow(link, cs, 50, y1, y2, a1, r1)
	assert.InDelta(t, qNorm, q, 1.e-12)
	assert.True(t, link.NormalFlow)

	// Subcritical: no cap
	link.NormalFlow = false
	q = sys.CheckNormalFlow(link, cs, 1, y1, y2, a1, r1)
	assert.Equal(t, 1.0, q)
	assert.False(t, link.NormalFlow)
}

func TestNormalFlowOutfallAlwaysChecksSlope(t *testing.T) {
	sys, link, cs := depthsConduit(t)
	sys.NormalFlowLtd = types.FROUDE
	link.Node2.Type = types.OUTFALL

	y1, y2 := 1.0, 2.0
	a1 := link.Xsect.AofY(y1)
	r1 := link.Xsect.RofY(y1)
	qNorm := cs.Beta * a1 * math.Pow(r1, 2./3.)

	// The slope check runs for outfall links regardless of the
	// configured limiting mode; the Froude check never does.
	q := sys.CheckNormalFlow(link, cs, 50, y1, y2, a1, r1)
	assert.InDelta(t, qNorm, q, 1.e-12)
	assert.True(t, link.NormalFlow)
}
