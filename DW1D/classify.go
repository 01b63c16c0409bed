package DW1D

import (
	"math"

	"github.com/hydronet/dynwave/types"
)

// Classification is the result of the flow regime decision: the class
// itself, the critical/normal depth pair computed along the way, and
// the fractional weighting Fasnh in [0,1] applied to the downstream
// half of the conduit's surface area when the downstream depth lies
// between the critical and normal bounds.
type Classification struct {
	Class        types.FlowClass
	Fasnh        float64
	YCrit, YNorm float64
}

// FindFlowClass determines the flow regime of a conduit from the
// depths and heads at its two ends. It is a pure function: nothing on
// the link is mutated.
//
// q is the previous iteration's flow, h1/h2 the end heads, y1/y2 the
// end depths (already clamped into [FUDGE, yFull]).
func (sys *System) FindFlowClass(link *Link, cs *ConduitState, q, h1, h2, y1, y2 float64) (c Classification) {
	var (
		n1 = link.Node1
		n2 = link.Node2
		z1 = link.Offset1
		z2 = link.Offset2
	)
	// Outfall water level can submerge the conduit end, reducing the
	// effective offset.
	if n1.Type == types.OUTFALL {
		z1 = math.Max(0.0, z1-n1.NewDepth)
	}
	if n2.Type == types.OUTFALL {
		z2 = math.Max(0.0, z2-n2.NewDepth)
	}

	c.Class = types.SUBCRITICAL
	c.Fasnh = 1.0
	c.YCrit = 0.5 * (y1 + y2)
	c.YNorm = c.YCrit

	switch {
	// Both ends wet
	case y1 > FUDGE && y2 > FUDGE:
		if q < 0.0 {
			// Reverse flow: upstream end drops to critical depth when
			// its depth is below the smaller of critical and normal
			// depth and an upstream offset exists.
			if z1 > 0.0 {
				c.YNorm = sys.GetYnorm(link, cs, math.Abs(q))
				c.YCrit = sys.GetYcrit(link, math.Abs(q))
				ycMin := math.Min(c.YNorm, c.YCrit)
				if y1 < ycMin {
					c.Class = types.UP_CRITICAL
				}
			}
		} else {
			// Forward flow: downstream end drops to the smaller of
			// critical and normal depth when below it; between the two
			// bounds the surface area weighting is interpolated.
			if z2 > 0.0 {
				c.YNorm = sys.GetYnorm(link, cs, math.Abs(q))
				c.YCrit = sys.GetYcrit(link, math.Abs(q))
				ycMin := math.Min(c.YNorm, c.YCrit)
				ycMax := math.Max(c.YNorm, c.YCrit)
				if y2 < ycMin {
					c.Class = types.DN_CRITICAL
				} else if y2 < ycMax {
					if ycMax-ycMin < FUDGE {
						c.Fasnh = 0.0
					} else {
						c.Fasnh = (ycMax - y2) / (ycMax - ycMin)
					}
				}
			}
		}

	// No flow at either end
	case y1 <= FUDGE && y2 <= FUDGE:
		c.Class = types.DRY

	// Downstream wet, upstream dry
	case y2 > FUDGE:
		if h2 < n1.InvertElev+link.Offset1 {
			c.Class = types.UP_DRY
		} else if z1 > 0.0 {
			// Downstream head above the upstream invert reverses flow
			// across a critical section at the upstream end.
			c.YNorm = sys.GetYnorm(link, cs, math.Abs(q))
			c.YCrit = sys.GetYcrit(link, math.Abs(q))
			c.Class = types.UP_CRITICAL
		}

	// Upstream wet, downstream dry
	default:
		if h1 < n2.InvertElev+link.Offset2 {
			c.Class = types.DN_DRY
		} else if z2 > 0.0 {
			c.YNorm = sys.GetYnorm(link, cs, math.Abs(q))
			c.YCrit = sys.GetYcrit(link, math.Abs(q))
			c.Class = types.DN_CRITICAL
		}
	}
	return
}
