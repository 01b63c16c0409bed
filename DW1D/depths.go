package DW1D

import (
	"math"

	"github.com/hydronet/dynwave/types"
)

// depthIterations bounds the bisection searches below; 40 halvings of
// yFull resolve depth beyond float precision for any practical section.
const depthIterations = 40

// GetYnorm returns the uniform (normal) flow depth for flow magnitude q,
// found by inverting the Manning section factor a*r^(2/3) = q/beta.
func (sys *System) GetYnorm(link *Link, cs *ConduitState, q float64) float64 {
	q = math.Abs(q)
	if q <= 0.0 || cs.Beta <= 0.0 {
		return 0.0
	}
	if cs.QMax > 0.0 && q > cs.QMax {
		q = cs.QMax
	}
	var (
		xsect  = &link.Xsect
		target = q / cs.Beta
		yLo    = 0.0
		yHi    = xsect.YFull
	)
	sectionFactor := func(y float64) float64 {
		return xsect.AofY(y) * math.Pow(xsect.RofY(y), 2./3.)
	}
	if sectionFactor(yHi) <= target {
		return yHi
	}
	for i := 0; i < depthIterations; i++ {
		yMid := 0.5 * (yLo + yHi)
		if sectionFactor(yMid) < target {
			yLo = yMid
		} else {
			yHi = yMid
		}
	}
	return 0.5 * (yLo + yHi)
}

// GetYcrit returns the critical flow depth for flow magnitude q, the
// depth where q equals a*sqrt(g*a/w).
func (sys *System) GetYcrit(link *Link, q float64) float64 {
	q = math.Abs(q)
	if q <= 0.0 {
		return 0.0
	}
	var (
		xsect = &link.Xsect
		yLo   = 0.0
		yHi   = xsect.YFull
	)
	critFlow := func(y float64) float64 {
		a := xsect.AofY(y)
		w := xsect.WofY(y)
		if a <= 0.0 || w <= 0.0 {
			return 0.0
		}
		return a * math.Sqrt(sys.Gravity*a/w)
	}
	if critFlow(yHi) <= q {
		return yHi
	}
	for i := 0; i < depthIterations; i++ {
		yMid := 0.5 * (yLo + yHi)
		if critFlow(yMid) < q {
			yLo = yMid
		} else {
			yHi = yMid
		}
	}
	return math.Min(0.5*(yLo+yHi), xsect.YFull)
}

// GetFroude returns the Froude number for velocity v at depth y, using
// the hydraulic mean depth (area over top width). A closed conduit
// flowing essentially full has no free surface and returns 0.
func (sys *System) GetFroude(link *Link, v, y float64) float64 {
	xsect := &link.Xsect
	if y <= FUDGE {
		return 0.0
	}
	if !xsect.Type.IsOpen() && xsect.YFull-y <= FUDGE {
		return 0.0
	}
	w := xsect.WofY(y)
	if w <= 0.0 {
		return 0.0
	}
	yMean := xsect.AofY(y) / w
	if yMean <= 0.0 {
		return 0.0
	}
	return math.Abs(v) / math.Sqrt(sys.Gravity*yMean)
}

// GetFullState classifies which ends of the conduit are flowing full
// from the end areas.
func GetFullState(a1, a2, aFull float64) types.FullState {
	full := 0.9999 * aFull
	switch {
	case a1 >= full && a2 >= full:
		return types.ALL_FULL
	case a1 >= full:
		return types.UP_FULL
	case a2 >= full:
		return types.DN_FULL
	}
	return types.PARTIAL_FULL
}

// GetLossRate returns the conduit's evaporation plus seepage loss rate
// (cfs), never exceeding the magnitude of the flow being depleted.
func GetLossRate(cs *ConduitState, q float64) float64 {
	rate := cs.EvapLossRate + cs.SeepLossRate
	if rate <= 0.0 {
		return 0.0
	}
	return math.Min(rate, math.Abs(q))
}
