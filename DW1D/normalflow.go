package DW1D

import (
	"math"

	"github.com/hydronet/dynwave/types"
)

// CheckNormalFlow decides whether the dynamic wave flow q should be
// capped at the uniform (Manning) flow value. The check triggers on an
// adverse water surface slope (when slope limiting is configured or
// either end is an outfall) or on a supercritical upstream Froude
// number (when Froude limiting is configured and neither end is an
// outfall). When the uniform flow is the smaller of the two, it
// replaces q and the link is flagged.
func (sys *System) CheckNormalFlow(link *Link, cs *ConduitState, q, y1, y2, a1, r1 float64) float64 {
	var (
		check      = false
		n1         = link.Node1
		n2         = link.Node2
		hasOutfall = n1.Type == types.OUTFALL || n2.Type == types.OUTFALL
	)

	// Water surface slope less than conduit slope
	if sys.NormalFlowLtd == types.SLOPE || sys.NormalFlowLtd == types.BOTH || hasOutfall {
		if y1 < y2 {
			check = true
		}
	}

	// Fr >= 1.0 at the upstream end
	if !check && (sys.NormalFlowLtd == types.FROUDE || sys.NormalFlowLtd == types.BOTH) &&
		!hasOutfall {
		if y1 > FUDGE && y2 > FUDGE {
			f1 := sys.GetFroude(link, q/a1, y1)
			if f1 >= 1.0 {
				check = true
			}
		}
	}

	if check {
		qNorm := cs.Beta * a1 * math.Pow(r1, 2./3.)
		if qNorm < q {
			link.NormalFlow = true
			return qNorm
		}
	}
	return q
}
