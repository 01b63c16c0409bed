package DW1D

import (
	"math"

	"github.com/hydronet/dynwave/types"
)

// FindSurfArea classifies the conduit's flow regime and apportions its
// free surface area between the two end nodes for the nodal continuity
// solution. The working heads and depths are adjusted in place when a
// critical or dry end overrides them; the surface area contributions
// are written onto the link.
func (sys *System) FindSurfArea(link *Link, cs *ConduitState, q, length float64, h1, h2, y1, y2 *float64) {
	var (
		n1                   = link.Node1
		n2                   = link.Node2
		surfArea1, surfArea2 float64
		flowDepth1           = *y1
		flowDepth2           = *y2
		xsect                = &link.Xsect
	)
	c := sys.FindFlowClass(link, cs, q, *h1, *h2, *y1, *y2)
	link.FlowClass = c.Class

	switch c.Class {
	case types.SUBCRITICAL:
		flowDepthMid := 0.5 * (flowDepth1 + flowDepth2)
		if flowDepthMid < FUDGE {
			flowDepthMid = FUDGE
		}
		width1 := Width(xsect, flowDepth1)
		width2 := Width(xsect, flowDepth2)
		widthMid := Width(xsect, flowDepthMid)
		surfArea1 = (width1 + widthMid) * length / 4.
		surfArea2 = (widthMid + width2) * length / 4. * c.Fasnh

	case types.UP_CRITICAL:
		flowDepth1 = c.YCrit
		if c.YNorm < c.YCrit {
			flowDepth1 = c.YNorm
		}
		flowDepth1 = math.Max(flowDepth1, FUDGE)
		*h1 = n1.InvertElev + link.Offset1 + flowDepth1
		flowDepthMid := 0.5 * (flowDepth1 + flowDepth2)
		if flowDepthMid < FUDGE {
			flowDepthMid = FUDGE
		}
		width2 := Width(xsect, flowDepth2)
		widthMid := Width(xsect, flowDepthMid)
		surfArea2 = (widthMid + width2) * length * 0.5

	case types.DN_CRITICAL:
		flowDepth2 = c.YCrit
		if c.YNorm < c.YCrit {
			flowDepth2 = c.YNorm
		}
		flowDepth2 = math.Max(flowDepth2, FUDGE)
		*h2 = n2.InvertElev + link.Offset2 + flowDepth2
		width1 := Width(xsect, flowDepth1)
		flowDepthMid := 0.5 * (flowDepth1 + flowDepth2)
		if flowDepthMid < FUDGE {
			flowDepthMid = FUDGE
		}
		widthMid := Width(xsect, flowDepthMid)
		surfArea1 = (width1 + widthMid) * length * 0.5

	case types.UP_DRY:
		flowDepth1 = FUDGE
		flowDepthMid := 0.5 * (flowDepth1 + flowDepth2)
		if flowDepthMid < FUDGE {
			flowDepthMid = FUDGE
		}
		width1 := Width(xsect, flowDepth1)
		width2 := Width(xsect, flowDepth2)
		widthMid := Width(xsect, flowDepthMid)

		// The wet downstream half always contributes.
		surfArea2 = (widthMid + width2) * length / 4.

		// Without a free-fall offset the upstream node still sees the
		// backwater capacity of the upstream half.
		if link.Offset1 <= 0.0 {
			surfArea1 = (width1 + widthMid) * length / 4.
		}

	case types.DN_DRY:
		flowDepth2 = FUDGE
		flowDepthMid := 0.5 * (flowDepth1 + flowDepth2)
		if flowDepthMid < FUDGE {
			flowDepthMid = FUDGE
		}
		width1 := Width(xsect, flowDepth1)
		width2 := Width(xsect, flowDepth2)
		widthMid := Width(xsect, flowDepthMid)

		surfArea1 = (widthMid + width1) * length / 4.

		if link.Offset2 <= 0.0 {
			surfArea2 = (width2 + widthMid) * length / 4.
		}

	case types.DRY:
		// Keep the continuity solution well conditioned at dry nodes.
		surfArea1 = FUDGE * length / 2.0
		surfArea2 = surfArea1
	}

	link.SurfArea1 = surfArea1
	link.SurfArea2 = surfArea2
	*y1 = flowDepth1
	*y2 = flowDepth2
}
