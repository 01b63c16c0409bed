package DW1D

import "math"

// culvertParams are FHWA inlet control curve coefficients: K and M for
// the unsubmerged (weir-like) form, C and Y for the submerged
// (orifice-like) form.
type culvertParams struct {
	K, M, C, Y float64
}

// Inlet control coefficients for circular culverts, indexed by culvert
// code (FHWA HDS-5 chart values).
var culvertTable = map[int]culvertParams{
	1: {0.0098, 2.00, 0.0398, 0.67}, // concrete, square edge w/ headwall
	2: {0.0018, 2.00, 0.0292, 0.74}, // concrete, groove end w/ headwall
	3: {0.0045, 2.00, 0.0317, 0.69}, // concrete, groove end projecting
	4: {0.0078, 2.00, 0.0379, 0.69}, // CMP, headwall
	5: {0.0210, 1.33, 0.0463, 0.75}, // CMP, mitered to slope
	6: {0.0340, 1.50, 0.0553, 0.54}, // CMP, projecting
}

// CulvertInflow limits the proposed flow q to the culvert's inlet
// control capacity for headwater h1 and returns the governing value,
// flagging the link when inlet control applies. An unknown culvert
// code or no headwater leaves q untouched.
func (sys *System) CulvertInflow(link *Link, cs *ConduitState, q, h1 float64) float64 {
	p, ok := culvertTable[link.Xsect.CulvertCode]
	if !ok {
		return q
	}
	var (
		xsect = &link.Xsect
		d     = xsect.YFull
		aFull = xsect.AFull
		hw    = h1 - (link.Node1.InvertElev + link.Offset1)
	)
	if hw <= 0.0 || d <= 0.0 || aFull <= 0.0 {
		return q
	}

	// Capacity from the governing inlet control curve, normalized by
	// A*sqrt(d). The submerged curve includes the standard -0.5*S
	// slope correction.
	var qIC float64
	hwd := hw / d
	if hwd < 1.2 {
		qIC = aFull * math.Sqrt(d) * math.Pow(hwd/p.K, 1.0/p.M)
	} else {
		arg := (hwd - p.Y + 0.5*cs.Slope) / p.C
		if arg <= 0.0 {
			return q
		}
		qIC = aFull * math.Sqrt(d) * math.Sqrt(arg)
	}
	if math.IsNaN(qIC) || qIC < 0.0 {
		return q
	}

	if qIC < q {
		link.InletControl = true
		return qIC
	}
	return q
}
