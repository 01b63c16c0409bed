package DW1D

import "math"

// findLocalLosses computes the local (minor) losses term of the
// momentum equation from the configured entry/exit/average loss
// coefficients (ft/sec).
func findLocalLosses(link *Link, a1, a2, aMid, q float64) (losses float64) {
	q = math.Abs(q)
	if a1 > FUDGE {
		losses += link.CLossInlet * (q / a1)
	}
	if a2 > FUDGE {
		losses += link.CLossOutlet * (q / a2)
	}
	if aMid > FUDGE {
		losses += link.CLossAvg * (q / aMid)
	}
	return
}
