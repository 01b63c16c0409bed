package DW1D

import (
	"math"

	"github.com/hydronet/dynwave/types"
	"github.com/hydronet/dynwave/utils"
)

// MomentumTerms are the six additive terms of the discretized momentum
// balance, each already scaled by the time step. Friction and
// LocalLosses enter the flow update implicitly (in the denominator);
// the rest enter explicitly.
type MomentumTerms struct {
	Friction         float64 // dq1
	EnergySlope      float64 // dq2
	InertiaLocal     float64 // dq3
	InertiaAdvective float64 // dq4
	LocalLosses      float64 // dq5
	SeepEvap         float64 // dq6
}

// denom is the implicit-in-friction denominator; friction and loss
// terms are non-negative so it never falls below 1.
func (mt *MomentumTerms) denom() float64 {
	return 1.0 + mt.Friction + mt.LocalLosses
}

// FindConduitFlow updates the flow in a conduit link by solving the
// finite difference form of the momentum equation, then applying the
// flow limiter cascade. steps is the iteration count within the
// current time step (under-relaxation applies beyond the first),
// omega the under-relaxation weight, dt the time step (sec).
func (sys *System) FindConduitFlow(link *Link, cs *ConduitState, steps int, omega, dt float64) {
	var (
		xsect    = &link.Xsect
		n1       = link.Node1
		n2       = link.Node2
		barrels  = cs.Barrels
		isFull   = false
		isClosed = link.Setting == 0
	)

	// Flow from the previous time step and the previous iteration
	qOld := link.OldFlow / barrels
	qLast := cs.Q1

	// Current heads at the two ends, floored at the conduit inverts
	z1 := n1.InvertElev + link.Offset1
	z2 := n2.InvertElev + link.Offset2
	h1 := math.Max(n1.Head(), z1)
	h2 := math.Max(n2.Head(), z2)

	// Unadjusted end depths, clamped into [FUDGE, yFull]
	y1 := utils.Clamp(h1-z1, FUDGE, xsect.YFull)
	y2 := utils.Clamp(h2-z2, FUDGE, xsect.YFull)

	// Area from the previous time step
	aOld := math.Max(cs.A2, FUDGE)

	// Courant-modified length, not the geometric length
	length := cs.ModLength

	// Apportion surface area to the end nodes from the previous
	// iteration's flow estimate; may override heads/depths at
	// critical or dry ends.
	sys.FindSurfArea(link, cs, qLast, length, &h1, &h2, &y1, &y2)

	// End areas, upstream hydraulic radius, and midpoint values
	a1 := Area(xsect, y1)
	a2 := Area(xsect, y2)
	r1 := HydRadius(xsect, y1)
	yMid := 0.5 * (y1 + y2)
	aMid := Area(xsect, yMid)
	rMid := HydRadius(xsect, yMid)

	if y1 >= xsect.YFull && y2 >= xsect.YFull {
		isFull = true
	}

	// Dry, closed, or zero-area conduits carry no flow; dqdh retains
	// its pure storage value for the outer solver.
	if link.FlowClass == types.DRY ||
		link.FlowClass == types.UP_DRY ||
		link.FlowClass == types.DN_DRY ||
		isClosed ||
		aMid <= FUDGE {
		cs.A1 = 0.5 * (a1 + a2)
		cs.Q1 = 0.0
		cs.Q2 = 0.0
		link.Dqdh = sys.Gravity * dt * aMid / length * barrels
		link.Froude = 0.0
		link.NewDepth = math.Min(yMid, xsect.YFull)
		link.NewVolume = cs.A1 * cs.Length * barrels
		link.NewFlow = 0.0
		return
	}

	// Velocity from the last flow estimate, capped in magnitude
	v := qLast / aMid
	if math.Abs(v) > MAXVELOCITY {
		v = MAXVELOCITY * utils.Sgn(qLast)
	}

	// Froude number; a subcritical conduit that has gone supercritical
	// is upgraded, never downgraded, within a call.
	link.Froude = sys.GetFroude(link, v, yMid)
	if link.FlowClass == types.SUBCRITICAL && link.Froude > 1.0 {
		link.FlowClass = types.SUPCRITICAL
	}

	// Inertial damping factor: full inertia below Fr 0.5, none at or
	// above critical, linear in between.
	var sigma float64
	switch {
	case link.Froude <= 0.5:
		sigma = 1.0
	case link.Froude >= 1.0:
		sigma = 0.0
	default:
		sigma = 2.0 * (1.0 - link.Froude)
	}

	// Upstream weighting of area and hydraulic radius for adverse or
	// flat surface slopes (R. Dickinson's slope weighting)
	rho := 1.0
	if !isFull && qLast > 0.0 && h1 >= h2 {
		rho = sigma
	}
	aWtd := a1 + (aMid-a1)*rho
	rWtd := r1 + (rMid-r1)*rho

	// Global damping policy overrides the Froude-derived value
	if sys.InertDamping == types.NO_DAMPING {
		sigma = 1.0
	} else if sys.InertDamping == types.FULL_DAMPING {
		sigma = 0.0
	}

	// A surcharged closed conduit gets full damping
	if isFull && !xsect.Type.IsOpen() {
		sigma = 0.0
	}

	var mt MomentumTerms

	// 1. friction slope
	if xsect.Type == types.FORCE_MAIN && isFull {
		mt.Friction = dt * sys.ForceMainFricSlope(link, math.Abs(v), rMid)
	} else {
		mt.Friction = dt * cs.RoughFactor / math.Pow(rWtd, 1.33333) * math.Abs(v)
	}

	// 2. energy slope
	mt.EnergySlope = dt * sys.Gravity * aWtd * (h2 - h1) / length

	// 3 & 4. inertial terms
	if sigma > 0.0 {
		mt.InertiaLocal = 2.0 * v * (aMid - aOld) * sigma
		mt.InertiaAdvective = dt * v * v * (a2 - a1) / length * sigma
	}

	// 5. local losses
	if cs.HasLosses {
		mt.LocalLosses = findLocalLosses(link, a1, a2, aMid, qLast) / 2.0 / length * dt
	}

	// 6. evaporation and seepage losses per unit length
	mt.SeepEvap = GetLossRate(cs, qOld) * 2.5 * dt * v / cs.Length

	denom := mt.denom()
	q := (qOld - mt.EnergySlope + mt.InertiaLocal + mt.InertiaAdvective - mt.SeepEvap) / denom

	// Malformed external inputs can still produce a NaN through the
	// fractional powers above; treat it as no flow.
	if math.IsNaN(q) || math.IsInf(q, 0) {
		q = 0.0
	}

	// Flow-head sensitivity consumed by the outer solver's update
	link.Dqdh = 1.0 / denom * sys.Gravity * dt * aWtd / length * barrels

	// Flow limiter cascade, forward flow only. Culvert inlet control
	// and the normal flow cap are mutually exclusive.
	link.InletControl = false
	link.NormalFlow = false
	if q > 0.0 {
		if xsect.CulvertCode > 0 && !isFull {
			q = sys.CulvertInflow(link, cs, q, h1)
		} else if y1 < xsect.YFull &&
			(link.FlowClass == types.SUBCRITICAL ||
				link.FlowClass == types.SUPCRITICAL) {
			q = sys.CheckNormalFlow(link, cs, q, y1, y2, a1, r1)
		}
	}

	// Under-relax against the previous iteration; a reversal must pass
	// through (near) zero rather than flip in one step.
	if steps > 0 {
		q = (1.0-omega)*qLast + omega*q
		if q*qLast < 0.0 {
			q = 0.001 * utils.Sgn(q)
		}
	}

	// User flow limit
	if link.QLimit > 0.0 {
		if math.Abs(q) > link.QLimit {
			q = utils.Sgn(q) * link.QLimit
		}
	}

	// Reverse flow through a closed flap gate
	if SetFlapGate(link, n1, n2, q) {
		q = 0.0
	}

	// No outflow from a dry node
	if q > FUDGE && n1.NewDepth <= FUDGE {
		q = FUDGE
	}
	if q < -FUDGE && n2.NewDepth <= FUDGE {
		q = -FUDGE
	}

	// Save the new state. Storage volume uses the raw end-area
	// average, not the upstream-weighted hydraulic mid-area.
	cs.A1 = aMid
	cs.Q1 = q
	cs.Q2 = q
	link.NewDepth = math.Min(yMid, xsect.YFull)
	aMid = (a1 + a2) / 2.0
	aMid = math.Min(aMid, xsect.AFull)
	cs.FullState = GetFullState(a1, a2, xsect.AFull)
	link.NewVolume = aMid * cs.Length * barrels
	link.NewFlow = q * barrels
}
