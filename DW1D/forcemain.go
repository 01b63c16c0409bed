package DW1D

import (
	"math"

	"github.com/hydronet/dynwave/types"
)

// kinematic viscosity of water at 68F (ft2/sec)
const viscosity = 1.08e-5

// ForceMainFricSlope returns the friction loss coefficient g*Sf/|v| for
// a force main flowing full, so that the momentum equation's implicit
// friction term is dt times this value. Hazen-Williams uses the HW
// coefficient directly; Darcy-Weisbach derives a friction factor from
// the roughness height and Reynolds number.
func (sys *System) ForceMainFricSlope(link *Link, v, hrad float64) float64 {
	var (
		xsect = &link.Xsect
	)
	v = math.Abs(v)
	if hrad <= 0.0 {
		return 0.0
	}
	switch xsect.ForceMainEqn {
	case types.HAZEN_WILLIAMS:
		c := xsect.HWCoeff
		if c <= 0.0 {
			return 0.0
		}
		return sys.Gravity * math.Pow(v, 0.852) /
			math.Pow(1.318*c, 1.852) / math.Pow(hrad, 1.1667)
	case types.DARCY_WEISBACH:
		f := fricFactor(xsect.DWRough, hrad, reynolds(v, hrad))
		return f * v / (8.0 * hrad)
	}
	return 0.0
}

func reynolds(v, hrad float64) float64 {
	return 4.0 * hrad * v / viscosity
}

// fricFactor computes the Darcy-Weisbach friction factor: laminar law
// at low Reynolds number, Swamee-Jain otherwise.
func fricFactor(e, hrad, re float64) float64 {
	if re < 10.0 {
		re = 10.0
	}
	if re <= 2000.0 {
		return 64.0 / re
	}
	d := math.Log10(e/(14.8*hrad) + 5.74/math.Pow(re, 0.9))
	return 0.25 / (d * d)
}
