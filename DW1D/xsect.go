package DW1D

import (
	"fmt"
	"math"

	"github.com/hydronet/dynwave/types"
)

// CrossSection is an immutable conduit shape descriptor. The raw
// evaluators (WofY, AofY, RofY) are closed-form section geometry; the
// Width/Area/HydRadius wrappers apply the depth clamping the momentum
// solver relies on.
type CrossSection struct {
	Type  types.XsectType
	YFull float64 // full flow depth; diameter for circular shapes (ft)
	AFull float64 // full flow area (ft2)
	RFull float64 // full flow hydraulic radius (ft)
	WMax  float64 // widest top width (ft)

	Base      float64 // bottom width for rectangular/trapezoidal (ft)
	SideSlope float64 // horizontal run per unit rise for trapezoidal/triangular

	CulvertCode  int // 0 = not a culvert
	ForceMainEqn types.ForceMainEqn
	HWCoeff      float64 // Hazen-Williams C for force mains
	DWRough      float64 // Darcy-Weisbach roughness height (ft)
}

// NewCrossSection fills in the derived full-flow properties for a shape.
func NewCrossSection(t types.XsectType, yFull, base, sideSlope float64) (x CrossSection, err error) {
	if yFull <= 0 {
		return x, fmt.Errorf("cross section: non-positive full depth %g", yFull)
	}
	x = CrossSection{Type: t, YFull: yFull, Base: base, SideSlope: sideSlope}
	switch t {
	case types.CIRCULAR, types.FORCE_MAIN:
		d := yFull
		x.AFull = math.Pi / 4. * d * d
		x.RFull = d / 4.
		x.WMax = d
	case types.RECT_CLOSED:
		if base <= 0 {
			return x, fmt.Errorf("rect_closed: non-positive width %g", base)
		}
		x.AFull = base * yFull
		x.RFull = x.AFull / (2 * (base + yFull))
		x.WMax = base
	case types.RECT_OPEN:
		if base <= 0 {
			return x, fmt.Errorf("rect_open: non-positive width %g", base)
		}
		x.AFull = base * yFull
		x.RFull = x.AFull / (base + 2*yFull)
		x.WMax = base
	case types.TRAPEZOIDAL:
		if base < 0 || sideSlope <= 0 {
			return x, fmt.Errorf("trapezoidal: bad base %g / side slope %g", base, sideSlope)
		}
		x.AFull = yFull * (base + sideSlope*yFull)
		x.RFull = x.AFull / (base + 2*yFull*math.Sqrt(1+sideSlope*sideSlope))
		x.WMax = base + 2*sideSlope*yFull
	case types.TRIANGULAR:
		if sideSlope <= 0 {
			return x, fmt.Errorf("triangular: non-positive side slope %g", sideSlope)
		}
		x.AFull = sideSlope * yFull * yFull
		x.RFull = x.AFull / (2 * yFull * math.Sqrt(1+sideSlope*sideSlope))
		x.WMax = 2 * sideSlope * yFull
	case types.PARABOLIC:
		if base <= 0 {
			return x, fmt.Errorf("parabolic: non-positive top width %g", base)
		}
		x.WMax = base
		x.AFull = 2. / 3. * base * yFull
		x.RFull = x.AFull / parabolicPerim(base, yFull)
	default:
		return x, fmt.Errorf("unsupported cross section type %v", t)
	}
	return x, nil
}

// WofY returns the raw top width of the flow surface at depth y.
func (x *CrossSection) WofY(y float64) float64 {
	if y <= 0 {
		return 0
	}
	if y > x.YFull {
		y = x.YFull
	}
	switch x.Type {
	case types.CIRCULAR, types.FORCE_MAIN:
		theta := circTheta(y, x.YFull)
		return x.YFull * math.Sin(theta/2.)
	case types.RECT_CLOSED, types.RECT_OPEN:
		return x.Base
	case types.TRAPEZOIDAL:
		return x.Base + 2*x.SideSlope*y
	case types.TRIANGULAR:
		return 2 * x.SideSlope * y
	case types.PARABOLIC:
		return x.WMax * math.Sqrt(y/x.YFull)
	}
	return 0
}

// AofY returns the raw flow area at depth y.
func (x *CrossSection) AofY(y float64) float64 {
	if y <= 0 {
		return 0
	}
	if y >= x.YFull {
		return x.AFull
	}
	switch x.Type {
	case types.CIRCULAR, types.FORCE_MAIN:
		theta := circTheta(y, x.YFull)
		d := x.YFull
		return d * d / 8. * (theta - math.Sin(theta))
	case types.RECT_CLOSED, types.RECT_OPEN:
		return x.Base * y
	case types.TRAPEZOIDAL:
		return y * (x.Base + x.SideSlope*y)
	case types.TRIANGULAR:
		return x.SideSlope * y * y
	case types.PARABOLIC:
		return 2. / 3. * x.WofY(y) * y
	}
	return 0
}

// RofY returns the raw hydraulic radius at depth y.
func (x *CrossSection) RofY(y float64) float64 {
	if y <= 0 {
		return 0
	}
	if y >= x.YFull {
		return x.RFull
	}
	var p float64
	switch x.Type {
	case types.CIRCULAR, types.FORCE_MAIN:
		theta := circTheta(y, x.YFull)
		p = theta * x.YFull / 2.
	case types.RECT_CLOSED:
		p = x.Base + 2*y
	case types.RECT_OPEN:
		p = x.Base + 2*y
	case types.TRAPEZOIDAL:
		p = x.Base + 2*y*math.Sqrt(1+x.SideSlope*x.SideSlope)
	case types.TRIANGULAR:
		p = 2 * y * math.Sqrt(1+x.SideSlope*x.SideSlope)
	case types.PARABOLIC:
		p = parabolicPerim(x.WofY(y), y)
	}
	if p <= 0 {
		return 0
	}
	return x.AofY(y) / p
}

// circTheta returns the central wetted angle of a circular section of
// diameter d filled to depth y.
func circTheta(y, d float64) float64 {
	r := 1 - 2*y/d
	if r < -1 {
		r = -1
	}
	if r > 1 {
		r = 1
	}
	return 2 * math.Acos(r)
}

// parabolicPerim approximates the wetted perimeter of a parabolic
// section of top width w and depth y.
func parabolicPerim(w, y float64) float64 {
	if w <= 0 {
		return 0
	}
	t := 4 * y / w
	return w / 2. * (math.Sqrt(1+t*t) + 1./t*math.Asinh(t))
}

// Width returns the top width at depth y, clamped to [0, yFull]. Closed
// shapes are evaluated no higher than 0.96 of full depth to avoid the
// width singularity as the section approaches full.
func Width(x *CrossSection, y float64) float64 {
	if y < 0 {
		y = 0
	}
	if y > x.YFull {
		y = x.YFull
	}
	if y/x.YFull > 0.96 && !x.Type.IsOpen() {
		y = 0.96 * x.YFull
	}
	return x.WofY(y)
}

// Area returns the flow area at depth y, clamped to [0, yFull].
func Area(x *CrossSection, y float64) float64 {
	if y < 0 {
		y = 0
	}
	if y > x.YFull {
		y = x.YFull
	}
	return x.AofY(y)
}

// HydRadius returns the hydraulic radius at depth y, clamped to [0, yFull].
func HydRadius(x *CrossSection, y float64) float64 {
	if y < 0 {
		y = 0
	}
	if y > x.YFull {
		y = x.YFull
	}
	return x.RofY(y)
}
