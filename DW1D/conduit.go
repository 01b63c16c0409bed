package DW1D

import (
	"fmt"
	"math"

	"github.com/hydronet/dynwave/types"
)

const (
	// PHI is the Manning equation units coefficient (US customary).
	PHI = 1.486
	// FUDGE is the minimum depth/area used to represent "effectively dry".
	FUDGE = 1.0e-5
	// MAXVELOCITY is the largest velocity magnitude (ft/sec) allowed in
	// any momentum term.
	MAXVELOCITY = 50.
)

// System carries the global solver configuration shared by every
// conduit computation. There is no process-wide state; callers pass a
// System into each solve.
type System struct {
	Gravity       float64 // gravitational acceleration (ft/sec2)
	InertDamping  types.InertialDamping
	NormalFlowLtd types.NormalFlowLimited
}

func NewSystem() *System {
	return &System{
		Gravity:       32.2,
		InertDamping:  types.PARTIAL_DAMPING,
		NormalFlowLtd: types.BOTH,
	}
}

// Node is an end point of one or more links. It is owned by the outer
// network model and read-only to the conduit solver.
type Node struct {
	Name        string
	Type        types.NodeType
	InvertElev  float64 // invert elevation (ft)
	NewDepth    float64 // current depth estimate (ft)
	Area        float64 // plan area used by the continuity update (ft2)
	HasFlapGate bool    // outfall check valve
	X, Y        float64 // UTM easting/northing, used only for export
}

// Head returns the node's current hydraulic head (ft).
func (n *Node) Head() float64 { return n.InvertElev + n.NewDepth }

// Link is a conduit connecting two nodes. Its per-call outputs are
// written once by FindConduitFlow and read by the outer solver.
type Link struct {
	Name             string
	Node1, Node2     *Node
	Offset1, Offset2 float64 // invert offsets above each node's invert (ft)
	Xsect            CrossSection
	Setting          float64 // control setting; 0 means closed
	Direction        float64 // +1 normal, -1 if ends were swapped at load

	QLimit                            float64 // user flow magnitude limit (cfs, 0 = none)
	CLossInlet, CLossOutlet, CLossAvg float64 // local (minor) loss coefficients
	HasFlapGate                       bool

	// Per-call outputs
	OldFlow              float64 // flow at previous time step (cfs, all barrels)
	NewFlow              float64 // flow at current time step (cfs, all barrels)
	NewDepth             float64 // midpoint depth (ft)
	NewVolume            float64 // stored volume (ft3)
	Dqdh                 float64 // derivative of flow w.r.t. head (ft2/sec)
	Froude               float64
	FlowClass            types.FlowClass
	SurfArea1, SurfArea2 float64 // surface area contributed to each node (ft2)
	InletControl         bool
	NormalFlow           bool
}

// ConduitState is the solver's persistent per-conduit memory. A1/A2 and
// Q1/Q2 are read at entry as the old state and overwritten at exit to
// seed the next call.
type ConduitState struct {
	Barrels      float64 // number of identical parallel barrels
	Length       float64 // geometric barrel length (ft)
	ModLength    float64 // Courant-modified length used in the momentum eqn (ft)
	Roughness    float64 // Manning n (or HW coefficient / DW height for force mains)
	RoughFactor  float64 // Manning friction factor g*(n/PHI)^2
	Beta         float64 // uniform flow coefficient PHI/n*sqrt(|slope|)
	Slope        float64
	QMax         float64 // full uniform flow capacity (cfs)
	HasLosses    bool
	EvapLossRate float64 // evaporation loss rate (cfs)
	SeepLossRate float64 // seepage loss rate (cfs)

	A1, A2 float64 // saved flow areas (ft2); A2 is the previous time step area
	Q1, Q2 float64 // flow from previous iteration / previous time step (cfs)

	FullState types.FullState
}

// NewConduitState validates the conduit's static properties and derives
// the Manning friction and uniform flow coefficients. Out-of-range
// geometry is rejected here, never at solve time.
func NewConduitState(sys *System, link *Link, length, roughness, slope, barrels float64) (cs *ConduitState, err error) {
	if length <= 0 {
		return nil, fmt.Errorf("conduit %s: non-positive length %g", link.Name, length)
	}
	if roughness <= 0 {
		return nil, fmt.Errorf("conduit %s: non-positive roughness %g", link.Name, roughness)
	}
	if barrels < 1 {
		return nil, fmt.Errorf("conduit %s: barrels %g < 1", link.Name, barrels)
	}
	if link.Xsect.YFull <= 0 {
		return nil, fmt.Errorf("conduit %s: non-positive full depth %g", link.Name, link.Xsect.YFull)
	}
	cs = &ConduitState{
		Barrels:   barrels,
		Length:    length,
		ModLength: length,
		Roughness: roughness,
		Slope:     slope,
	}
	cs.RoughFactor = sys.Gravity * (roughness / PHI) * (roughness / PHI)
	cs.Beta = PHI / roughness * math.Sqrt(math.Abs(slope))
	cs.QMax = cs.Beta * link.Xsect.AFull * math.Pow(link.Xsect.RFull, 2./3.)
	if link.Direction == 0 {
		link.Direction = 1
	}
	if link.CLossInlet > 0 || link.CLossOutlet > 0 || link.CLossAvg > 0 {
		cs.HasLosses = true
	}
	return cs, nil
}
