package types

// FlowClass labels the flow regime of a conduit for the current
// iteration of the dynamic wave solution.
type FlowClass uint8

const (
	DRY FlowClass = iota // conduit is dry at both ends
	UP_DRY               // dry at upstream end only
	DN_DRY               // dry at downstream end only
	SUBCRITICAL
	SUPCRITICAL
	UP_CRITICAL // critical depth control at upstream end
	DN_CRITICAL // critical depth control at downstream end
)

var FlowClassNames = []string{
	"DRY", "UP_DRY", "DN_DRY", "SUBCRITICAL", "SUPCRITICAL",
	"UP_CRITICAL", "DN_CRITICAL",
}

func (fc FlowClass) String() string { return FlowClassNames[fc] }

type NodeType uint8

const (
	JUNCTION NodeType = iota
	OUTFALL
	STORAGE
	DIVIDER
)

var NodeTypeNameMap = map[string]NodeType{
	"junction": JUNCTION,
	"outfall":  OUTFALL,
	"storage":  STORAGE,
	"divider":  DIVIDER,
}

func (nt NodeType) String() string {
	return []string{"JUNCTION", "OUTFALL", "STORAGE", "DIVIDER"}[nt]
}

// XsectType identifies a conduit cross-section shape family.
type XsectType uint8

const (
	CIRCULAR XsectType = iota
	FORCE_MAIN
	RECT_CLOSED
	RECT_OPEN
	TRAPEZOIDAL
	TRIANGULAR
	PARABOLIC
)

var XsectNameMap = map[string]XsectType{
	"circular":    CIRCULAR,
	"force_main":  FORCE_MAIN,
	"rect_closed": RECT_CLOSED,
	"rect_open":   RECT_OPEN,
	"trapezoidal": TRAPEZOIDAL,
	"triangular":  TRIANGULAR,
	"parabolic":   PARABOLIC,
}

func (xt XsectType) String() string {
	return []string{"CIRCULAR", "FORCE_MAIN", "RECT_CLOSED", "RECT_OPEN",
		"TRAPEZOIDAL", "TRIANGULAR", "PARABOLIC"}[xt]
}

// IsOpen reports whether the shape is an open channel rather than a
// closed conduit.
func (xt XsectType) IsOpen() bool {
	switch xt {
	case RECT_OPEN, TRAPEZOIDAL, TRIANGULAR, PARABOLIC:
		return true
	}
	return false
}

// InertialDamping selects how much of the momentum equation's inertial
// terms to retain.
type InertialDamping uint8

const (
	PARTIAL_DAMPING InertialDamping = iota // Froude-based sigma (default)
	NO_DAMPING                             // sigma forced to 1
	FULL_DAMPING                           // sigma forced to 0
)

var InertialDampingNameMap = map[string]InertialDamping{
	"partial": PARTIAL_DAMPING,
	"none":    NO_DAMPING,
	"full":    FULL_DAMPING,
}

// NormalFlowLimited selects which conditions trigger the normal flow
// limitation check.
type NormalFlowLimited uint8

const (
	SLOPE NormalFlowLimited = iota // water surface slope check only
	FROUDE                         // Froude number check only
	BOTH                           // either check
)

var NormalFlowLimitedNameMap = map[string]NormalFlowLimited{
	"slope":  SLOPE,
	"froude": FROUDE,
	"both":   BOTH,
}

// FullState classifies which ends of a conduit are flowing full.
type FullState uint8

const (
	PARTIAL_FULL FullState = iota
	UP_FULL
	DN_FULL
	ALL_FULL
)

func (fs FullState) String() string {
	return []string{"PARTIAL", "UP_FULL", "DN_FULL", "ALL_FULL"}[fs]
}

// ForceMainEqn selects the friction law used for full force mains.
type ForceMainEqn uint8

const (
	HAZEN_WILLIAMS ForceMainEqn = iota
	DARCY_WEISBACH
)

var ForceMainEqnNameMap = map[string]ForceMainEqn{
	"hazen-williams": HAZEN_WILLIAMS,
	"darcy-weisbach": DARCY_WEISBACH,
}
