package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML scenario file
type InputParameters struct {
	Title             string  `yaml:"Title"`
	RouteStep         float64 `yaml:"RouteStep"` // routing time step (sec)
	FinalTime         float64 `yaml:"FinalTime"` // simulation end time (sec)
	Omega             float64 `yaml:"Omega"`     // under-relaxation weight
	MaxTrials         int     `yaml:"MaxTrials"` // iteration limit per time step
	HeadTol           float64 `yaml:"HeadTol"`   // head convergence tolerance (ft)
	InertialDamping   string  `yaml:"InertialDamping"`
	NormalFlowLimited string  `yaml:"NormalFlowLimited"`
	Gravity           float64 `yaml:"Gravity"`

	Nodes    []NodeSpec    `yaml:"Nodes"`
	Conduits []ConduitSpec `yaml:"Conduits"`
	Inflows  []InflowSpec  `yaml:"Inflows"`

	UTMZone int `yaml:"UTMZone"` // zone for node coordinates, used by export
}

type NodeSpec struct {
	Name       string  `yaml:"Name"`
	Type       string  `yaml:"Type"` // junction or outfall
	InvertElev float64 `yaml:"InvertElev"`
	InitDepth  float64 `yaml:"InitDepth"`
	Area       float64 `yaml:"Area"` // plan area (ft2)
	FlapGate   bool    `yaml:"FlapGate"`
	X          float64 `yaml:"X"` // UTM easting
	Y          float64 `yaml:"Y"` // UTM northing
}

type ConduitSpec struct {
	Name      string  `yaml:"Name"`
	From      string  `yaml:"From"`
	To        string  `yaml:"To"`
	Shape     string  `yaml:"Shape"`
	YFull     float64 `yaml:"YFull"`
	Base      float64 `yaml:"Base"`
	SideSlope float64 `yaml:"SideSlope"`
	Length    float64 `yaml:"Length"`
	Roughness float64 `yaml:"Roughness"`
	Offset1   float64 `yaml:"Offset1"`
	Offset2   float64 `yaml:"Offset2"`
	Barrels   float64 `yaml:"Barrels"`
	QLimit    float64 `yaml:"QLimit"`
	FlapGate  bool    `yaml:"FlapGate"`

	KInlet  float64 `yaml:"KInlet"` // local loss coefficients
	KOutlet float64 `yaml:"KOutlet"`
	KAvg    float64 `yaml:"KAvg"`

	CulvertCode  int     `yaml:"CulvertCode"`
	ForceMainEqn string  `yaml:"ForceMainEqn"`
	HWCoeff      float64 `yaml:"HWCoeff"`
	DWRough      float64 `yaml:"DWRough"`

	EvapLossRate float64 `yaml:"EvapLossRate"`
	SeepLossRate float64 `yaml:"SeepLossRate"`
}

// InflowSpec is a triangular inflow hydrograph applied at a node.
type InflowSpec struct {
	Node     string  `yaml:"Node"`
	Base     float64 `yaml:"Base"`     // base flow (cfs)
	Peak     float64 `yaml:"Peak"`     // peak flow (cfs)
	PeakTime float64 `yaml:"PeakTime"` // time of peak (sec)
	EndTime  float64 `yaml:"EndTime"`  // recession end (sec)
}

// At evaluates the hydrograph at time t.
func (is *InflowSpec) At(t float64) float64 {
	switch {
	case is.PeakTime <= 0 || t <= 0:
		return is.Base
	case t < is.PeakTime:
		return is.Base + (is.Peak-is.Base)*t/is.PeakTime
	case t < is.EndTime:
		return is.Peak - (is.Peak-is.Base)*(t-is.PeakTime)/(is.EndTime-is.PeakTime)
	}
	return is.Base
}

func (ip *InputParameters) Parse(data []byte) error {
	ip.setDefaults()
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) setDefaults() {
	ip.RouteStep = 5.0
	ip.FinalTime = 3600.0
	ip.Omega = 0.5
	ip.MaxTrials = 8
	ip.HeadTol = 0.005
	ip.InertialDamping = "partial"
	ip.NormalFlowLimited = "both"
	ip.Gravity = 32.2
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= RouteStep\n", ip.RouteStep)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= Omega\n", ip.Omega)
	fmt.Printf("[%d]\t\t\t= MaxTrials\n", ip.MaxTrials)
	fmt.Printf("[%s]\t\t= InertialDamping\n", ip.InertialDamping)
	fmt.Printf("[%s]\t\t= NormalFlowLimited\n", ip.NormalFlowLimited)
	names := make([]string, len(ip.Conduits))
	for i, c := range ip.Conduits {
		names[i] = fmt.Sprintf("%s: %s -> %s", c.Name, c.From, c.To)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("Conduit[%s]\n", n)
	}
}
