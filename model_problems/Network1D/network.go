package Network1D

import (
	"fmt"
	"math"

	"github.com/gosuri/uiprogress"
	"gonum.org/v1/gonum/mat"

	"github.com/hydronet/dynwave/DW1D"
	"github.com/hydronet/dynwave/InputParameters"
	"github.com/hydronet/dynwave/types"
	"github.com/hydronet/dynwave/utils"
)

// Network is a successive-approximation head update loop over a small
// link-node network. It exists to exercise the conduit momentum solver
// end to end; it is a demonstration harness, not a production routing
// engine.
type Network struct {
	Sys    *DW1D.System
	Nodes  []*DW1D.Node
	Links  []*DW1D.Link
	States []*DW1D.ConduitState

	Inflows   []InputParameters.InflowSpec
	inflowIdx []int // node index per inflow

	Incidence utils.CSR // node x link incidence, +1 at node1, -1 at node2

	RouteStep, FinalTime float64
	Omega, HeadTol       float64
	MaxTrials            int

	Time  float64
	Steps int

	nodeIndex map[string]int
}

// RecordFunc is invoked after each completed routing step.
type RecordFunc func(t float64, net *Network)

func NewNetwork(ip *InputParameters.InputParameters) (net *Network, err error) {
	sys := DW1D.NewSystem()
	if ip.Gravity > 0 {
		sys.Gravity = ip.Gravity
	}
	if d, ok := types.InertialDampingNameMap[ip.InertialDamping]; ok {
		sys.InertDamping = d
	}
	if n, ok := types.NormalFlowLimitedNameMap[ip.NormalFlowLimited]; ok {
		sys.NormalFlowLtd = n
	}
	net = &Network{
		Sys:       sys,
		RouteStep: ip.RouteStep,
		FinalTime: ip.FinalTime,
		Omega:     ip.Omega,
		HeadTol:   ip.HeadTol,
		MaxTrials: ip.MaxTrials,
		nodeIndex: make(map[string]int),
	}

	for _, ns := range ip.Nodes {
		nt, ok := types.NodeTypeNameMap[ns.Type]
		if !ok {
			return nil, fmt.Errorf("node %s: unknown type %q", ns.Name, ns.Type)
		}
		node := &DW1D.Node{
			Name:        ns.Name,
			Type:        nt,
			InvertElev:  ns.InvertElev,
			NewDepth:    ns.InitDepth,
			Area:        math.Max(ns.Area, 12.566), // min manhole area, 4 ft dia.
			HasFlapGate: ns.FlapGate,
			X:           ns.X,
			Y:           ns.Y,
		}
		net.nodeIndex[ns.Name] = len(net.Nodes)
		net.Nodes = append(net.Nodes, node)
	}

	for _, cspec := range ip.Conduits {
		i1, ok := net.nodeIndex[cspec.From]
		if !ok {
			return nil, fmt.Errorf("conduit %s: unknown node %q", cspec.Name, cspec.From)
		}
		i2, ok := net.nodeIndex[cspec.To]
		if !ok {
			return nil, fmt.Errorf("conduit %s: unknown node %q", cspec.Name, cspec.To)
		}
		shape, ok := types.XsectNameMap[cspec.Shape]
		if !ok {
			return nil, fmt.Errorf("conduit %s: unknown shape %q", cspec.Name, cspec.Shape)
		}
		xsect, err := DW1D.NewCrossSection(shape, cspec.YFull, cspec.Base, cspec.SideSlope)
		if err != nil {
			return nil, fmt.Errorf("conduit %s: %w", cspec.Name, err)
		}
		xsect.CulvertCode = cspec.CulvertCode
		xsect.HWCoeff = cspec.HWCoeff
		xsect.DWRough = cspec.DWRough
		if fm, ok := types.ForceMainEqnNameMap[cspec.ForceMainEqn]; ok {
			xsect.ForceMainEqn = fm
		}

		link := &DW1D.Link{
			Name:        cspec.Name,
			Node1:       net.Nodes[i1],
			Node2:       net.Nodes[i2],
			Offset1:     cspec.Offset1,
			Offset2:     cspec.Offset2,
			Xsect:       xsect,
			Setting:     1.0,
			Direction:   1.0,
			QLimit:      cspec.QLimit,
			CLossInlet:  cspec.KInlet,
			CLossOutlet: cspec.KOutlet,
			CLossAvg:    cspec.KAvg,
			HasFlapGate: cspec.FlapGate,
		}
		barrels := cspec.Barrels
		if barrels < 1 {
			barrels = 1
		}
		z1 := link.Node1.InvertElev + link.Offset1
		z2 := link.Node2.InvertElev + link.Offset2
		slope := (z1 - z2) / cspec.Length
		cs, err := DW1D.NewConduitState(sys, link, cspec.Length, cspec.Roughness, slope, barrels)
		if err != nil {
			return nil, err
		}
		cs.EvapLossRate = cspec.EvapLossRate
		cs.SeepLossRate = cspec.SeepLossRate
		net.Links = append(net.Links, link)
		net.States = append(net.States, cs)
	}

	for _, is := range ip.Inflows {
		idx, ok := net.nodeIndex[is.Node]
		if !ok {
			return nil, fmt.Errorf("inflow: unknown node %q", is.Node)
		}
		net.Inflows = append(net.Inflows, is)
		net.inflowIdx = append(net.inflowIdx, idx)
	}

	// Node-link incidence: +1 where the link leaves the node, -1 where
	// it enters, so incidence x flows = net outflow per node.
	dok := utils.NewDOK(len(net.Nodes), len(net.Links))
	for l, link := range net.Links {
		dok.M.Set(net.nodeIndex[link.Node1.Name], l, 1)
		dok.M.Set(net.nodeIndex[link.Node2.Name], l, -1)
	}
	net.Incidence = dok.ToCSR()
	return net, nil
}

// NodeIndex returns the index of a named node, or -1.
func (net *Network) NodeIndex(name string) int {
	if i, ok := net.nodeIndex[name]; ok {
		return i
	}
	return -1
}

// Run routes flow through the network until FinalTime, invoking record
// (if non-nil) after each step.
func (net *Network) Run(showProgress bool, record RecordFunc) {
	var (
		dt     = net.RouteStep
		nSteps = int(math.Ceil(net.FinalTime / dt))
		bar    *uiprogress.Bar
	)
	if showProgress {
		uiprogress.Start()
		bar = uiprogress.AddBar(nSteps).AppendCompleted().PrependElapsed()
	}
	for step := 0; step < nSteps; step++ {
		net.Step(dt)
		net.Time += dt
		net.Steps++
		if record != nil {
			record(net.Time, net)
		}
		if bar != nil {
			bar.Incr()
		}
	}
	if showProgress {
		uiprogress.Stop()
	}
}

// Step advances the network one routing step using Picard iteration:
// conduit flows from current heads, then node depths from continuity,
// repeated until the largest head change falls within tolerance.
func (net *Network) Step(dt float64) {
	var (
		nN         = len(net.Nodes)
		startDepth = make([]float64, nN)
	)
	for i, n := range net.Nodes {
		startDepth[i] = n.NewDepth
	}

	for trial := 0; trial < net.MaxTrials; trial++ {
		for l, link := range net.Links {
			net.Sys.FindConduitFlow(link, net.States[l], trial, net.Omega, dt)
		}

		// Net outflow per node from the incidence matrix
		q := mat.NewVecDense(len(net.Links), nil)
		for l, link := range net.Links {
			q.SetVec(l, link.NewFlow)
		}
		outflow := mat.NewVecDense(nN, nil)
		outflow.MulVec(net.Incidence.M, q)

		maxChange := 0.0
		for i, n := range net.Nodes {
			if n.Type == types.OUTFALL {
				continue
			}
			inflow := -outflow.AtVec(i)
			inflow += net.externalInflow(i)

			area := n.Area
			for _, link := range net.Links {
				if net.nodeIndex[link.Node1.Name] == i {
					area += link.SurfArea1
				}
				if net.nodeIndex[link.Node2.Name] == i {
					area += link.SurfArea2
				}
			}
			if area < DW1D.FUDGE {
				area = DW1D.FUDGE
			}

			yNew := startDepth[i] + dt*inflow/area
			if yNew < 0 {
				yNew = 0
			}
			if trial > 0 {
				yNew = (1.0-net.Omega)*n.NewDepth + net.Omega*yNew
			}
			maxChange = math.Max(maxChange, math.Abs(yNew-n.NewDepth))
			n.NewDepth = yNew
		}

		if trial > 0 && maxChange < net.HeadTol {
			break
		}
	}

	// Advance the carried-forward conduit state to seed the next step
	for l, link := range net.Links {
		cs := net.States[l]
		cs.A2 = cs.A1
		link.OldFlow = link.NewFlow
	}
}

func (net *Network) externalInflow(node int) (q float64) {
	for k, is := range net.Inflows {
		if net.inflowIdx[k] == node {
			q += is.At(net.Time)
		}
	}
	return
}

// TotalOutflow sums the flow leaving the network through outfalls.
func (net *Network) TotalOutflow() (q float64) {
	for _, link := range net.Links {
		if link.Node2.Type == types.OUTFALL && link.NewFlow > 0 {
			q += link.NewFlow
		}
		if link.Node1.Type == types.OUTFALL && link.NewFlow < 0 {
			q += -link.NewFlow
		}
	}
	return
}
