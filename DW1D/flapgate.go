package DW1D

import "github.com/hydronet/dynwave/types"

// SetFlapGate reports whether a flap gate blocks flow q through the
// link. A gate on the link itself blocks flow against the link's
// defined direction; a gated outfall node blocks any flow entering the
// network through it.
func SetFlapGate(link *Link, n1, n2 *Node, q float64) bool {
	if link.HasFlapGate {
		if q*link.Direction < 0.0 {
			return true
		}
	}
	var n *Node
	if q < 0.0 {
		n = n2
	}
	if q > 0.0 {
		n = n1
	}
	if n != nil && n.Type == types.OUTFALL && n.HasFlapGate {
		return true
	}
	return false
}
