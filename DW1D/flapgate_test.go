package DW1D

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydronet/dynwave/types"
)

func TestFlapGateOnLink(t *testing.T) {
	n1 := &Node{Type: types.JUNCTION}
	n2 := &Node{Type: types.JUNCTION}
	link := &Link{Node1: n1, Node2: n2, Direction: 1, HasFlapGate: true}

	assert.False(t, SetFlapGate(link, n1, n2, 2))
	assert.True(t, SetFlapGate(link, n1, n2, -2))

	// A link loaded with swapped ends blocks the other way.
	link.Direction = -1
	assert.True(t, SetFlapGate(link, n1, n2, 2))
	assert.False(t, SetFlapGate(link, n1, n2, -2))
}

func TestFlapGateOnOutfallNode(t *testing.T) {
	n1 := &Node{Type: types.OUTFALL, HasFlapGate: true}
	n2 := &Node{Type: types.JUNCTION}
	link := &Link{Node1: n1, Node2: n2, Direction: 1}

	// Forward flow would enter the network through the gated outfall.
	assert.True(t, SetFlapGate(link, n1, n2, 2))
	assert.False(t, SetFlapGate(link, n1, n2, -2))

	// Gate on the downstream outfall blocks reverse flow only.
	n1.Type, n1.HasFlapGate = types.JUNCTION, false
	n2.Type, n2.HasFlapGate = types.OUTFALL, true
	assert.False(t, SetFlapGate(link, n1, n2, 2))
	assert.True(t, SetFlapGate(link, n1, n2, -2))
}

func TestLocalLosses(t *testing.T) {
	link := &Link{CLossInlet: 0.5, CLossOutlet: 1.0, CLossAvg: 0.2}

	q, a1, a2, aMid := 10.0, 4.0, 5.0, 4.5
	want := 0.5*(q/a1) + 1.0*(q/a2) + 0.2*(q/aMid)
	assert.InDelta(t, want, findLocalLosses(link, a1, a2, aMid, q), 1.e-12)

	// Losses depend on flow magnitude, not direction.
	assert.Equal(t, findLocalLosses(link, a1, a2, aMid, q),
		findLocalLosses(link, a1, a2, aMid, -q))

	// Effectively dry areas contribute nothing.
	assert.Equal(t, 0.2*(q/aMid), findLocalLosses(link, FUDGE/2, FUDGE/2, aMid, q))
}
