package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydronet/dynwave/DW1D"
	"github.com/hydronet/dynwave/types"
)

func TestExportNetwork(t *testing.T) {
	n1 := &DW1D.Node{Name: "J1", Type: types.JUNCTION, InvertElev: 8, NewDepth: 0.5, X: 500000, Y: 4649776}
	n2 := &DW1D.Node{Name: "O1", Type: types.OUTFALL, InvertElev: 0, X: 501000, Y: 4648776}
	xsect, err := DW1D.NewCrossSection(types.CIRCULAR, 2, 0, 0)
	require.NoError(t, err)
	link := &DW1D.Link{
		Name: "C1", Node1: n1, Node2: n2, Xsect: xsect,
		NewFlow: 3.5, NewDepth: 0.6, FlowClass: types.SUBCRITICAL,
	}

	out, err := ExportNetwork([]*DW1D.Node{n1, n2}, []*DW1D.Link{link}, 17)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(out, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)

	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, "J1", fc.Features[0].Properties["name"])
	assert.Equal(t, "JUNCTION", fc.Features[0].Properties["type"])

	// Easting 500000 sits on zone 17's central meridian (81W).
	var pt []float64
	require.NoError(t, json.Unmarshal(fc.Features[0].Geometry.Coordinates, &pt))
	assert.InDelta(t, -81.0, pt[0], 1.e-6)
	assert.InDelta(t, 42.0, pt[1], 0.1)

	ls := fc.Features[2]
	assert.Equal(t, "LineString", ls.Geometry.Type)
	assert.Equal(t, "C1", ls.Properties["name"])
	assert.Equal(t, "SUBCRITICAL", ls.Properties["class"])
	assert.InDelta(t, 3.5, ls.Properties["flow"].(float64), 1.e-12)
}

func TestExportNetworkRejectsBadCoordinates(t *testing.T) {
	n := &DW1D.Node{Name: "J1", Type: types.JUNCTION, X: -1, Y: 0}
	_, err := ExportNetwork([]*DW1D.Node{n}, nil, 17)
	assert.Error(t, err)
}
