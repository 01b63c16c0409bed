// Package geo exports network layouts as GeoJSON for inspection in GIS
// tools. Node coordinates are UTM easting/northing converted to WGS84.
package geo

import (
	"fmt"

	"github.com/im7mortal/UTM"
	geojson "github.com/paulmach/go.geojson"

	"github.com/hydronet/dynwave/DW1D"
)

// ExportNetwork returns a GeoJSON FeatureCollection of the network's
// nodes (points) and conduits (line strings), with current state
// attached as feature properties.
func ExportNetwork(nodes []*DW1D.Node, links []*DW1D.Link, utmZone int) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	lonlat := func(n *DW1D.Node) ([]float64, error) {
		lat, lon, err := UTM.ToLatLon(n.X, n.Y, utmZone, "", true)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.Name, err)
		}
		return []float64{lon, lat}, nil
	}

	for _, n := range nodes {
		pt, err := lonlat(n)
		if err != nil {
			return nil, err
		}
		f := geojson.NewPointFeature(pt)
		f.SetProperty("name", n.Name)
		f.SetProperty("type", n.Type.String())
		f.SetProperty("invert", n.InvertElev)
		f.SetProperty("depth", n.NewDepth)
		fc.AddFeature(f)
	}

	for _, l := range links {
		p1, err := lonlat(l.Node1)
		if err != nil {
			return nil, err
		}
		p2, err := lonlat(l.Node2)
		if err != nil {
			return nil, err
		}
		f := geojson.NewLineStringFeature([][]float64{p1, p2})
		f.SetProperty("name", l.Name)
		f.SetProperty("shape", l.Xsect.Type.String())
		f.SetProperty("flow", l.NewFlow)
		f.SetProperty("depth", l.NewDepth)
		f.SetProperty("class", l.FlowClass.String())
		fc.AddFeature(f)
	}

	return fc.MarshalJSON()
}
