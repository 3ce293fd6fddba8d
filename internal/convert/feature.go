package convert

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Point returns the geographic side of r as an orb point (lon, lat).
func (r Result) Point() orb.Point {
	return orb.Point{r.Geographic.Lon, r.Geographic.Lat}
}

// Feature returns r as a GeoJSON point feature. The projected values and the
// UTM metadata are attached as properties.
func Feature(r Result) *geojson.Feature {
	f := geojson.NewFeature(r.Point())
	f.Properties["direction"] = r.Request.Direction.String()
	f.Properties["projection"] = r.Request.Kind.String()
	f.Properties["epsg"] = r.EPSG()
	if r.Request.Kind == UTM {
		f.Properties["easting"] = r.Projected.X
		f.Properties["northing"] = r.Projected.Y
		f.Properties["zone"] = r.Zone
		f.Properties["hemisphere"] = r.Hemisphere.String()
	} else {
		f.Properties["x"] = r.Projected.X
		f.Properties["y"] = r.Projected.Y
	}
	if len(r.Warnings) > 0 {
		f.Properties["warnings"] = r.Warnings
	}
	return f
}
