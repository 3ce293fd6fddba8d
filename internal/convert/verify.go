package convert

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/wroge/wgs84"

	"github.com/fsevo/geoconv/internal/coord"
)

// Deviation compares a result with the same conversion done by an
// independent implementation (github.com/wroge/wgs84). The reference is
// approximate: its transverse Mercator series drifts by decimetres on the
// forward side and by metres on the inverse side towards the zone edges, so
// a UTM deviation bounds agreement, not the error of this package.
type Deviation struct {
	// Reference output: x/y (easting/northing) for Forward, lon/lat for Reverse.
	Reference orb.Point
	// Meters between our output and the reference. For Reverse results the
	// distance is measured on the ground between the two geographic points.
	Meters float64
}

// Verify recomputes r with the reference library and reports the difference.
func Verify(r Result) (Deviation, error) {
	transform, err := referenceTransform(r)
	if err != nil {
		return Deviation{}, err
	}

	if r.Request.Direction == Forward {
		x, y, _ := transform(r.Geographic.Lon, r.Geographic.Lat, 0)
		ref := orb.Point{x, y}
		if !finitePoint(ref) {
			return Deviation{}, fmt.Errorf("verify: reference produced %v", ref)
		}
		got := orb.Point{r.Projected.X, r.Projected.Y}
		return Deviation{Reference: ref, Meters: planar.Distance(got, ref)}, nil
	}

	lon, lat, _ := transform(r.Projected.X, r.Projected.Y, 0)
	ref := orb.Point{lon, lat}
	if !finitePoint(ref) {
		return Deviation{}, fmt.Errorf("verify: reference produced %v", ref)
	}
	got := orb.Point{r.Geographic.Lon, r.Geographic.Lat}
	return Deviation{Reference: ref, Meters: geo.Distance(got, ref)}, nil
}

// referenceTransform builds the wgs84 function for r's direction and projection.
func referenceTransform(r Result) (func(a, b, c float64) (float64, float64, float64), error) {
	lonLat := wgs84.WGS84().LonLat()

	switch r.Request.Kind {
	case WebMercator:
		if r.Request.Direction == Forward {
			return wgs84.Transform(lonLat, wgs84.WebMercator()), nil
		}
		return wgs84.Transform(wgs84.WebMercator(), lonLat), nil

	case UTM:
		falseNorthing := 0.0
		if r.Hemisphere == coord.South {
			falseNorthing = coord.UTMFalseNorthing
		}
		tm := wgs84.WGS84().TransverseMercator(coord.CentralMeridian(r.Zone), 0,
			coord.UTMScaleFactor, coord.UTMFalseEasting, falseNorthing)
		if r.Request.Direction == Forward {
			return wgs84.Transform(lonLat, tm), nil
		}
		return wgs84.Transform(tm, lonLat), nil
	}
	return nil, fmt.Errorf("verify: unsupported projection %s", r.Request.Kind)
}

func finitePoint(p orb.Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
