// Package convert dispatches coordinate conversions to the transforms in
// package coord and packages the results for display.
package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/fsevo/geoconv/internal/coord"
)

// Direction of a conversion.
type Direction int

const (
	Forward Direction = iota // geographic -> projected
	Reverse                  // projected -> geographic
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts forward/fwd/to and reverse/inverse/inv/from.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "fwd", "to":
		return Forward, nil
	case "reverse", "inverse", "inv", "from":
		return Reverse, nil
	}
	return 0, fmt.Errorf("unknown direction %q (want forward or reverse)", s)
}

// Kind selects the projected coordinate system.
type Kind int

const (
	WebMercator Kind = iota
	UTM
)

func (k Kind) String() string {
	switch k {
	case WebMercator:
		return "mercator"
	case UTM:
		return "utm"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts mercator, webmercator, web-mercator, 3857 and utm.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mercator", "webmercator", "web-mercator", "3857", "epsg:3857":
		return WebMercator, nil
	case "utm":
		return UTM, nil
	}
	return 0, fmt.Errorf("unknown projection %q (want mercator or utm)", s)
}

// Request describes one conversion. A and B hold latitude/longitude for
// Forward and x/y (easting/northing) for Reverse.
type Request struct {
	Direction Direction
	Kind      Kind
	A, B      float64

	// Zone is required for Reverse UTM. For Forward UTM a non-zero zone
	// forces projection into that zone instead of the one containing the point.
	Zone int
	// Hemisphere is required for Reverse UTM and ignored otherwise.
	Hemisphere coord.Hemisphere
}

// Result carries both ends of a conversion plus UTM metadata.
type Result struct {
	Request    Request
	Geographic coord.LatLon
	Projected  coord.XY // x/y, or easting/northing for UTM
	Zone       int
	Hemisphere coord.Hemisphere
	Units      string // units of the output pair: "m" or "deg"
	Warnings   []string
}

// EPSG returns the EPSG code of the projected side of the result.
func (r Result) EPSG() int {
	if r.Request.Kind == UTM {
		return (&coord.UTMProj{Zone: r.Zone, Hemisphere: r.Hemisphere}).EPSG()
	}
	return 3857
}

// UTM returns the projected side as a UTM coordinate.
func (r Result) UTM() coord.UTM {
	return coord.UTM{Easting: r.Projected.X, Northing: r.Projected.Y, Zone: r.Zone, Hemisphere: r.Hemisphere}
}

// Convert runs the transform selected by req.Direction and req.Kind. Inputs
// are validated before any computation; on error the Result is zero.
func Convert(req Request) (Result, error) {
	res := Result{Request: req}

	switch {
	case req.Direction == Forward && req.Kind == WebMercator:
		ll := coord.LatLon{Lat: req.A, Lon: req.B}
		p, err := coord.WebMercatorForward(ll)
		if err != nil {
			return Result{}, wrap(req, err)
		}
		res.Geographic, res.Projected, res.Units = ll, p, "m"

	case req.Direction == Forward && req.Kind == UTM:
		ll := coord.LatLon{Lat: req.A, Lon: req.B}
		var (
			u   coord.UTM
			err error
		)
		if req.Zone != 0 {
			u, err = coord.UTMForwardInZone(ll, req.Zone)
		} else {
			u, err = coord.UTMForward(ll)
		}
		if err != nil {
			return Result{}, wrap(req, err)
		}
		res.Geographic = ll
		res.Projected = coord.XY{X: u.Easting, Y: u.Northing}
		res.Zone, res.Hemisphere, res.Units = u.Zone, u.Hemisphere, "m"
		res.Warnings = utmWarnings(ll, u.Zone)

	case req.Direction == Reverse && req.Kind == WebMercator:
		p := coord.XY{X: req.A, Y: req.B}
		ll, err := coord.WebMercatorInverse(p)
		if err != nil {
			return Result{}, wrap(req, err)
		}
		res.Geographic, res.Projected, res.Units = ll, p, "deg"

	case req.Direction == Reverse && req.Kind == UTM:
		u := coord.UTM{Easting: req.A, Northing: req.B, Zone: req.Zone, Hemisphere: req.Hemisphere}
		ll, err := coord.UTMInverse(u)
		if err != nil {
			return Result{}, wrap(req, err)
		}
		res.Geographic = ll
		res.Projected = coord.XY{X: u.Easting, Y: u.Northing}
		res.Zone, res.Hemisphere, res.Units = u.Zone, u.Hemisphere, "deg"
		res.Warnings = utmWarnings(ll, u.Zone)

	default:
		return Result{}, fmt.Errorf("convert: unsupported combination %s %s", req.Direction, req.Kind)
	}
	return res, nil
}

func wrap(req Request, err error) error {
	return fmt.Errorf("convert %s %s: %w", req.Direction, req.Kind, err)
}

func utmWarnings(ll coord.LatLon, zone int) []string {
	var w []string
	if !coord.InUTMBand(ll.Lat) {
		w = append(w, fmt.Sprintf("latitude %.6f is outside the UTM band [%g, %g]; accuracy is not guaranteed",
			ll.Lat, coord.MinUTMLatitude, coord.MaxUTMLatitude))
	}
	off := math.Abs(math.Mod(ll.Lon-coord.CentralMeridian(zone)+540, 360) - 180)
	if off > 3 {
		w = append(w, fmt.Sprintf("longitude %.6f is %.2f° from the zone %d central meridian; accuracy degrades outside ±3°",
			ll.Lon, off, zone))
	}
	return w
}

// WGS84ToWebMercator projects latitude/longitude in degrees to EPSG:3857 meters.
func WGS84ToWebMercator(lat, lon float64) (coord.XY, error) {
	r, err := Convert(Request{Direction: Forward, Kind: WebMercator, A: lat, B: lon})
	return r.Projected, err
}

// WebMercatorToWGS84 unprojects EPSG:3857 meters to latitude/longitude in degrees.
func WebMercatorToWGS84(x, y float64) (coord.LatLon, error) {
	r, err := Convert(Request{Direction: Reverse, Kind: WebMercator, A: x, B: y})
	return r.Geographic, err
}

// WGS84ToUTM projects latitude/longitude into the UTM zone containing the point.
func WGS84ToUTM(lat, lon float64) (coord.UTM, error) {
	r, err := Convert(Request{Direction: Forward, Kind: UTM, A: lat, B: lon})
	if err != nil {
		return coord.UTM{}, err
	}
	return r.UTM(), nil
}

// UTMToWGS84 converts a UTM position in the given zone and hemisphere to latitude/longitude.
func UTMToWGS84(easting, northing float64, zone int, hemisphere coord.Hemisphere) (coord.LatLon, error) {
	r, err := Convert(Request{Direction: Reverse, Kind: UTM, A: easting, B: northing, Zone: zone, Hemisphere: hemisphere})
	return r.Geographic, err
}
