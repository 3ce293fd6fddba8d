package coord

import (
	"fmt"
	"strings"
)

// LatLon is a WGS84 geographic position in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Validate checks that both fields are finite and inside [-90, 90] / [-180, 180].
func (ll LatLon) Validate() error {
	return ll.validate("")
}

func (ll LatLon) validate(op string) error {
	if !isFinite(ll.Lat) || ll.Lat < -90 || ll.Lat > 90 {
		return &DomainError{Op: op, Field: "latitude", Value: ll.Lat, Min: -90, Max: 90}
	}
	if !isFinite(ll.Lon) || ll.Lon < -180 || ll.Lon > 180 {
		return &DomainError{Op: op, Field: "longitude", Value: ll.Lon, Min: -180, Max: 180}
	}
	return nil
}

func (ll LatLon) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", ll.Lat, ll.Lon)
}

// XY is a projected position in meters (Web Mercator x/y).
type XY struct {
	X float64
	Y float64
}

// Hemisphere selects the UTM false-northing convention.
type Hemisphere byte

const (
	North Hemisphere = 'N'
	South Hemisphere = 'S'
)

// ParseHemisphere accepts "N", "S", "north" or "south" in any case.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "s", "south":
		return South, nil
	}
	return 0, &ParseError{Field: "hemisphere", Input: s, Err: fmt.Errorf("want N or S")}
}

// Valid reports whether h is North or South.
func (h Hemisphere) Valid() bool { return h == North || h == South }

func (h Hemisphere) String() string {
	switch h {
	case North:
		return "N"
	case South:
		return "S"
	}
	return fmt.Sprintf("Hemisphere(%d)", byte(h))
}

// UTM is a position in a Universal Transverse Mercator zone.
type UTM struct {
	Easting    float64
	Northing   float64
	Zone       int
	Hemisphere Hemisphere
}

// ZoneLabel returns the zone and hemisphere as written on maps, e.g. "30N".
func (u UTM) ZoneLabel() string {
	return fmt.Sprintf("%d%s", u.Zone, u.Hemisphere)
}
