package coord

import (
	"fmt"
	"math"
)

// UTM projection parameters.
const (
	UTMScaleFactor   = 0.9996     // k0 on the central meridian
	UTMFalseEasting  = 500000.0   // meters
	UTMFalseNorthing = 10000000.0 // meters, southern hemisphere only

	MinUTMZone = 1
	MaxUTMZone = 60

	// Conventional latitude band of UTM; polar regions use UPS.
	MinUTMLatitude = -80.0
	MaxUTMLatitude = 84.0
)

// UTMZoneFor returns the zone whose 6° strip contains lon. The antimeridian
// (lon = 180) belongs to zone 60.
func UTMZoneFor(lon float64) int {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone < MinUTMZone {
		return MinUTMZone
	}
	if zone > MaxUTMZone {
		return MaxUTMZone
	}
	return zone
}

// HemisphereFor returns North for lat >= 0 (the equator included) and South otherwise.
func HemisphereFor(lat float64) Hemisphere {
	if lat >= 0 {
		return North
	}
	return South
}

// CentralMeridian returns the longitude in degrees of the zone's central meridian.
func CentralMeridian(zone int) float64 {
	return float64((zone-1)*6-180) + 3
}

// InUTMBand reports whether lat lies inside the conventional UTM band [-80, 84].
func InUTMBand(lat float64) bool {
	return lat >= MinUTMLatitude && lat <= MaxUTMLatitude
}

func validateZone(op string, zone int) error {
	if zone < MinUTMZone || zone > MaxUTMZone {
		return &DomainError{Op: op, Field: "zone", Value: float64(zone), Min: MinUTMZone, Max: MaxUTMZone}
	}
	return nil
}

// UTMForward projects a WGS84 position into the UTM zone that contains it.
func UTMForward(ll LatLon) (UTM, error) {
	if err := ll.validate("utm forward"); err != nil {
		return UTM{}, err
	}
	return utmForward(WGS84, ll, UTMZoneFor(ll.Lon))
}

// UTMForwardInZone projects a WGS84 position into the given zone even when
// the point lies outside that zone's strip. Accuracy degrades with distance
// from the central meridian.
func UTMForwardInZone(ll LatLon, zone int) (UTM, error) {
	const op = "utm forward"
	if err := ll.validate(op); err != nil {
		return UTM{}, err
	}
	if err := validateZone(op, zone); err != nil {
		return UTM{}, err
	}
	return utmForward(WGS84, ll, zone)
}

func utmForward(el Ellipsoid, ll LatLon, zone int) (UTM, error) {
	phi := toRadians(ll.Lat)
	dLambda := toRadians(ll.Lon - CentralMeridian(zone))

	sinPhi, cosPhi := math.Sincos(phi)
	tanPhi := math.Tan(phi)

	n := el.primeVerticalRadius(sinPhi)
	t := tanPhi * tanPhi
	c := el.Ep2 * cosPhi * cosPhi
	a := cosPhi * dLambda
	m := el.MeridianArc(phi)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	easting := UTMScaleFactor*n*(a+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*el.Ep2)*a5/120) + UTMFalseEasting

	northing := UTMScaleFactor * (m + n*tanPhi*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*el.Ep2)*a6/720))

	hemi := HemisphereFor(ll.Lat)
	if hemi == South {
		northing += UTMFalseNorthing
	}

	if !isFinite(easting) || !isFinite(northing) {
		return UTM{}, &DomainError{Op: "utm forward", Field: "latitude", Value: ll.Lat,
			Reason: "series does not converge at this position"}
	}
	return UTM{Easting: easting, Northing: northing, Zone: zone, Hemisphere: hemi}, nil
}

// UTMInverse converts a UTM position back to WGS84. Zone and hemisphere are
// required: the same easting/northing pair names different places in
// different zones, and only the hemisphere tells whether the false northing
// was applied.
func UTMInverse(u UTM) (LatLon, error) {
	const op = "utm inverse"
	if err := validateZone(op, u.Zone); err != nil {
		return LatLon{}, err
	}
	if !u.Hemisphere.Valid() {
		return LatLon{}, &DomainError{Op: op, Field: "hemisphere", Value: float64(u.Hemisphere),
			Reason: fmt.Sprintf("%v is neither N nor S", u.Hemisphere)}
	}
	if !isFinite(u.Easting) {
		return LatLon{}, &DomainError{Op: op, Field: "easting", Value: u.Easting, Reason: "not finite"}
	}
	if !isFinite(u.Northing) {
		return LatLon{}, &DomainError{Op: op, Field: "northing", Value: u.Northing, Reason: "not finite"}
	}
	return utmInverse(WGS84, u)
}

func utmInverse(el Ellipsoid, u UTM) (LatLon, error) {
	const op = "utm inverse"

	x := u.Easting - UTMFalseEasting
	y := u.Northing
	if u.Hemisphere == South {
		y -= UTMFalseNorthing
	}

	phi1 := el.footpointLatitude(y / UTMScaleFactor)
	if math.Abs(phi1) >= math.Pi/2 {
		return LatLon{}, &DomainError{Op: op, Field: "northing", Value: u.Northing,
			Reason: "footpoint latitude beyond the pole"}
	}

	sinPhi1, cosPhi1 := math.Sincos(phi1)
	tanPhi1 := math.Tan(phi1)

	w := 1 - el.E2*sinPhi1*sinPhi1
	n1 := el.A / math.Sqrt(w)
	t1 := tanPhi1 * tanPhi1
	c1 := el.Ep2 * cosPhi1 * cosPhi1
	r1 := el.A * (1 - el.E2) / (w * math.Sqrt(w))
	d := x / (n1 * UTMScaleFactor)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat := phi1 - (n1*tanPhi1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*el.Ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*el.Ep2-3*c1*c1)*d6/720)

	dLon := (d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*el.Ep2+24*t1*t1)*d5/120) / cosPhi1

	ll := LatLon{
		Lat: toDegrees(lat),
		Lon: wrapLongitude(CentralMeridian(u.Zone) + toDegrees(dLon)),
	}
	if !isFinite(ll.Lat) || !isFinite(ll.Lon) || math.Abs(ll.Lat) > 90 {
		return LatLon{}, &DomainError{Op: op, Field: "easting", Value: u.Easting,
			Reason: "position has no geographic equivalent in this zone"}
	}
	return ll, nil
}

// UTMProj implements the Projection interface for a single UTM zone
// (EPSG:326zz north, EPSG:327zz south).
type UTMProj struct {
	Zone       int
	Hemisphere Hemisphere
}

func (p *UTMProj) EPSG() int {
	if p.Hemisphere == South {
		return 32700 + p.Zone
	}
	return 32600 + p.Zone
}

func (p *UTMProj) ToWGS84(easting, northing float64) (lon, lat float64, err error) {
	ll, err := UTMInverse(UTM{Easting: easting, Northing: northing, Zone: p.Zone, Hemisphere: p.Hemisphere})
	if err != nil {
		return 0, 0, err
	}
	return ll.Lon, ll.Lat, nil
}

// FromWGS84 projects into the receiver's zone. Points on the other side of
// the equator are rejected since their northing would use the other
// false-northing convention.
func (p *UTMProj) FromWGS84(lon, lat float64) (easting, northing float64, err error) {
	u, err := UTMForwardInZone(LatLon{Lat: lat, Lon: lon}, p.Zone)
	if err != nil {
		return 0, 0, err
	}
	if u.Hemisphere != p.Hemisphere {
		return 0, 0, &DomainError{Op: fmt.Sprintf("EPSG:%d forward", p.EPSG()), Field: "latitude", Value: lat,
			Reason: fmt.Sprintf("not in the %s hemisphere", p.Hemisphere)}
	}
	return u.Easting, u.Northing, nil
}
