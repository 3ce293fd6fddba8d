package coord

import "math"

// Ellipsoid holds the defining constants of a reference ellipsoid together
// with the quantities derived from them. Values are computed once by
// NewEllipsoid and must not be modified afterwards.
type Ellipsoid struct {
	A   float64 // semi-major axis in meters
	F   float64 // flattening
	B   float64 // semi-minor axis in meters
	E   float64 // first eccentricity
	E2  float64 // e²
	Ep2 float64 // second eccentricity squared, e²/(1−e²)

	// Meridian arc series: M = A·(m0·φ − m2·sin2φ + m4·sin4φ − m6·sin6φ).
	m0, m2, m4, m6 float64

	// Footpoint latitude series in μ, built from e1 = (1−√(1−e²))/(1+√(1−e²)).
	e1             float64
	f2, f4, f6, f8 float64
}

// WGS84 is the World Geodetic System 1984 ellipsoid used by every transform
// in this package.
var WGS84 = NewEllipsoid(6378137.0, 298.257223563)

// NewEllipsoid derives an Ellipsoid from its semi-major axis and inverse flattening.
func NewEllipsoid(a, invF float64) Ellipsoid {
	f := 1 / invF
	e2 := f * (2 - f)
	e4 := e2 * e2
	e6 := e4 * e2

	el := Ellipsoid{
		A:   a,
		F:   f,
		B:   a * (1 - f),
		E:   math.Sqrt(e2),
		E2:  e2,
		Ep2: e2 / (1 - e2),

		m0: 1 - e2/4 - 3*e4/64 - 5*e6/256,
		m2: 3*e2/8 + 3*e4/32 + 45*e6/1024,
		m4: 15*e4/256 + 45*e6/1024,
		m6: 35 * e6 / 3072,
	}

	s := math.Sqrt(1 - e2)
	e1 := (1 - s) / (1 + s)
	el.e1 = e1
	el.f2 = 3*e1/2 - 27*e1*e1*e1/32
	el.f4 = 21*e1*e1/16 - 55*e1*e1*e1*e1/32
	el.f6 = 151 * e1 * e1 * e1 / 96
	el.f8 = 1097 * e1 * e1 * e1 * e1 / 512
	return el
}

// MeridianArc returns the meridian arc length in meters from the equator to
// latitude phi (radians).
func (el Ellipsoid) MeridianArc(phi float64) float64 {
	return el.A * (el.m0*phi -
		el.m2*math.Sin(2*phi) +
		el.m4*math.Sin(4*phi) -
		el.m6*math.Sin(6*phi))
}

// footpointLatitude returns the latitude (radians) whose meridian arc equals
// arc meters.
func (el Ellipsoid) footpointLatitude(arc float64) float64 {
	mu := arc / (el.A * el.m0)
	return mu +
		el.f2*math.Sin(2*mu) +
		el.f4*math.Sin(4*mu) +
		el.f6*math.Sin(6*mu) +
		el.f8*math.Sin(8*mu)
}

// primeVerticalRadius returns N, the radius of curvature in the prime vertical.
func (el Ellipsoid) primeVerticalRadius(sinPhi float64) float64 {
	return el.A / math.Sqrt(1-el.E2*sinPhi*sinPhi)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }
