package coord

import "math"

const (
	// EarthCircumference is the equatorial circumference of the WGS84 ellipsoid in meters.
	EarthCircumference = 2 * math.Pi * 6378137.0
	// OriginShift is half the circumference: the largest |x| in Web Mercator.
	OriginShift = EarthCircumference / 2.0

	// MaxMercatorLatitude is the latitude at which the square Web Mercator
	// world ends (y = ±OriginShift), atan(sinh(π)) in degrees.
	MaxMercatorLatitude = 85.0511287798066

	// Beyond this |y/R| math.Exp overflows.
	maxMercatorExp = 709.0

	// Longitudes this close past ±180 are rounding noise and are clamped
	// rather than wrapped to the other side.
	lonEpsilon = 1e-9
)

// WebMercatorForward projects a WGS84 position onto EPSG:3857 using the
// spherical Mercator formulas with R equal to the WGS84 semi-major axis.
func WebMercatorForward(ll LatLon) (XY, error) {
	const op = "web mercator forward"
	if err := ll.validate(op); err != nil {
		return XY{}, err
	}
	if math.Abs(ll.Lat) > MaxMercatorLatitude {
		return XY{}, &DomainError{Op: op, Field: "latitude", Value: ll.Lat,
			Min: -MaxMercatorLatitude, Max: MaxMercatorLatitude}
	}

	r := WGS84.A
	x := ll.Lon * OriginShift / 180.0
	y := r * math.Log(math.Tan(math.Pi/4+toRadians(ll.Lat)/2))
	return XY{X: x, Y: y}, nil
}

// WebMercatorInverse unprojects an EPSG:3857 position. Longitudes past the
// antimeridian are wrapped into [-180, 180].
func WebMercatorInverse(p XY) (LatLon, error) {
	const op = "web mercator inverse"
	if !isFinite(p.X) {
		return LatLon{}, &DomainError{Op: op, Field: "x", Value: p.X, Reason: "not finite"}
	}
	if !isFinite(p.Y) {
		return LatLon{}, &DomainError{Op: op, Field: "y", Value: p.Y, Reason: "not finite"}
	}

	r := WGS84.A
	if math.Abs(p.Y/r) > maxMercatorExp {
		return LatLon{}, &DomainError{Op: op, Field: "y", Value: p.Y,
			Min: -maxMercatorExp * r, Max: maxMercatorExp * r}
	}

	lon := p.X / OriginShift * 180.0
	lat := toDegrees(2*math.Atan(math.Exp(p.Y/r)) - math.Pi/2)
	return LatLon{Lat: lat, Lon: wrapLongitude(lon)}, nil
}

// wrapLongitude folds lon into [-180, 180], leaving values already inside
// untouched. The antimeridian keeps its sign.
func wrapLongitude(lon float64) float64 {
	if math.Abs(lon) <= 180+lonEpsilon {
		return min(max(lon, -180), 180)
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// WebMercatorProj implements the Projection interface for EPSG:3857.
type WebMercatorProj struct{}

func (w *WebMercatorProj) EPSG() int { return 3857 }

func (w *WebMercatorProj) ToWGS84(x, y float64) (lon, lat float64, err error) {
	ll, err := WebMercatorInverse(XY{X: x, Y: y})
	if err != nil {
		return 0, 0, err
	}
	return ll.Lon, ll.Lat, nil
}

func (w *WebMercatorProj) FromWGS84(lon, lat float64) (x, y float64, err error) {
	p, err := WebMercatorForward(LatLon{Lat: lat, Lon: lon})
	if err != nil {
		return 0, 0, err
	}
	return p.X, p.Y, nil
}
