package coord

import (
	"fmt"
	"math"
)

const (
	// DefaultTileSize is the standard web map tile dimension in pixels.
	DefaultTileSize = 256
	// MaxZoom is the deepest zoom level accepted by the tile helpers.
	MaxZoom = 30
)

// Tile addresses a Web Mercator (XYZ / slippy map) tile.
type Tile struct {
	Z, X, Y int
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

func validateZoom(op string, zoom int) error {
	if zoom < 0 || zoom > MaxZoom {
		return &DomainError{Op: op, Field: "zoom", Value: float64(zoom), Min: 0, Max: MaxZoom}
	}
	return nil
}

// TileAt returns the tile containing ll at the given zoom level.
func TileAt(ll LatLon, zoom int) (Tile, error) {
	const op = "tile"
	if err := validateZoom(op, zoom); err != nil {
		return Tile{}, err
	}
	if err := ll.validate(op); err != nil {
		return Tile{}, err
	}
	if math.Abs(ll.Lat) > MaxMercatorLatitude {
		return Tile{}, &DomainError{Op: op, Field: "latitude", Value: ll.Lat,
			Min: -MaxMercatorLatitude, Max: MaxMercatorLatitude}
	}

	n := math.Exp2(float64(zoom))
	x := int(math.Floor((ll.Lon + 180.0) / 360.0 * n))
	latRad := toRadians(ll.Lat)
	y := int(math.Floor((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n))

	// lon = 180 and the band edges land one past the last tile.
	maxTile := int(n) - 1
	x = min(max(x, 0), maxTile)
	y = min(max(y, 0), maxTile)
	return Tile{Z: zoom, X: x, Y: y}, nil
}

// Bounds returns the WGS84 bounding box of the tile.
func (t Tile) Bounds() (minLon, minLat, maxLon, maxLat float64) {
	n := math.Exp2(float64(t.Z))
	minLon = float64(t.X)/n*360.0 - 180.0
	maxLon = float64(t.X+1)/n*360.0 - 180.0
	minLat = toDegrees(math.Atan(math.Sinh(math.Pi * (1.0 - 2.0*float64(t.Y+1)/n))))
	maxLat = toDegrees(math.Atan(math.Sinh(math.Pi * (1.0 - 2.0*float64(t.Y)/n))))
	return
}

// ResolutionAtLat returns the ground resolution in meters/pixel at the given
// latitude and zoom level for DefaultTileSize tiles.
func ResolutionAtLat(lat float64, zoom int) float64 {
	return EarthCircumference * math.Cos(toRadians(lat)) / math.Exp2(float64(zoom)) / float64(DefaultTileSize)
}

// ZoomForResolution returns the deepest zoom level whose ground resolution at
// lat is still at least meters per pixel. Non-positive input yields 0.
func ZoomForResolution(meters, lat float64) int {
	if !(meters > 0) {
		return 0
	}
	for z := MaxZoom; z >= 0; z-- {
		if ResolutionAtLat(lat, z) >= meters {
			return z
		}
	}
	return 0
}
