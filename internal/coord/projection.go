package coord

// Projection defines the interface for converting between a CRS and WGS84.
type Projection interface {
	// ToWGS84 converts CRS coordinates to WGS84 longitude/latitude (degrees).
	ToWGS84(x, y float64) (lon, lat float64, err error)

	// FromWGS84 converts WGS84 longitude/latitude (degrees) to CRS coordinates.
	FromWGS84(lon, lat float64) (x, y float64, err error)

	// EPSG returns the EPSG code for this projection.
	EPSG() int
}

// ForEPSG returns a Projection for the given EPSG code.
// Returns nil if the EPSG code is not supported.
func ForEPSG(epsg int) Projection {
	switch {
	case epsg == 4326:
		return &WGS84Identity{}
	case epsg == 3857, epsg == 900913:
		return &WebMercatorProj{}
	case epsg > 32600 && epsg <= 32600+MaxUTMZone:
		return &UTMProj{Zone: epsg - 32600, Hemisphere: North}
	case epsg > 32700 && epsg <= 32700+MaxUTMZone:
		return &UTMProj{Zone: epsg - 32700, Hemisphere: South}
	default:
		return nil
	}
}

// Reproject converts (a, b) from one projection to another through WGS84.
func Reproject(from, to Projection, a, b float64) (x, y float64, err error) {
	lon, lat, err := from.ToWGS84(a, b)
	if err != nil {
		return 0, 0, err
	}
	return to.FromWGS84(lon, lat)
}

// WGS84Identity is a pass-through projection for data already in EPSG:4326.
// It still rejects positions outside the geographic range.
type WGS84Identity struct{}

func (w *WGS84Identity) ToWGS84(x, y float64) (lon, lat float64, err error) {
	if err := (LatLon{Lat: y, Lon: x}).validate("EPSG:4326"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (w *WGS84Identity) FromWGS84(lon, lat float64) (x, y float64, err error) {
	return w.ToWGS84(lon, lat)
}

func (w *WGS84Identity) EPSG() int { return 4326 }
