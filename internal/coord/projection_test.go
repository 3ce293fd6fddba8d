package coord

import (
	"errors"
	"math"
	"testing"
)

func TestForEPSG(t *testing.T) {
	tests := []struct {
		epsg     int
		wantNil  bool
		wantEPSG int
	}{
		{4326, false, 4326},
		{3857, false, 3857},
		{900913, false, 3857},
		{32601, false, 32601},
		{32632, false, 32632},
		{32660, false, 32660},
		{32701, false, 32701},
		{32756, false, 32756},
		{32600, true, 0},
		{32661, true, 0},
		{32761, true, 0},
		{2056, true, 0}, // Swiss LV95, unsupported
		{0, true, 0},
	}
	for _, tt := range tests {
		p := ForEPSG(tt.epsg)
		if tt.wantNil {
			if p != nil {
				t.Errorf("ForEPSG(%d) = %v, want nil", tt.epsg, p)
			}
			continue
		}
		if p == nil {
			t.Fatalf("ForEPSG(%d) = nil, want non-nil", tt.epsg)
		}
		if got := p.EPSG(); got != tt.wantEPSG {
			t.Errorf("ForEPSG(%d).EPSG() = %d, want %d", tt.epsg, got, tt.wantEPSG)
		}
	}
}

func TestWGS84Identity(t *testing.T) {
	w := &WGS84Identity{}

	lon, lat := 8.5417, 47.3769 // Zurich
	gotLon, gotLat, err := w.ToWGS84(lon, lat)
	if err != nil || gotLon != lon || gotLat != lat {
		t.Errorf("ToWGS84(%v, %v) = (%v, %v, %v), want (%v, %v)", lon, lat, gotLon, gotLat, err, lon, lat)
	}

	gotLon, gotLat, err = w.FromWGS84(lon, lat)
	if err != nil || gotLon != lon || gotLat != lat {
		t.Errorf("FromWGS84(%v, %v) = (%v, %v, %v), want (%v, %v)", lon, lat, gotLon, gotLat, err, lon, lat)
	}

	if _, _, err := w.FromWGS84(0, 95); !errors.Is(err, ErrDomain) {
		t.Errorf("FromWGS84(0, 95) err = %v, want ErrDomain", err)
	}
}

// TestProjectionRoundTrip verifies that ToWGS84(FromWGS84(lon, lat)) ≈ (lon, lat) for all projections.
func TestProjectionRoundTrip(t *testing.T) {
	points := [][2]float64{
		{8.5417, 47.3769}, // Zurich
		{6.6323, 46.5197}, // Lausanne
		{7.4474, 46.9480}, // Bern
		{9.3767, 47.4245}, // St. Gallen
		{8.9511, 46.0037}, // Lugano
	}

	projections := []Projection{
		&WGS84Identity{},
		&WebMercatorProj{},
		&UTMProj{Zone: 32, Hemisphere: North},
	}

	for _, proj := range projections {
		for _, pt := range points {
			lon, lat := pt[0], pt[1]

			x, y, err := proj.FromWGS84(lon, lat)
			if err != nil {
				t.Fatalf("EPSG:%d FromWGS84(%v, %v): %v", proj.EPSG(), lon, lat, err)
			}
			gotLon, gotLat, err := proj.ToWGS84(x, y)
			if err != nil {
				t.Fatalf("EPSG:%d ToWGS84(%v, %v): %v", proj.EPSG(), x, y, err)
			}

			tol := 1e-6
			if dLon := math.Abs(gotLon - lon); dLon > tol {
				t.Errorf("EPSG:%d roundtrip lon for (%.4f, %.4f): got %.8f (delta=%.2e)",
					proj.EPSG(), lon, lat, gotLon, dLon)
			}
			if dLat := math.Abs(gotLat - lat); dLat > tol {
				t.Errorf("EPSG:%d roundtrip lat for (%.4f, %.4f): got %.8f (delta=%.2e)",
					proj.EPSG(), lon, lat, gotLat, dLat)
			}
		}
	}
}

func TestReproject(t *testing.T) {
	// London from Web Mercator straight into UTM 30N.
	x, y, err := Reproject(ForEPSG(3857), ForEPSG(32630), -14226.630923, 6711542.475588)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-699316.234) > 0.01 || math.Abs(y-5710163.759) > 0.01 {
		t.Errorf("Reproject = (%.3f, %.3f), want (699316.234, 5710163.759)", x, y)
	}

	if _, _, err := Reproject(ForEPSG(4326), ForEPSG(3857), 0, 88); !errors.Is(err, ErrDomain) {
		t.Errorf("Reproject outside the mercator band err = %v, want ErrDomain", err)
	}
}
