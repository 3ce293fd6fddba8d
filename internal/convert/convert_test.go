package convert

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsevo/geoconv/internal/coord"
)

func TestConvert_Dispatch(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantA     float64 // x / easting / lat
		wantB     float64 // y / northing / lon
		tol       float64
		wantZone  int
		wantHemi  coord.Hemisphere
		wantUnits string
	}{
		{
			name:      "forward mercator",
			req:       Request{Direction: Forward, Kind: WebMercator, A: 51.5074, B: -0.1278},
			wantA:     -14226.631,
			wantB:     6711542.476,
			tol:       1e-3,
			wantUnits: "m",
		},
		{
			name:      "forward utm",
			req:       Request{Direction: Forward, Kind: UTM, A: 51.5074, B: -0.1278},
			wantA:     699316.234,
			wantB:     5710163.759,
			tol:       1e-2,
			wantZone:  30,
			wantHemi:  coord.North,
			wantUnits: "m",
		},
		{
			name:      "reverse mercator",
			req:       Request{Direction: Reverse, Kind: WebMercator, A: -14226.630923, B: 6711542.475588},
			wantA:     51.5074,
			wantB:     -0.1278,
			tol:       1e-6,
			wantUnits: "deg",
		},
		{
			name:      "reverse utm",
			req:       Request{Direction: Reverse, Kind: UTM, A: 334368.634, B: 6250948.345, Zone: 56, Hemisphere: coord.South},
			wantA:     -33.8688,
			wantB:     151.2093,
			tol:       1e-6,
			wantZone:  56,
			wantHemi:  coord.South,
			wantUnits: "deg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Convert(tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.wantUnits, r.Units)
			require.Equal(t, tt.wantZone, r.Zone)
			require.Equal(t, tt.wantHemi, r.Hemisphere)
			require.Empty(t, r.Warnings)

			a, b := r.Projected.X, r.Projected.Y
			if tt.req.Direction == Reverse {
				a, b = r.Geographic.Lat, r.Geographic.Lon
			}
			require.InDelta(t, tt.wantA, a, tt.tol)
			require.InDelta(t, tt.wantB, b, tt.tol)
		})
	}
}

func TestConvert_ForcedZone(t *testing.T) {
	r, err := Convert(Request{Direction: Forward, Kind: UTM, A: 60, B: 5, Zone: 32})
	require.NoError(t, err)
	require.Equal(t, 32, r.Zone)
	require.Equal(t, 32632, r.EPSG())
	require.InDelta(t, 276979.926, r.Projected.X, 1e-2)
	// 4° west of the zone 32 central meridian.
	require.Len(t, r.Warnings, 1)
	require.Contains(t, r.Warnings[0], "central meridian")
}

func TestConvert_Warnings(t *testing.T) {
	r, err := Convert(Request{Direction: Forward, Kind: UTM, A: 86, B: 10})
	require.NoError(t, err)
	require.Len(t, r.Warnings, 1)
	require.Contains(t, r.Warnings[0], "UTM band")

	// Across the antimeridian a zone 60 point is still within its strip.
	r, err = Convert(Request{Direction: Forward, Kind: UTM, A: 10, B: 179.5})
	require.NoError(t, err)
	require.Equal(t, 60, r.Zone)
	require.Empty(t, r.Warnings)
}

func TestConvert_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"mercator above band", Request{Direction: Forward, Kind: WebMercator, A: 86, B: 0}},
		{"utm lat 91", Request{Direction: Forward, Kind: UTM, A: 91, B: 0}},
		{"utm lon -181", Request{Direction: Forward, Kind: UTM, A: 0, B: -181}},
		{"forced zone 61", Request{Direction: Forward, Kind: UTM, A: 0, B: 0, Zone: 61}},
		{"reverse utm without zone", Request{Direction: Reverse, Kind: UTM, A: 500000, B: 0, Hemisphere: coord.North}},
		{"reverse utm without hemisphere", Request{Direction: Reverse, Kind: UTM, A: 500000, B: 0, Zone: 31}},
		{"reverse mercator nan", Request{Direction: Reverse, Kind: WebMercator, A: math.NaN(), B: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Convert(tt.req)
			require.ErrorIs(t, err, coord.ErrDomain)
			require.Equal(t, Result{}, r)

			var de *coord.DomainError
			require.True(t, errors.As(err, &de))
		})
	}

	_, err := Convert(Request{Direction: Forward, Kind: Kind(7)})
	require.Error(t, err)
	require.NotErrorIs(t, err, coord.ErrDomain)
}

func TestNamedOperations(t *testing.T) {
	p, err := WGS84ToWebMercator(0, 0)
	require.NoError(t, err)
	require.InDelta(t, 0, p.X, 1e-9)
	require.InDelta(t, 0, p.Y, 1e-9)

	_, err = WGS84ToWebMercator(86, 0)
	require.ErrorIs(t, err, coord.ErrDomain)

	ll, err := WebMercatorToWGS84(p.X, p.Y)
	require.NoError(t, err)
	require.InDelta(t, 0, ll.Lat, 1e-12)

	for lon, zone := range map[float64]int{-179.9: 1, 179.9: 60, 3: 31} {
		u, err := WGS84ToUTM(0, lon)
		require.NoError(t, err)
		require.Equal(t, zone, u.Zone, "lon %v", lon)
	}

	south, err := WGS84ToUTM(-10, 20)
	require.NoError(t, err)
	require.Equal(t, coord.South, south.Hemisphere)
	north, err := WGS84ToUTM(10, 20)
	require.NoError(t, err)
	require.Equal(t, coord.North, north.Hemisphere)
	require.Less(t, north.Northing, coord.UTMFalseNorthing)
	require.InDelta(t, coord.UTMFalseNorthing, south.Northing+north.Northing, 1e-6)

	_, err = WGS84ToUTM(91, 0)
	require.ErrorIs(t, err, coord.ErrDomain)

	london, err := WGS84ToUTM(51.5074, -0.1278)
	require.NoError(t, err)
	require.Equal(t, "30N", london.ZoneLabel())
	require.InDelta(t, 699316.2, london.Easting, 1)
	require.InDelta(t, 5710163.8, london.Northing, 1)

	back, err := UTMToWGS84(london.Easting, london.Northing, london.Zone, london.Hemisphere)
	require.NoError(t, err)
	require.InDelta(t, 51.5074, back.Lat, 1e-5)
	require.InDelta(t, -0.1278, back.Lon, 1e-5)
}

func TestWebMercator_RoundTripAtAntimeridian(t *testing.T) {
	for _, lat := range []float64{0, 45, -60, 85} {
		for _, lon := range []float64{-180, -179.999999, 179.999999, 180} {
			p, err := WGS84ToWebMercator(lat, lon)
			require.NoError(t, err)
			ll, err := WebMercatorToWGS84(p.X, p.Y)
			require.NoError(t, err)
			require.InDelta(t, lat, ll.Lat, 1e-6, "lat %v lon %v", lat, lon)
			require.InDelta(t, lon, ll.Lon, 1e-6, "lat %v lon %v", lat, lon)
		}
	}
}

func TestConvert_ConcurrentCallsAgree(t *testing.T) {
	want, err := Convert(Request{Direction: Forward, Kind: UTM, A: 47.3769, B: 8.5417})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Convert(Request{Direction: Forward, Kind: UTM, A: 47.3769, B: 8.5417})
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, want, r)
	}
}

func TestParseDirectionAndKind(t *testing.T) {
	for in, want := range map[string]Direction{"forward": Forward, "FWD": Forward, "reverse": Reverse, "inverse": Reverse, "inv": Reverse} {
		d, err := ParseDirection(in)
		require.NoError(t, err)
		require.Equal(t, want, d, in)
	}
	_, err := ParseDirection("sideways")
	require.Error(t, err)

	for in, want := range map[string]Kind{"mercator": WebMercator, "WebMercator": WebMercator, "3857": WebMercator, "UTM": UTM} {
		k, err := ParseKind(in)
		require.NoError(t, err)
		require.Equal(t, want, k, in)
	}
	_, err = ParseKind("lambert")
	require.Error(t, err)

	require.Equal(t, "forward", Forward.String())
	require.Equal(t, "utm", UTM.String())
}
