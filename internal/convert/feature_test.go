package convert

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestFeature(t *testing.T) {
	r, err := Convert(Request{Direction: Forward, Kind: UTM, A: -33.8688, B: 151.2093})
	require.NoError(t, err)

	f := Feature(r)
	require.Equal(t, orb.Point{151.2093, -33.8688}, f.Geometry)
	require.Equal(t, 56, f.Properties["zone"])
	require.Equal(t, "S", f.Properties["hemisphere"])
	require.Equal(t, 32756, f.Properties["epsg"])
	require.Equal(t, "forward", f.Properties["direction"])
	require.NotContains(t, f.Properties, "warnings")

	data, err := json.Marshal(f)
	require.NoError(t, err)
	require.Contains(t, string(data), `"type":"Point"`)
	require.Contains(t, string(data), `"projection":"utm"`)
}

func TestFeature_Mercator(t *testing.T) {
	r, err := Convert(Request{Direction: Reverse, Kind: WebMercator, A: 0, B: 0})
	require.NoError(t, err)

	f := Feature(r)
	require.Equal(t, orb.Point{0, 0}, f.Geometry)
	require.Equal(t, 3857, f.Properties["epsg"])
	require.Contains(t, f.Properties, "x")
	require.NotContains(t, f.Properties, "zone")
}
