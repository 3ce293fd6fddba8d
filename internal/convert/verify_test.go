package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The reference library's transverse Mercator is less accurate than ours,
// so UTM agreement is looser than the engine's own accuracy, and looser still
// on the inverse side.
var referenceTolerance = map[Kind]map[Direction]float64{
	WebMercator: {Forward: 0.05, Reverse: 0.05},
	UTM:         {Forward: 0.2, Reverse: 10},
}

func TestVerify_AgreesWithReference(t *testing.T) {
	points := [][2]float64{
		{51.5074, -0.1278},   // London
		{-33.8688, 151.2093}, // Sydney
		{47.3769, 8.5417},    // Zurich
		{0.5, 3.5},
		{-45, -70},
		{70, 25},
	}

	for _, kind := range []Kind{WebMercator, UTM} {
		for _, pt := range points {
			fwd, err := Convert(Request{Direction: Forward, Kind: kind, A: pt[0], B: pt[1]})
			require.NoError(t, err)

			dev, err := Verify(fwd)
			require.NoError(t, err)
			require.Less(t, dev.Meters, referenceTolerance[kind][Forward], "%s forward %v: reference %v", kind, pt, dev.Reference)

			rev, err := Convert(Request{
				Direction:  Reverse,
				Kind:       kind,
				A:          fwd.Projected.X,
				B:          fwd.Projected.Y,
				Zone:       fwd.Zone,
				Hemisphere: fwd.Hemisphere,
			})
			require.NoError(t, err)

			dev, err = Verify(rev)
			require.NoError(t, err)
			require.Less(t, dev.Meters, referenceTolerance[kind][Reverse], "%s reverse %v: reference %v", kind, pt, dev.Reference)
		}
	}
}
