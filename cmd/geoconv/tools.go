package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fsevo/geoconv/internal/coord"
)

func doEPSG(cmd *cobra.Command, args []string) error {
	fromCode, err := cmd.Flags().GetInt("from")
	if err != nil {
		return err
	}
	toCode, err := cmd.Flags().GetInt("to")
	if err != nil {
		return err
	}
	from := coord.ForEPSG(fromCode)
	if from == nil {
		return fmt.Errorf("unsupported source EPSG:%d", fromCode)
	}
	to := coord.ForEPSG(toCode)
	if to == nil {
		return fmt.Errorf("unsupported target EPSG:%d", toCode)
	}

	a, err := coord.ParseFloat("a", args[0])
	if err != nil {
		return err
	}
	b, err := coord.ParseFloat("b", args[1])
	if err != nil {
		return err
	}

	x, y, err := coord.Reproject(from, to, a, b)
	if err != nil {
		return fmt.Errorf("EPSG:%d -> EPSG:%d: %w", fromCode, toCode, err)
	}

	f := state(cmd).cfg.Formatter()
	format := f.Meters
	if to.EPSG() == 4326 {
		format = f.Degrees
	}
	fmt.Fprintf(cmd.OutOrStdout(), "EPSG:%d %s %s\n", to.EPSG(), format(x), format(y))
	return nil
}

func doTile(cmd *cobra.Command, args []string) error {
	zoom, err := cmd.Flags().GetInt("zoom")
	if err != nil {
		return err
	}
	lat, err := coord.ParseFloat("latitude", args[0])
	if err != nil {
		return err
	}
	lon, err := coord.ParseFloat("longitude", args[1])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("resolution") {
		res, _ := cmd.Flags().GetFloat64("resolution")
		if !(res > 0) {
			return fmt.Errorf("--resolution must be positive, got %v", res)
		}
		zoom = coord.ZoomForResolution(res, lat)
	}

	t, err := coord.TileAt(coord.LatLon{Lat: lat, Lon: lon}, zoom)
	if err != nil {
		return err
	}
	f := state(cmd).cfg.Formatter()
	minLon, minLat, maxLon, maxLat := t.Bounds()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tile: %s\n", t)
	fmt.Fprintf(out, "Bounds: %s, %s, %s, %s\n", f.Degrees(minLon), f.Degrees(minLat), f.Degrees(maxLon), f.Degrees(maxLat))
	fmt.Fprintf(out, "Resolution: %s m/px\n", f.Meters(coord.ResolutionAtLat(lat, zoom)))
	return nil
}
