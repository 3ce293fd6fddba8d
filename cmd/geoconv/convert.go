package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/fsevo/geoconv/internal/convert"
	"github.com/fsevo/geoconv/internal/coord"
)

func doForward(cmd *cobra.Command, args []string) error {
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	req, err := forwardRequest(cmd, to, args)
	if err != nil {
		return err
	}
	return convertAndPrint(cmd, req)
}

func doInverse(cmd *cobra.Command, args []string) error {
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}
	req, err := inverseRequest(cmd, from, args)
	if err != nil {
		return err
	}
	return convertAndPrint(cmd, req)
}

func doVerify(cmd *cobra.Command, args []string) error {
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}

	var req convert.Request
	if to != "" {
		req, err = forwardRequest(cmd, to, args)
	} else {
		req, err = inverseRequest(cmd, from, args)
	}
	if err != nil {
		return err
	}

	res, err := convert.Convert(req)
	if err != nil {
		return err
	}
	dev, err := convert.Verify(res)
	if err != nil {
		return err
	}

	f := state(cmd).cfg.Formatter()
	refFmt := f.Meters
	if req.Direction == convert.Reverse {
		refFmt = f.Degrees
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, f.Format(res))
	fmt.Fprintf(out, "Reference: %s, %s\n", refFmt(dev.Reference[0]), refFmt(dev.Reference[1]))
	fmt.Fprintf(out, "Deviation: %s m\n", f.Meters(dev.Meters))
	return nil
}

func forwardRequest(cmd *cobra.Command, to string, args []string) (convert.Request, error) {
	kind, err := convert.ParseKind(to)
	if err != nil {
		return convert.Request{}, err
	}
	if err := utmOnlyFlags(cmd, kind, "zone"); err != nil {
		return convert.Request{}, err
	}
	zone, err := cmd.Flags().GetInt("zone")
	if err != nil {
		return convert.Request{}, err
	}
	lat, err := coord.ParseFloat("latitude", args[0])
	if err != nil {
		return convert.Request{}, err
	}
	lon, err := coord.ParseFloat("longitude", args[1])
	if err != nil {
		return convert.Request{}, err
	}
	return convert.Request{Direction: convert.Forward, Kind: kind, A: lat, B: lon, Zone: zone}, nil
}

func inverseRequest(cmd *cobra.Command, from string, args []string) (convert.Request, error) {
	kind, err := convert.ParseKind(from)
	if err != nil {
		return convert.Request{}, err
	}
	if err := utmOnlyFlags(cmd, kind, "zone", "hemisphere"); err != nil {
		return convert.Request{}, err
	}
	req := convert.Request{Direction: convert.Reverse, Kind: kind}

	names := [2]string{"x", "y"}
	if kind == convert.UTM {
		names = [2]string{"easting", "northing"}
		if req.Zone, err = cmd.Flags().GetInt("zone"); err != nil {
			return req, err
		}
		h, err := cmd.Flags().GetString("hemisphere")
		if err != nil {
			return req, err
		}
		if h == "" {
			return req, fmt.Errorf("--hemisphere is required for utm")
		}
		if req.Hemisphere, err = coord.ParseHemisphere(h); err != nil {
			return req, err
		}
	}

	if req.A, err = coord.ParseFloat(names[0], args[0]); err != nil {
		return req, err
	}
	if req.B, err = coord.ParseFloat(names[1], args[1]); err != nil {
		return req, err
	}
	return req, nil
}

// utmOnlyFlags rejects UTM parameters given for another projection.
func utmOnlyFlags(cmd *cobra.Command, kind convert.Kind, names ...string) error {
	if kind == convert.UTM {
		return nil
	}
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return fmt.Errorf("--%s only applies to utm, not %s", name, kind)
		}
	}
	return nil
}

func convertAndPrint(cmd *cobra.Command, req convert.Request) error {
	st := state(cmd)
	res, err := convert.Convert(req)
	if err != nil {
		return err
	}
	if st.cfg.Log.Verbose {
		log.Printf("%s %s (%v, %v) -> EPSG:%d", req.Direction, req.Kind, req.A, req.B, res.EPSG())
	}
	for _, w := range res.Warnings {
		cmd.PrintErrln("warning:", w)
	}

	asJSON, err := cmd.Flags().GetBool("geojson")
	if err != nil {
		return err
	}
	if asJSON {
		data, err := json.Marshal(convert.Feature(res))
		if err != nil {
			return fmt.Errorf("encoding geojson: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), st.cfg.Formatter().Format(res))
	fmt.Fprintln(cmd.OutOrStdout(), convert.Note(res))
	return nil
}
