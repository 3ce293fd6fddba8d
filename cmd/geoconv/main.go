package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/fsevo/geoconv/internal/config"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cobra.CheckErr(NewCmd().ExecuteContext(ctx))
}

func NewCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "geoconv [command] [flags] [args]",
		Short:         "geoconv converts coordinates between WGS84, Web Mercator and UTM",
		Long:          "geoconv converts coordinates between WGS84, Web Mercator and UTM.\n\nNegative numbers must follow \"--\", e.g. geoconv fwd -- 51.5074 -0.1278",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.SetVersionTemplate("geoconv {{.Version}}\n")
	rootCmd.PersistentFlags().StringP("config", "c", "", "`<File>` YAML config (default $GEOCONV_CONFIG or ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose log output")

	fwdCmd := &cobra.Command{
		Use:   "fwd [flags] [--] <lat> <lon>",
		Short: "Convert WGS84 latitude/longitude to Web Mercator or UTM",
		Args:  cobra.ExactArgs(2),
		RunE:  doForward,
	}
	fwdCmd.Flags().StringP("to", "t", "utm", "`<Projection>` mercator or utm")
	fwdCmd.Flags().IntP("zone", "z", 0, "`<Zone>` force a UTM zone (default: zone of the point)")
	fwdCmd.Flags().Bool("geojson", false, "Print the result as a GeoJSON feature")

	invCmd := &cobra.Command{
		Use:   "inv [flags] [--] <x|easting> <y|northing>",
		Short: "Convert Web Mercator or UTM coordinates to WGS84",
		Args:  cobra.ExactArgs(2),
		RunE:  doInverse,
	}
	invCmd.Flags().StringP("from", "f", "utm", "`<Projection>` mercator or utm")
	invCmd.Flags().IntP("zone", "z", 0, "`<Zone>` UTM zone 1-60 (required for utm)")
	invCmd.Flags().String("hemisphere", "", "`<N|S>` UTM hemisphere (required for utm)")
	invCmd.Flags().Bool("geojson", false, "Print the result as a GeoJSON feature")

	verifyCmd := &cobra.Command{
		Use:   "verify [flags] [--] <a> <b>",
		Short: "Convert and compare against an independent implementation",
		Args:  cobra.ExactArgs(2),
		RunE:  doVerify,
	}
	verifyCmd.Flags().StringP("to", "t", "", "`<Projection>` forward conversion to mercator or utm")
	verifyCmd.Flags().StringP("from", "f", "", "`<Projection>` inverse conversion from mercator or utm")
	verifyCmd.Flags().IntP("zone", "z", 0, "`<Zone>` UTM zone")
	verifyCmd.Flags().String("hemisphere", "", "`<N|S>` UTM hemisphere (inverse only)")
	verifyCmd.MarkFlagsMutuallyExclusive("to", "from")
	verifyCmd.MarkFlagsOneRequired("to", "from")

	batchCmd := &cobra.Command{
		Use:   "batch [flags] [file|-]",
		Short: "Convert one coordinate pair per line from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  doBatch,
	}
	batchCmd.Flags().StringP("dir", "d", "fwd", "`<Direction>` fwd or inv")
	batchCmd.Flags().StringP("proj", "p", "utm", "`<Projection>` mercator or utm")
	batchCmd.Flags().IntP("zone", "z", 0, "`<Zone>` default UTM zone (forced zone for fwd)")
	batchCmd.Flags().String("hemisphere", "", "`<N|S>` default UTM hemisphere for inv")
	batchCmd.Flags().String("format", "", "`<Format>` table, csv or geojson (default from config)")
	batchCmd.Flags().IntP("concurrency", "j", 0, "`<N>` parallel workers (default from config)")
	batchCmd.Flags().Bool("progress", false, "Show a progress bar on stderr")
	batchCmd.Flags().StringP("output", "o", "", "`<File>` write results to a file instead of stdout")

	epsgCmd := &cobra.Command{
		Use:   "epsg [flags] [--] <a> <b>",
		Short: "Reproject between EPSG codes (4326, 3857, 326xx, 327xx)",
		Long:  "Reproject between EPSG codes. EPSG:4326 coordinates are given as <lon> <lat>.",
		Args:  cobra.ExactArgs(2),
		RunE:  doEPSG,
	}
	epsgCmd.Flags().Int("from", 4326, "`<Code>` source EPSG code")
	epsgCmd.Flags().Int("to", 3857, "`<Code>` target EPSG code")

	tileCmd := &cobra.Command{
		Use:   "tile [flags] [--] <lat> <lon>",
		Short: "Show the Web Mercator tile containing a point",
		Args:  cobra.ExactArgs(2),
		RunE:  doTile,
	}
	tileCmd.Flags().IntP("zoom", "Z", 10, "`<Zoom>` zoom level 0-30")
	tileCmd.Flags().Float64("resolution", 0, "`<Meters>` pick the deepest zoom with at least this ground resolution per pixel")

	rootCmd.AddCommand(
		fwdCmd,
		invCmd,
		batchCmd,
		epsgCmd,
		tileCmd,
		verifyCmd,
	)
	return rootCmd
}

type ctxKey struct{}

type runState struct {
	cfg    config.Config
	closer interface{ Close() error }
}

func setup(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Verbose = true
	}

	st := &runState{cfg: cfg, closer: config.SetupLogging(cfg.Log)}
	if cfg.Log.Verbose && cfg.Path != "" {
		log.Printf("Config: %s", cfg.Path)
	}
	cmd.SetContext(context.WithValue(cmd.Context(), ctxKey{}, st))
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if st := state(cmd); st.closer != nil {
		return st.closer.Close()
	}
	return nil
}

func state(cmd *cobra.Command) *runState {
	if cmd.Context() != nil {
		if st, ok := cmd.Context().Value(ctxKey{}).(*runState); ok {
			return st
		}
	}
	return &runState{cfg: config.Default()}
}
