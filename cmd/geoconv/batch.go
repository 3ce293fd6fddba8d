package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fsevo/geoconv/internal/batch"
	"github.com/fsevo/geoconv/internal/convert"
	"github.com/fsevo/geoconv/internal/coord"
)

func doBatch(cmd *cobra.Command, args []string) error {
	st := state(cmd)
	flags := cmd.Flags()

	dir, err := flags.GetString("dir")
	if err != nil {
		return err
	}
	proj, err := flags.GetString("proj")
	if err != nil {
		return err
	}
	zone, err := flags.GetInt("zone")
	if err != nil {
		return err
	}
	hemi, err := flags.GetString("hemisphere")
	if err != nil {
		return err
	}
	outPath, err := flags.GetString("output")
	if err != nil {
		return err
	}

	tmpl := convert.Request{Zone: zone}
	if tmpl.Direction, err = convert.ParseDirection(dir); err != nil {
		return err
	}
	if tmpl.Kind, err = convert.ParseKind(proj); err != nil {
		return err
	}
	if err := utmOnlyFlags(cmd, tmpl.Kind, "zone", "hemisphere"); err != nil {
		return err
	}
	if hemi != "" {
		if tmpl.Hemisphere, err = coord.ParseHemisphere(hemi); err != nil {
			return err
		}
	}

	// Flags override the config file.
	formatName := st.cfg.Output.Format
	if flags.Changed("format") {
		formatName, _ = flags.GetString("format")
	}
	format, err := batch.ParseFormat(formatName)
	if err != nil {
		return err
	}
	opts := batch.Options{
		Concurrency: st.cfg.Batch.Concurrency,
		Progress:    st.cfg.Batch.Progress,
		Verbose:     st.cfg.Log.Verbose,
	}
	if flags.Changed("concurrency") {
		opts.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("progress") {
		opts.Progress, _ = flags.GetBool("progress")
	}

	var in io.Reader = cmd.InOrStdin()
	inName := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in, inName = f, args[0]
	}

	records, err := batch.ReadRecords(in, tmpl)
	if err != nil {
		return fmt.Errorf("%s: %w", inName, err)
	}
	if opts.Verbose {
		log.Printf("Input: %s, %d points, %s %s, %d workers", inName, len(records), tmpl.Direction, tmpl.Kind, opts.Concurrency)
	}

	start := time.Now()
	outcomes, stats, err := batch.Run(cmd.Context(), opts, records)
	if err != nil {
		return err
	}

	if outPath == "" {
		err = batch.Write(cmd.OutOrStdout(), format, st.cfg.Formatter(), tmpl, outcomes)
	} else {
		err = writeFile(outPath, func(w io.Writer) error {
			return batch.Write(w, format, st.cfg.Formatter(), tmpl, outcomes)
		})
	}
	if err != nil {
		return err
	}

	if opts.Verbose || stats.Failed > 0 {
		log.Printf("Converted %d of %d points (%d failed) in %v",
			stats.Converted, stats.Total, stats.Failed, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// writeFile creates path and runs write on it. The Close error is returned
// when write succeeded, so a failed final flush is not lost.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output %s: %w", path, cerr)
		}
	}()
	return write(f)
}
