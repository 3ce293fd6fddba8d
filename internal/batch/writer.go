package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/paulmach/orb/geojson"

	"github.com/fsevo/geoconv/internal/convert"
)

// Format selects the output encoding of a batch.
type Format int

const (
	Table Format = iota
	CSV
	GeoJSON
)

func (f Format) String() string {
	switch f {
	case Table:
		return "table"
	case CSV:
		return "csv"
	case GeoJSON:
		return "geojson"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts table, csv and geojson (or json).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return Table, nil
	case "csv":
		return CSV, nil
	case "geojson", "json":
		return GeoJSON, nil
	}
	return 0, fmt.Errorf("unknown output format %q (want table, csv or geojson)", s)
}

// Write encodes outcomes to w. tmpl supplies the direction and projection
// used for the column headings.
func Write(w io.Writer, format Format, f convert.Formatter, tmpl convert.Request, outcomes []Outcome) error {
	switch format {
	case Table:
		return writeTable(w, f, tmpl, outcomes)
	case CSV:
		return writeCSV(w, f, tmpl, outcomes)
	case GeoJSON:
		return writeGeoJSON(w, outcomes)
	}
	return fmt.Errorf("unsupported output format %v", format)
}

func header(tmpl convert.Request) []string {
	geo := []string{"latitude", "longitude"}
	proj := []string{"x", "y"}
	if tmpl.Kind == convert.UTM {
		proj = []string{"easting", "northing"}
	}
	in, out := geo, proj
	if tmpl.Direction == convert.Reverse {
		in, out = proj, geo
	}
	h := []string{"line"}
	h = append(h, in...)
	h = append(h, out...)
	if tmpl.Kind == convert.UTM {
		h = append(h, "zone")
	}
	return append(h, "error")
}

// row renders one outcome as strings matching header(tmpl).
func row(f convert.Formatter, tmpl convert.Request, o Outcome) []string {
	inFmt, outFmt := f.Degrees, f.Meters
	if tmpl.Direction == convert.Reverse {
		inFmt, outFmt = f.Meters, f.Degrees
	}

	r := []string{strconv.Itoa(o.Record.Line), "", "", "", ""}
	if o.Record.Err == nil {
		r[1], r[2] = inFmt(o.Record.Req.A), inFmt(o.Record.Req.B)
	} else {
		r[1] = o.Record.Raw
	}

	zone := ""
	if o.Err == nil {
		res := o.Result
		if tmpl.Direction == convert.Reverse {
			r[3], r[4] = outFmt(res.Geographic.Lat), outFmt(res.Geographic.Lon)
		} else {
			r[3], r[4] = outFmt(res.Projected.X), outFmt(res.Projected.Y)
		}
		if tmpl.Kind == convert.UTM {
			zone = res.UTM().ZoneLabel()
		}
	}
	if tmpl.Kind == convert.UTM {
		r = append(r, zone)
	}

	msg := ""
	if o.Err != nil {
		msg = o.Err.Error()
	}
	return append(r, msg)
}

func writeTable(w io.Writer, f convert.Formatter, tmpl convert.Request, outcomes []Outcome) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(toRow(header(tmpl)))
	for _, o := range outcomes {
		t.AppendRow(toRow(row(f, tmpl, o)))
	}
	t.Render()
	return nil
}

func toRow(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}

func writeCSV(w io.Writer, f convert.Formatter, tmpl convert.Request, outcomes []Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(tmpl)); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, o := range outcomes {
		if err := cw.Write(row(f, tmpl, o)); err != nil {
			return fmt.Errorf("writing csv line %d: %w", o.Record.Line, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeGeoJSON writes the successful outcomes as a FeatureCollection.
func writeGeoJSON(w io.Writer, outcomes []Outcome) error {
	fc := geojson.NewFeatureCollection()
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		feat := convert.Feature(o.Result)
		feat.Properties["line"] = o.Record.Line
		fc.Append(feat)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing geojson: %w", err)
	}
	return nil
}
