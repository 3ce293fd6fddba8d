package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fsevo/geoconv/internal/convert"
	"github.com/fsevo/geoconv/internal/coord"
)

// Record is one input line. Err is set when the line could not be turned
// into a Request; such records are reported but never converted.
type Record struct {
	Line int
	Raw  string
	Req  convert.Request
	Err  error
}

// ReadRecords reads one coordinate pair per line: "a,b" or "a,b,zone,hemisphere".
// Fields may be separated by commas, semicolons, tabs or spaces. Blank lines
// and lines starting with '#' are skipped, as is a leading header line
// in which no field is a number. Direction, projection and default
// zone/hemisphere come from tmpl; per-line zone and hemisphere override them.
func ReadRecords(r io.Reader, tmpl convert.Request) ([]Record, error) {
	var records []Record

	sc := bufio.NewScanner(r)
	lineNo := 0
	seenData := false
	for sc.Scan() {
		lineNo++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		fields := splitFields(raw)
		if !seenData && isHeader(fields) {
			seenData = true
			continue
		}
		seenData = true

		rec := Record{Line: lineNo, Raw: raw}
		rec.Req, rec.Err = parseRequest(fields, tmpl)
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input line %d: %w", lineNo+1, err)
	}
	return records, nil
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\t' || r == ' '
	})
}

// isHeader reports whether no field of the line is a number, so that a
// mistyped first data row is reported instead of skipped.
func isHeader(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if _, err := coord.ParseFloat("header", f); err == nil {
			return false
		}
	}
	return true
}

func parseRequest(fields []string, tmpl convert.Request) (convert.Request, error) {
	req := tmpl
	if len(fields) != 2 && len(fields) != 4 {
		return req, fmt.Errorf("expected 2 or 4 fields, got %d", len(fields))
	}

	names := [2]string{"latitude", "longitude"}
	if tmpl.Direction == convert.Reverse {
		names = [2]string{"x", "y"}
		if tmpl.Kind == convert.UTM {
			names = [2]string{"easting", "northing"}
		}
	}

	var err error
	if req.A, err = coord.ParseFloat(names[0], fields[0]); err != nil {
		return req, err
	}
	if req.B, err = coord.ParseFloat(names[1], fields[1]); err != nil {
		return req, err
	}

	if len(fields) == 4 {
		if req.Zone, err = coord.ParseZone(fields[2]); err != nil {
			return req, err
		}
		if req.Hemisphere, err = coord.ParseHemisphere(fields[3]); err != nil {
			return req, err
		}
	}
	return req, nil
}
