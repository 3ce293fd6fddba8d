package convert

import (
	"strconv"
	"strings"
)

// Formatter renders results with a fixed number of decimals.
type Formatter struct {
	MeterDigits  int
	DegreeDigits int
}

// DefaultFormatter uses millimeters for projected values and 6 decimals
// (about 0.1 m) for degrees.
var DefaultFormatter = Formatter{MeterDigits: 3, DegreeDigits: 6}

// Field is one labelled output value.
type Field struct {
	Label string
	Value string
}

// Meters formats v with the meter precision, without unit.
func (f Formatter) Meters(v float64) string {
	return strconv.FormatFloat(v, 'f', f.MeterDigits, 64)
}

// Degrees formats v with the degree precision, without unit.
func (f Formatter) Degrees(v float64) string {
	return strconv.FormatFloat(v, 'f', f.DegreeDigits, 64)
}

// Fields returns the output side of r as labelled strings.
func (f Formatter) Fields(r Result) []Field {
	if r.Request.Direction == Reverse {
		return []Field{
			{"Latitude", f.Degrees(r.Geographic.Lat)},
			{"Longitude", f.Degrees(r.Geographic.Lon)},
		}
	}
	if r.Request.Kind == UTM {
		return []Field{
			{"Easting", f.Meters(r.Projected.X) + " m"},
			{"Northing", f.Meters(r.Projected.Y) + " m"},
			{"Zone", r.UTM().ZoneLabel()},
		}
	}
	return []Field{
		{"X", f.Meters(r.Projected.X) + " m"},
		{"Y", f.Meters(r.Projected.Y) + " m"},
	}
}

// Format renders r on one line, e.g. "Easting: 699316.234 m, Northing: 5710163.759 m, Zone: 30N".
func (f Formatter) Format(r Result) string {
	fields := f.Fields(r)
	parts := make([]string, len(fields))
	for i, fl := range fields {
		parts[i] = fl.Label + ": " + fl.Value
	}
	return strings.Join(parts, ", ")
}

// Note describes the projection used, for display next to the values.
func Note(r Result) string {
	if r.Request.Kind == UTM {
		return "UTM projection (WGS84), EPSG:" + strconv.Itoa(r.EPSG()) + "."
	}
	return "Web Mercator projection (EPSG:3857)."
}
