package coord

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors. DomainError and ParseError unwrap to these so callers
// can classify failures with errors.Is.
var (
	ErrDomain = errors.New("value out of domain")
	ErrParse  = errors.New("invalid number")
)

// DomainError reports a numeric input outside the valid range of an operation.
type DomainError struct {
	Op     string  // operation that rejected the input, e.g. "utm forward"
	Field  string  // "latitude", "longitude", "zone", ...
	Value  float64 // offending value
	Min    float64
	Max    float64
	Reason string // optional free-form detail used instead of the range
}

func (e *DomainError) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	if e.Reason != "" {
		fmt.Fprintf(&sb, "%s %v: %s", e.Field, e.Value, e.Reason)
		return sb.String()
	}
	fmt.Fprintf(&sb, "%s %v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
	return sb.String()
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// ParseError reports caller input that could not be read as a number.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: cannot parse %q: %v", e.Field, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: cannot parse %q", e.Field, e.Input)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// ParseFloat parses a decimal number supplied for field. Surrounding spaces
// are ignored. NaN and infinities are rejected.
func ParseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParseError{Field: field, Input: s, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Field: field, Input: s, Err: errors.New("not a finite number")}
	}
	return v, nil
}

// ParseZone parses a UTM zone number. Range checking is left to the transform.
func ParseZone(s string) (int, error) {
	z, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParseError{Field: "zone", Input: s, Err: err}
	}
	return z, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
