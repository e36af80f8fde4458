package style

import (
	"strconv"
	"strings"
)

// Outcome tells how a Measure was produced.
type Outcome int

const (
	// Parsed means the magnitude and unit were both understood.
	Parsed Outcome = iota
	// Missing means the raw value was blank.
	Missing
	// MalformedNumber means the numeric token did not parse.
	MalformedNumber
	// UnknownUnit means the unit token was absent or not supported.
	UnknownUnit
)

func (o Outcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case Missing:
		return "missing"
	case MalformedNumber:
		return "malformed_number"
	case UnknownUnit:
		return "unknown_unit"
	default:
		return "unknown"
	}
}

// Measure is a size in points together with how it was obtained.
type Measure struct {
	Points  float64
	Outcome Outcome
}

// Defaulted reports whether the caller-supplied default was used.
func (m Measure) Defaulted() bool { return m.Outcome != Parsed }

// PointsPerUnit maps the supported units to their point conversion factor.
var PointsPerUnit = map[string]float64{
	"px": 0.75,
	"pt": 1,
	"in": 72,
	"mm": 2.83465,
}

// ParseSize converts a size such as "11px" or "0.5in" into points. Digits and
// '.' anywhere in raw form the number; every other character forms the unit.
// It never fails: a bad number or an unknown unit yields def (in points).
func ParseSize(raw string, def float64) Measure {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Measure{Points: def, Outcome: Missing}
	}

	var number, unit strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			number.WriteRune(r)
			continue
		}
		unit.WriteRune(r)
	}

	magnitude, err := strconv.ParseFloat(number.String(), 64)
	if err != nil {
		return Measure{Points: def, Outcome: MalformedNumber}
	}
	factor, ok := PointsPerUnit[strings.ToLower(unit.String())]
	if !ok {
		return Measure{Points: def, Outcome: UnknownUnit}
	}
	return Measure{Points: magnitude * factor, Outcome: Parsed}
}
