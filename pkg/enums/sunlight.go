package enums

import "fmt"

// Sunlight is an optional attribute describing the light a plant needs.
type Sunlight string

const (
	SunlightFullSun      Sunlight = "Full Sun"
	SunlightPartialShade Sunlight = "Partial Shade"
	SunlightLowLight     Sunlight = "Low Light"
)

var validSunlights = []Sunlight{
	SunlightFullSun,
	SunlightPartialShade,
	SunlightLowLight,
}

// String implements fmt.Stringer.
func (s Sunlight) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Sunlight or unset.
func (s Sunlight) IsValid() bool {
	if s == "" {
		return true
	}
	for _, candidate := range validSunlights {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSunlight converts raw input into a Sunlight. Empty input is allowed.
func ParseSunlight(value string) (Sunlight, error) {
	if value == "" {
		return "", nil
	}
	for _, candidate := range validSunlights {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sunlight %q", value)
}
