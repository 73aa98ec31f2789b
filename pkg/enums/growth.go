package enums

import "fmt"

// Growth is an optional attribute describing a plant's growth habit.
type Growth string

const (
	GrowthFastGrowing Growth = "Fast Growing"
	GrowthSeasonal    Growth = "Seasonal"
	GrowthPerennial   Growth = "Perennial"
)

var validGrowths = []Growth{
	GrowthFastGrowing,
	GrowthSeasonal,
	GrowthPerennial,
}

// String implements fmt.Stringer.
func (g Growth) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Growth or unset.
func (g Growth) IsValid() bool {
	if g == "" {
		return true
	}
	for _, candidate := range validGrowths {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGrowth converts raw input into a Growth. Empty input is allowed.
func ParseGrowth(value string) (Growth, error) {
	if value == "" {
		return "", nil
	}
	for _, candidate := range validGrowths {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid growth %q", value)
}
