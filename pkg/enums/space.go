package enums

import "fmt"

// Space is an optional attribute describing where a plant can be grown.
type Space string

const (
	SpaceBalcony         Space = "Balcony"
	SpaceBackyard        Space = "Backyard"
	SpaceApartment       Space = "Apartment"
	SpaceIndoorGardening Space = "Indoor Gardening"
)

var validSpaces = []Space{
	SpaceBalcony,
	SpaceBackyard,
	SpaceApartment,
	SpaceIndoorGardening,
}

// String implements fmt.Stringer.
func (s Space) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Space or unset.
func (s Space) IsValid() bool {
	if s == "" {
		return true
	}
	for _, candidate := range validSpaces {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSpace converts raw input into a Space. Empty input is allowed.
func ParseSpace(value string) (Space, error) {
	if value == "" {
		return "", nil
	}
	for _, candidate := range validSpaces {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid space %q", value)
}
