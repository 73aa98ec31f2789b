package enums

import "fmt"

// PlantType is an optional attribute on seed listings. The empty string means
// the seller left it unset.
type PlantType string

const (
	PlantTypeVegetables  PlantType = "Vegetables"
	PlantTypeHerbs       PlantType = "Herbs"
	PlantTypeLeafyGreens PlantType = "Leafy Greens"
	PlantTypeFlowers     PlantType = "Flowers"
)

var validPlantTypes = []PlantType{
	PlantTypeVegetables,
	PlantTypeHerbs,
	PlantTypeLeafyGreens,
	PlantTypeFlowers,
}

// String implements fmt.Stringer.
func (p PlantType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PlantType or unset.
func (p PlantType) IsValid() bool {
	if p == "" {
		return true
	}
	for _, candidate := range validPlantTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlantType converts raw input into a PlantType. Empty input is allowed.
func ParsePlantType(value string) (PlantType, error) {
	if value == "" {
		return "", nil
	}
	for _, candidate := range validPlantTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plant type %q", value)
}
