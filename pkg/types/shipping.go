package types

import "strings"

// ShippingDetails is the delivery block captured during checkout. All eight
// fields are mandatory before an order can be confirmed.
type ShippingDetails struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	StreetAddress string `json:"street_address"`
	Zip           string `json:"zip"`
	City          string `json:"city"`
	Province      string `json:"province"`
}

// Complete reports whether every shipping field carries a non-blank value.
func (s ShippingDetails) Complete() bool {
	fields := []string{
		s.FirstName,
		s.LastName,
		s.ContactNumber,
		s.Email,
		s.StreetAddress,
		s.Zip,
		s.City,
		s.Province,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
