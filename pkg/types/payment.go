package types

import (
	"strings"

	"github.com/harithahub/storefront-backend/pkg/enums"
)

// PaymentDetails records how the buyer intends to pay. Card fields are only
// populated for the card variant; no format validation happens server-side.
type PaymentDetails struct {
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	NameOnCard    string              `json:"name_on_card,omitempty"`
	CardNumber    string              `json:"card_number,omitempty"`
	Expiration    string              `json:"expiration,omitempty"`
	CVC           string              `json:"cvc,omitempty"`
}

// HasMethod reports whether a payment method has been captured.
func (p PaymentDetails) HasMethod() bool {
	return strings.TrimSpace(string(p.PaymentMethod)) != ""
}

// CardFieldsComplete reports whether the four card fields are all present.
func (p PaymentDetails) CardFieldsComplete() bool {
	fields := []string{p.NameOnCard, p.CardNumber, p.Expiration, p.CVC}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
