package models

import "time"

// PaymentSettings holds the payout instructions shown to customers at checkout.
type PaymentSettings struct {
	PaymentIdentifier string    `json:"payment_identifier"`
	Instructions      string    `json:"instructions"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}
