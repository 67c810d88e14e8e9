package models

import "github.com/shopspring/decimal"

type SubmitOrderRequest struct {
	CustomerName     string            `json:"customer_name" example:"Asha Rao"`
	CustomerEmail    string            `json:"customer_email" example:"asha@example.com"`
	PaymentReference string            `json:"payment_reference" example:"412345678901"`
	Items            []LineItemRequest `json:"items"`
}

type LineItemRequest struct {
	Category  string          `json:"category" example:"VIP"`
	Quantity  int             `json:"quantity" example:"2"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"1499.00"`
}

type UpdatePaymentSettingsRequest struct {
	PaymentIdentifier string `json:"payment_identifier" example:"eventco@okaxis"`
	Instructions      string `json:"instructions" example:"Pay the exact total and paste the UPI transaction id."`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
