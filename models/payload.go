package models

import "github.com/shopspring/decimal"

// Ref points at an existing entity by id, e.g. {"id": 7}.
type Ref struct {
	ID uint `json:"id"`
}

// SalePayload is the body of a sale create or update call.
type SalePayload struct {
	SaleNumber    string          `json:"saleNumber"`
	Customer      *Ref            `json:"customer"`
	Employee      *Ref            `json:"employee"`
	SaleDate      string          `json:"saleDate"`
	Status        SaleStatus      `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	Details       []DetailPayload `json:"details"`
}

type DetailPayload struct {
	Motorcycle Ref             `json:"motorcycle"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Discount   decimal.Decimal `json:"discount"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Notes      string          `json:"notes,omitempty"`
}
