package models

import "github.com/shopspring/decimal"

func init() {
	// money travels as plain JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundMoney rounds to the two decimal places stored in the database.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
