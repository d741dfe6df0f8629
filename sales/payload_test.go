package sales

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorcycles-backend/models"
)

func TestToPayload(t *testing.T) {
	d := validDraft(t)
	d.AddLine()
	d.AddLine()
	require.NoError(t, d.UpdateLine(2, FieldMotorcycle, bike(3, "450")))
	require.NoError(t, d.UpdateLine(2, FieldNotes, "helmet included"))

	p := d.ToPayload()

	assert.Equal(t, "SALE-0001", p.SaleNumber)
	assert.Equal(t, &models.Ref{ID: 1}, p.Customer)
	assert.Equal(t, "2025-06-15T00:00:00Z", p.SaleDate)
	assert.Equal(t, models.SaleStatusPending, p.Status)
	assert.Equal(t, models.PaymentCash, p.PaymentMethod)
	assert.True(t, p.Total.Equal(dec("2350")))
	require.Len(t, p.Details, 2)
	assert.Equal(t, uint(1), p.Details[0].Motorcycle.ID)
	assert.True(t, p.Details[0].Subtotal.Equal(dec("1900")))
	assert.Equal(t, uint(3), p.Details[1].Motorcycle.ID)
	assert.Equal(t, "helmet included", p.Details[1].Notes)
}

func TestToPayloadJSON(t *testing.T) {
	d := NewDraft(testNow)
	d.SaleNumber = "SALE-0002"
	d.AddLine()
	require.NoError(t, d.UpdateLine(1, FieldMotorcycle, bike(4, "1200.5")))

	b, err := json.Marshal(d.ToPayload())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Nil(t, raw["customer"])
	details := raw["details"].([]any)
	require.Len(t, details, 1)
	line := details[0].(map[string]any)
	assert.Equal(t, map[string]any{"id": float64(4)}, line["motorcycle"])
	assert.Equal(t, 1200.5, line["unitPrice"])
	assert.Equal(t, 1200.5, line["subtotal"])
	assert.NotContains(t, string(b), `"motorcycle":null`)
}

func TestToPayloadWithoutLines(t *testing.T) {
	p := NewDraft(testNow).ToPayload()

	assert.NotNil(t, p.Details)
	assert.Empty(t, p.Details)
	assert.True(t, p.Total.IsZero())
}

func TestDraftFromSale(t *testing.T) {
	sale := &models.Sale{
		ID:            9,
		SaleNumber:    "SALE-0009",
		CustomerID:    3,
		Employee:      &models.Employee{ID: 4},
		SaleDate:      testNow,
		Status:        models.SaleStatusCompleted,
		PaymentMethod: models.PaymentFinancing,
		Details: []models.DetailSale{
			{MotorcycleID: 7, Motorcycle: bike(7, "9999"), Quantity: 1, UnitPrice: dec("1000"), Discount: dec("0")},
			{MotorcycleID: 8, Quantity: 2, UnitPrice: dec("300"), Discount: dec("50")},
		},
	}

	d := DraftFromSale(sale)

	assert.Equal(t, uint(9), d.ID)
	assert.Equal(t, &models.Ref{ID: 3}, d.Customer)
	assert.Equal(t, &models.Ref{ID: 4}, d.Employee)
	require.Len(t, d.Lines, 2)
	// stored unit prices win over the current catalogue price
	assert.True(t, d.Lines[0].UnitPrice.Equal(dec("1000")))
	assert.Equal(t, uint(8), d.Lines[1].Motorcycle.ID)
	assert.True(t, d.Total.Equal(dec("1550")))
	assert.Empty(t, d.Validate(testNow))
}

func TestDraftFromSaleWithoutDetails(t *testing.T) {
	d := DraftFromSale(&models.Sale{SaleNumber: "SALE-1"})

	require.Len(t, d.Lines, 1)
	assert.False(t, d.Lines[0].HasMotorcycle())
}

func TestDraftFromPayload(t *testing.T) {
	catalogue := map[uint]models.Motorcycle{
		1: *bike(1, "1000"),
		2: *bike(2, "500"),
	}
	p := models.SalePayload{
		SaleNumber: "SALE-0100",
		Customer:   &models.Ref{ID: 1},
		Employee:   &models.Ref{ID: 2},
		SaleDate:   "2025-06-15",
		Total:      dec("1"),
		Details: []models.DetailPayload{
			{Motorcycle: models.Ref{ID: 1}, Quantity: 2, UnitPrice: dec("900"), Discount: dec("100"), Subtotal: dec("5")},
			{Motorcycle: models.Ref{ID: 2}, Quantity: 1},
		},
	}

	d, v := DraftFromPayload(p, catalogue, time.UTC)

	assert.Empty(t, v)
	assert.Equal(t, models.SaleStatusPending, d.Status)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), d.SaleDate)
	assert.True(t, d.Lines[0].Subtotal.Equal(dec("1700")))
	assert.True(t, d.Lines[1].UnitPrice.Equal(dec("500")))
	assert.True(t, d.Total.Equal(dec("2200")))
}

func TestDraftFromPayloadViolations(t *testing.T) {
	p := models.SalePayload{
		SaleNumber: "SALE-0101",
		SaleDate:   "15/06/2025",
		Details:    []models.DetailPayload{{Motorcycle: models.Ref{ID: 42}, Quantity: 1}},
	}

	d, v := DraftFromPayload(p, map[uint]models.Motorcycle{}, time.UTC)

	assert.True(t, v.Has("saleDate"))
	assert.True(t, v.Has("details[0].motorcycle"))
	assert.True(t, d.Validate(testNow).Has("details"))
}

func TestToSale(t *testing.T) {
	d := validDraft(t)
	d.AddLine()

	s := d.ToSale()

	assert.Equal(t, uint(1), s.CustomerID)
	assert.Equal(t, uint(1), s.EmployeeID)
	require.Len(t, s.Details, 1)
	assert.Equal(t, uint(1), s.Details[0].MotorcycleID)
	assert.True(t, s.Details[0].Subtotal.Equal(dec("1900")))
	assert.True(t, s.Total.Equal(dec("1900")))
}

func TestToSaleRoundsLinesBeforeTotal(t *testing.T) {
	d := validDraft(t)
	d.Lines = []Line{
		{Motorcycle: bike(1, "10.005"), Quantity: 1, UnitPrice: dec("10.005"), Discount: dec("0.004")},
		{Motorcycle: bike(2, "10.005"), Quantity: 1, UnitPrice: dec("10.005"), Discount: decimal.Zero},
	}

	s := d.ToSale()

	require.Len(t, s.Details, 2)
	sum := decimal.Zero
	for _, det := range s.Details {
		assert.True(t, det.UnitPrice.Equal(dec("10.01")), "unit price %s", det.UnitPrice)
		want := det.UnitPrice.Mul(decimal.NewFromInt(int64(det.Quantity))).Sub(det.Discount)
		assert.True(t, det.Subtotal.Equal(want), "subtotal %s, want %s", det.Subtotal, want)
		sum = sum.Add(det.Subtotal)
	}
	assert.True(t, s.Total.Equal(sum), "total %s, sum of subtotals %s", s.Total, sum)
	assert.True(t, s.Total.Equal(dec("20.02")))
}
