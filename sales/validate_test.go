package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorcycles-backend/models"
)

func validDraft(t *testing.T) *Draft {
	t.Helper()
	d := NewDraft(testNow)
	d.SaleNumber = "SALE-0001"
	d.Customer = &models.Ref{ID: 1}
	d.Employee = &models.Ref{ID: 1}
	require.NoError(t, d.UpdateLine(0, FieldMotorcycle, bike(1, "1000")))
	require.NoError(t, d.UpdateLine(0, FieldQuantity, 2))
	require.NoError(t, d.UpdateLine(0, FieldDiscount, 100))
	return d
}

func TestValidateMinimalDraft(t *testing.T) {
	d := validDraft(t)

	assert.Empty(t, d.Validate(testNow))
	assert.True(t, d.Total.Equal(dec("1900")))
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Draft)
		field  string
	}{
		{"missing customer", func(d *Draft) { d.Customer = nil }, "customer"},
		{"zero customer ref", func(d *Draft) { d.Customer = &models.Ref{} }, "customer"},
		{"missing employee", func(d *Draft) { d.Employee = nil }, "employee"},
		{"blank sale number", func(d *Draft) { d.SaleNumber = "   " }, "saleNumber"},
		{"short sale number", func(d *Draft) { d.SaleNumber = "S1" }, "saleNumber"},
		{"missing date", func(d *Draft) { d.SaleDate = time.Time{} }, "saleDate"},
		{"date too far ahead", func(d *Draft) { d.SaleDate = testNow.AddDate(0, 0, 31) }, "saleDate"},
		{"no qualifying line", func(d *Draft) { _ = d.UpdateLine(0, FieldMotorcycle, nil) }, "details"},
		{"zero quantity", func(d *Draft) { _ = d.UpdateLine(0, FieldQuantity, 0) }, "details[0].quantity"},
		{"negative quantity", func(d *Draft) { _ = d.UpdateLine(0, FieldQuantity, -1) }, "details[0].quantity"},
		{"negative discount", func(d *Draft) { _ = d.UpdateLine(0, FieldDiscount, -5) }, "details[0].discount"},
		{"discount equals line value", func(d *Draft) { _ = d.UpdateLine(0, FieldDiscount, 2000) }, "details[0].discount"},
		{"discount above line value", func(d *Draft) { _ = d.UpdateLine(0, FieldDiscount, 2500) }, "details[0].discount"},
		{"total not positive", func(d *Draft) { _ = d.UpdateLine(0, FieldDiscount, 2000) }, "total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft(t)
			tt.mutate(d)

			v := d.Validate(testNow)
			assert.True(t, v.Has(tt.field), "violations: %v", v)
		})
	}
}

func TestValidateDateBoundary(t *testing.T) {
	d := validDraft(t)

	// 30 days ahead late in the evening is still allowed
	d.SaleDate = time.Date(2025, 7, 15, 23, 59, 0, 0, time.UTC)
	assert.False(t, d.Validate(testNow).Has("saleDate"))

	d.SaleDate = time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)
	assert.True(t, d.Validate(testNow).Has("saleDate"))

	d.SaleDate = testNow.AddDate(-2, 0, 0)
	assert.False(t, d.Validate(testNow).Has("saleDate"))
}

func TestValidateReportsEveryRule(t *testing.T) {
	d := NewDraft(testNow)
	d.SaleNumber = ""
	d.SaleDate = time.Time{}

	v := d.Validate(testNow)

	assert.Equal(t, []string{"customer", "details", "employee", "saleDate", "saleNumber", "total"}, v.Fields())
}

func TestValidateIndexesByLinePosition(t *testing.T) {
	d := validDraft(t)
	d.AddLine()
	d.AddLine()
	require.NoError(t, d.UpdateLine(2, FieldMotorcycle, bike(2, "300")))
	require.NoError(t, d.UpdateLine(2, FieldQuantity, 0))

	v := d.Validate(testNow)

	assert.True(t, v.Has("details[2].quantity"))
	assert.False(t, v.Has("details[1].quantity"))
	assert.False(t, v.Has("details"))
}

func TestValidateDoesNotMutate(t *testing.T) {
	d := validDraft(t)
	d.Lines[0].Subtotal = dec("1")
	d.Total = dec("1")
	before := d.Clone()

	_ = d.Validate(testNow)

	assert.Equal(t, before, d)
}
