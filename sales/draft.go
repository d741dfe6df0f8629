// Package sales composes and validates sales before they are submitted.
//
// A Draft is a plain value owned by its caller. Every line mutation keeps
// the subtotals and the total in step with the lines, so a Draft is never
// observed with a stale total.
package sales

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"motorcycles-backend/models"
)

var (
	ErrLineOutOfRange = errors.New("line index out of range")
	ErrInvalidValue   = errors.New("invalid line value")
)

// LineField names the editable fields of a line.
type LineField string

const (
	FieldMotorcycle LineField = "motorcycle"
	FieldQuantity   LineField = "quantity"
	FieldDiscount   LineField = "discount"
	FieldNotes      LineField = "notes"
)

// Line is one line item being composed. UnitPrice is copied from the
// motorcycle when it is selected and is not refreshed afterwards.
type Line struct {
	Motorcycle *models.Motorcycle `json:"motorcycle"`
	Quantity   int                `json:"quantity"`
	UnitPrice  decimal.Decimal    `json:"unitPrice"`
	Discount   decimal.Decimal    `json:"discount"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Notes      string             `json:"notes,omitempty"`
}

func (l *Line) HasMotorcycle() bool {
	return l.Motorcycle != nil && l.Motorcycle.ID != 0
}

// Value is quantity × unit price before discount.
func (l *Line) Value() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func emptyLine() Line {
	return Line{Quantity: 1, UnitPrice: decimal.Zero, Discount: decimal.Zero, Subtotal: decimal.Zero}
}

// Draft is a sale under composition.
type Draft struct {
	ID            uint                 `json:"id,omitempty"`
	SaleNumber    string               `json:"saleNumber"`
	Customer      *models.Ref          `json:"customer"`
	Employee      *models.Ref          `json:"employee"`
	SaleDate      time.Time            `json:"saleDate"`
	Status        models.SaleStatus    `json:"status"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	Lines         []Line               `json:"lines"`
	Total         decimal.Decimal      `json:"total"`
}

// DefaultSaleNumber is the number proposed for a new sale.
func DefaultSaleNumber(now time.Time) string {
	return "SALE-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// NewDraft starts a pending cash sale dated today with one empty line.
func NewDraft(now time.Time) *Draft {
	year, month, day := now.Date()
	return &Draft{
		SaleNumber:    DefaultSaleNumber(now),
		SaleDate:      time.Date(year, month, day, 0, 0, 0, 0, now.Location()),
		Status:        models.SaleStatusPending,
		PaymentMethod: models.PaymentCash,
		Lines:         []Line{emptyLine()},
		Total:         decimal.Zero,
	}
}

// AddLine appends an empty line with quantity 1.
func (d *Draft) AddLine() {
	d.Lines = append(d.Lines, emptyLine())
	d.RecomputeTotal()
}

// RemoveLine drops the line at index. It refuses to remove the last
// remaining line or an index that does not exist, returning false.
func (d *Draft) RemoveLine(index int) bool {
	if len(d.Lines) <= 1 || index < 0 || index >= len(d.Lines) {
		return false
	}
	d.Lines = append(d.Lines[:index], d.Lines[index+1:]...)
	d.RecomputeTotal()
	return true
}

// UpdateLine sets one field of the line at index and recomputes the total.
// On error the draft is left untouched.
//
// Accepted values: motorcycle takes models.Motorcycle, *models.Motorcycle or
// nil; quantity takes any integer kind or a numeric string; discount takes
// decimal.Decimal, a number or a numeric string; notes takes a string.
func (d *Draft) UpdateLine(index int, field LineField, value any) error {
	if index < 0 || index >= len(d.Lines) {
		return fmt.Errorf("%w: %d", ErrLineOutOfRange, index)
	}
	line := d.Lines[index]

	switch field {
	case FieldMotorcycle:
		m, err := toMotorcycle(value)
		if err != nil {
			return err
		}
		line.Motorcycle = m
		if m != nil {
			line.UnitPrice = m.Price
		} else {
			line.UnitPrice = decimal.Zero
		}
	case FieldQuantity:
		q, err := toInt(value)
		if err != nil {
			return err
		}
		line.Quantity = q
	case FieldDiscount:
		dsc, err := toDecimal(value)
		if err != nil {
			return err
		}
		line.Discount = dsc
	case FieldNotes:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: notes must be text, got %T", ErrInvalidValue, value)
		}
		line.Notes = s
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidValue, field)
	}

	d.Lines[index] = line
	d.RecomputeTotal()
	return nil
}

// RecomputeTotal refreshes every subtotal and the total. Lines without a
// motorcycle count as zero.
func (d *Draft) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range d.Lines {
		l := &d.Lines[i]
		if !l.HasMotorcycle() {
			l.Subtotal = decimal.Zero
			continue
		}
		l.Subtotal = l.Value().Sub(l.Discount)
		total = total.Add(l.Subtotal)
	}
	d.Total = total
	return total
}

// Clone returns a deep copy of the draft lines and refs.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Lines = make([]Line, len(d.Lines))
	copy(c.Lines, d.Lines)
	if d.Customer != nil {
		ref := *d.Customer
		c.Customer = &ref
	}
	if d.Employee != nil {
		ref := *d.Employee
		c.Employee = &ref
	}
	return &c
}

func toMotorcycle(value any) (*models.Motorcycle, error) {
	switch m := value.(type) {
	case nil:
		return nil, nil
	case *models.Motorcycle:
		if m == nil {
			return nil, nil
		}
		cp := *m
		return &cp, nil
	case models.Motorcycle:
		return &m, nil
	}
	return nil, fmt.Errorf("%w: motorcycle must be a models.Motorcycle, got %T", ErrInvalidValue, value)
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: quantity must be a whole number, got %v", ErrInvalidValue, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: quantity %q: %v", ErrInvalidValue, v, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: quantity must be an integer, got %T", ErrInvalidValue, value)
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%w: discount must be finite, got %v", ErrInvalidValue, v)
		}
		return decimal.NewFromFloat(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, nil
		}
		dec, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: discount %q: %v", ErrInvalidValue, v, err)
		}
		return dec, nil
	}
	return decimal.Zero, fmt.Errorf("%w: discount must be a number, got %T", ErrInvalidValue, value)
}
