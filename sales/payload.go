package sales

import (
	"strconv"
	"strings"
	"time"

	"motorcycles-backend/models"
	"motorcycles-backend/utils"
	"motorcycles-backend/validation"
)

// ToPayload builds the submit body. Lines without a motorcycle are left out.
func (d *Draft) ToPayload() models.SalePayload {
	c := d.Clone()
	c.RecomputeTotal()

	p := models.SalePayload{
		SaleNumber:    strings.TrimSpace(c.SaleNumber),
		Status:        c.Status,
		PaymentMethod: c.PaymentMethod,
		Total:         c.Total,
		Details:       []models.DetailPayload{},
	}
	if c.Customer != nil && c.Customer.ID != 0 {
		p.Customer = &models.Ref{ID: c.Customer.ID}
	}
	if c.Employee != nil && c.Employee.ID != 0 {
		p.Employee = &models.Ref{ID: c.Employee.ID}
	}
	if !c.SaleDate.IsZero() {
		p.SaleDate = c.SaleDate.UTC().Format(time.RFC3339)
	}
	for _, l := range c.Lines {
		if !l.HasMotorcycle() {
			continue
		}
		p.Details = append(p.Details, models.DetailPayload{
			Motorcycle: models.Ref{ID: l.Motorcycle.ID},
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Discount:   l.Discount,
			Subtotal:   l.Subtotal,
			Notes:      l.Notes,
		})
	}
	return p
}

// DraftFromSale reopens a persisted sale for editing. Unit prices keep the
// values stored on the lines.
func DraftFromSale(s *models.Sale) *Draft {
	d := &Draft{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		SaleDate:      s.SaleDate,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
	}
	if id := s.CustomerRef(); id != 0 {
		d.Customer = &models.Ref{ID: id}
	}
	if id := s.EmployeeRef(); id != 0 {
		d.Employee = &models.Ref{ID: id}
	}
	for _, det := range s.Details {
		l := Line{
			Quantity:  det.Quantity,
			UnitPrice: det.UnitPrice,
			Discount:  det.Discount,
			Notes:     det.Notes,
		}
		if det.Motorcycle != nil {
			m := *det.Motorcycle
			l.Motorcycle = &m
		} else if id := det.MotorcycleRef(); id != 0 {
			l.Motorcycle = &models.Motorcycle{ID: id, Price: det.UnitPrice}
		}
		d.Lines = append(d.Lines, l)
	}
	if len(d.Lines) == 0 {
		d.Lines = []Line{emptyLine()}
	}
	d.RecomputeTotal()
	return d
}

// DraftFromPayload rebuilds a draft from a submitted body. motorcycles holds
// the catalogue entries the lines refer to; unknown ids and unreadable dates
// are reported as violations. Client supplied subtotals and totals are
// ignored. A unit price is taken from the payload when positive, otherwise
// from the catalogue.
func DraftFromPayload(p models.SalePayload, motorcycles map[uint]models.Motorcycle, loc *time.Location) (*Draft, validation.Violations) {
	v := validation.Violations{}
	d := &Draft{
		SaleNumber:    p.SaleNumber,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
	}
	if d.Status == "" {
		d.Status = models.SaleStatusPending
	}
	if p.Customer != nil && p.Customer.ID != 0 {
		d.Customer = &models.Ref{ID: p.Customer.ID}
	}
	if p.Employee != nil && p.Employee.ID != 0 {
		d.Employee = &models.Ref{ID: p.Employee.ID}
	}
	if strings.TrimSpace(p.SaleDate) != "" {
		t, err := utils.ParseDate(p.SaleDate, loc)
		if err != nil {
			v.Add("saleDate", "saleDate is not a valid date")
		} else {
			d.SaleDate = t
		}
	}

	for i, det := range p.Details {
		l := Line{
			Quantity:  det.Quantity,
			UnitPrice: models.RoundMoney(det.UnitPrice),
			Discount:  models.RoundMoney(det.Discount),
			Notes:     det.Notes,
		}
		if det.Motorcycle.ID != 0 {
			m, ok := motorcycles[det.Motorcycle.ID]
			if !ok {
				v.Add("details["+strconv.Itoa(i)+"].motorcycle", "motorcycle not found")
			} else {
				l.Motorcycle = &m
				if !l.UnitPrice.IsPositive() {
					l.UnitPrice = models.RoundMoney(m.Price)
				}
			}
		}
		d.Lines = append(d.Lines, l)
	}
	if len(d.Lines) == 0 {
		d.Lines = []Line{emptyLine()}
	}
	d.RecomputeTotal()
	return d, v
}

// ToSale maps the draft onto a persistable sale. Only lines with a
// motorcycle become details. Prices are rounded to cents before the
// subtotals are recomputed, so the stored total is the sum of the stored
// subtotals.
func (d *Draft) ToSale() models.Sale {
	c := d.Clone()
	for i := range c.Lines {
		c.Lines[i].UnitPrice = models.RoundMoney(c.Lines[i].UnitPrice)
		c.Lines[i].Discount = models.RoundMoney(c.Lines[i].Discount)
	}
	c.RecomputeTotal()
	s := models.Sale{
		ID:            c.ID,
		SaleNumber:    strings.TrimSpace(c.SaleNumber),
		SaleDate:      c.SaleDate,
		Status:        c.Status,
		PaymentMethod: c.PaymentMethod,
		Total:         c.Total,
	}
	if c.Customer != nil {
		s.CustomerID = c.Customer.ID
	}
	if c.Employee != nil {
		s.EmployeeID = c.Employee.ID
	}
	for _, l := range c.Lines {
		if !l.HasMotorcycle() {
			continue
		}
		s.Details = append(s.Details, models.DetailSale{
			MotorcycleID: l.Motorcycle.ID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			Discount:     l.Discount,
			Subtotal:     l.Subtotal,
			Notes:        l.Notes,
		})
	}
	return s
}
