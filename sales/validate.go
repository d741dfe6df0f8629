package sales

import (
	"strconv"
	"strings"
	"time"

	"motorcycles-backend/utils"
	"motorcycles-backend/validation"
)

// MaxDaysAhead is how far in the future a sale may be dated.
const MaxDaysAhead = 30

// Validate checks the draft as it would be submitted at now. All rules run;
// the draft itself is not modified.
func (d *Draft) Validate(now time.Time) validation.Violations {
	v := validation.Violations{}
	c := d.Clone()
	c.RecomputeTotal()

	saleNumber := strings.TrimSpace(c.SaleNumber)
	if validation.Required("saleNumber", saleNumber, v) {
		validation.MinLength("saleNumber", saleNumber, 3, v)
	}

	if c.Customer == nil || c.Customer.ID == 0 {
		v.Add("customer", "customer is required")
	}
	if c.Employee == nil || c.Employee.ID == 0 {
		v.Add("employee", "employee is required")
	}

	if c.SaleDate.IsZero() {
		v.Add("saleDate", "saleDate is required")
	} else if utils.BeginningOfDay(c.SaleDate.In(now.Location())).After(utils.BeginningOfDay(now).AddDate(0, 0, MaxDaysAhead)) {
		v.Add("saleDate", "saleDate cannot be more than "+strconv.Itoa(MaxDaysAhead)+" days in the future")
	}

	selected := 0
	for i := range c.Lines {
		l := &c.Lines[i]
		if !l.HasMotorcycle() {
			continue
		}
		selected++
		key := "details[" + strconv.Itoa(i) + "]"
		if l.Quantity <= 0 {
			v.Add(key+".quantity", "quantity must be greater than 0")
		}
		if l.Discount.IsNegative() {
			v.Add(key+".discount", "discount cannot be negative")
		}
		if l.Discount.GreaterThanOrEqual(l.Value()) {
			v.Add(key+".discount", "discount must be less than the line value")
		}
	}
	if selected == 0 {
		v.Add("details", "at least one line with a motorcycle is required")
	}

	if !c.Total.IsPositive() {
		v.Add("total", "total must be greater than 0")
	}
	return v
}
