package models

import (
	"strconv"
	"strings"
	"time"

	"motorcycles-backend/validation"

	"github.com/shopspring/decimal"
)

// Motorcycle is a catalogue entry that can be sold through sale lines.
type Motorcycle struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name           string          `gorm:"size:150;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Brand          string          `gorm:"size:100;not null" json:"brand"`
	Model          string          `gorm:"size:100" json:"model"`
	Year           int             `json:"year"`
	EngineCapacity int             `json:"engine_capacity"` // cc
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	DetailSales []DetailSale `gorm:"foreignKey:MotorcycleID" json:"-"`
}

// Validate applies the catalogue form rules. now bounds the model year.
func (m *Motorcycle) Validate(now time.Time) validation.Violations {
	v := validation.Violations{}
	validation.Required("code", m.Code, v)
	validation.Required("name", m.Name, v)
	validation.Required("brand", m.Brand, v)
	validation.Required("model", m.Model, v)

	maxYear := now.Year() + 1
	if m.Year < 1900 || m.Year > maxYear {
		v.Add("year", "year must be between 1900 and "+strconv.Itoa(maxYear))
	}
	if m.EngineCapacity <= 0 {
		v.Add("engine_capacity", "engine_capacity must be a positive number")
	}
	if !m.Price.IsPositive() {
		v.Add("price", "price must be a positive number")
	}
	return v
}

// Label is the short text used in selection lists and receipts.
func (m *Motorcycle) Label() string {
	return strings.TrimSpace(m.Brand + " " + m.Model + " (" + strconv.Itoa(m.Year) + ")")
}
