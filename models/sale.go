package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a persisted sale header. Details are replaced as a whole on update.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SaleNumber    string          `gorm:"size:50;uniqueIndex;not null" json:"saleNumber"`
	CustomerID    uint            `gorm:"index;not null" json:"customerId"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	EmployeeID    uint            `gorm:"index;not null" json:"employeeId"`
	Employee      *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	SaleDate      time.Time       `gorm:"not null" json:"saleDate"`
	Status        SaleStatus      `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	PaymentMethod PaymentMethod   `gorm:"size:20" json:"paymentMethod,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Details       []DetailSale    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CustomerRef returns the referenced customer id, preferring the foreign key.
func (s *Sale) CustomerRef() uint {
	if s.CustomerID != 0 {
		return s.CustomerID
	}
	if s.Customer != nil {
		return s.Customer.ID
	}
	return 0
}

func (s *Sale) EmployeeRef() uint {
	if s.EmployeeID != 0 {
		return s.EmployeeID
	}
	if s.Employee != nil {
		return s.Employee.ID
	}
	return 0
}

// DetailSale is one line of a sale. Subtotal is always derived.
type DetailSale struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SaleID       uint            `gorm:"index;not null" json:"-"`
	MotorcycleID uint            `gorm:"index;not null" json:"motorcycleId"`
	Motorcycle   *Motorcycle     `gorm:"foreignKey:MotorcycleID" json:"motorcycle,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Notes        string          `json:"notes,omitempty"`
}

func (d *DetailSale) MotorcycleRef() uint {
	if d.MotorcycleID != 0 {
		return d.MotorcycleID
	}
	if d.Motorcycle != nil {
		return d.Motorcycle.ID
	}
	return 0
}

// LineValue is quantity × unit price before discount.
func (d *DetailSale) LineValue() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
