package models

import (
	"regexp"
	"strings"
	"time"

	"motorcycles-backend/utils"
	"motorcycles-backend/validation"
)

var zipRegex = regexp.MustCompile(`^[\d\-\s]+$`)

type Customer struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	FirstName      string         `gorm:"size:100;not null" json:"firstName"`
	LastName       string         `gorm:"size:100;not null" json:"lastName"`
	Email          string         `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone          string         `gorm:"size:30;not null" json:"phone"`
	DocumentType   DocumentType   `gorm:"size:20" json:"documentType,omitempty"`
	DocumentNumber *string        `gorm:"size:30;uniqueIndex" json:"documentNumber,omitempty"`
	Address        string         `json:"address,omitempty"`
	City           string         `gorm:"size:100" json:"city,omitempty"`
	State          string         `gorm:"size:100" json:"state,omitempty"`
	ZipCode        string         `gorm:"size:20" json:"zipCode,omitempty"`
	Country        string         `gorm:"size:100" json:"country,omitempty"`
	BirthDate      *time.Time     `json:"birthDate,omitempty"`
	Status         CustomerStatus `gorm:"size:20;default:'ACTIVE'" json:"status"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	Sales []Sale `gorm:"foreignKey:CustomerID" json:"-"`
}

func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate applies the customer form rules.
func (c *Customer) Validate() validation.Violations {
	v := validation.Violations{}
	validatePersonName("firstName", c.FirstName, v)
	validatePersonName("lastName", c.LastName, v)

	if validation.Required("email", c.Email, v) && !utils.ValidateEmail(c.Email) {
		v.Add("email", "email format is invalid")
	}

	if validation.Required("phone", c.Phone, v) {
		if !utils.PhoneHasValidChars(c.Phone) {
			v.Add("phone", "phone format is invalid")
		} else if utils.CountDigits(c.Phone) < 7 {
			v.Add("phone", "phone must have at least 7 digits")
		}
	}

	if c.DocumentType != "" && !c.DocumentType.Valid() {
		v.Add("documentType", "documentType is invalid")
	}
	if c.DocumentNumber != nil && strings.TrimSpace(*c.DocumentNumber) != "" {
		validation.MinLength("documentNumber", *c.DocumentNumber, 5, v)
	}
	if strings.TrimSpace(c.Address) != "" {
		validation.MinLength("address", c.Address, 5, v)
	}
	if strings.TrimSpace(c.City) != "" {
		validation.MinLength("city", c.City, 2, v)
	}
	if strings.TrimSpace(c.ZipCode) != "" {
		validation.Matches("zipCode", c.ZipCode, zipRegex, "zipCode is invalid", v)
	}
	if c.Status != "" && !c.Status.Valid() {
		v.Add("status", "status is invalid")
	}
	return v
}

func validatePersonName(field, value string, v validation.Violations) {
	value = strings.TrimSpace(value)
	if !validation.Required(field, value, v) {
		return
	}
	if !validation.MinLength(field, value, 2, v) {
		return
	}
	if !utils.OnlyLetters(value) {
		v.Add(field, field+" may only contain letters")
	}
}
