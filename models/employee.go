package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"motorcycles-backend/utils"
	"motorcycles-backend/validation"
)

var (
	employeeZipRegex = regexp.MustCompile(`^\d{4,6}$`)
	documentRules    = map[DocumentType]struct {
		re  *regexp.Regexp
		msg string
	}{
		DocumentCedula:        {regexp.MustCompile(`^\d{6,12}$`), "cedula must have between 6 and 12 digits"},
		DocumentDNI:           {regexp.MustCompile(`^\d{7,9}$`), "DNI must have between 7 and 9 digits"},
		DocumentPassport:      {regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`), "passport must have between 6 and 12 letters or digits"},
		DocumentDriverLicense: {regexp.MustCompile(`^.{6,15}$`), "driver license must have between 6 and 15 characters"},
	}
	maxSalary = decimal.NewFromInt(999_999_999)
)

type Employee struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	FirstName       string              `gorm:"size:100;not null" json:"firstName"`
	LastName        string              `gorm:"size:100;not null" json:"lastName"`
	Email           string              `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone           string              `gorm:"size:30" json:"phone,omitempty"`
	DocumentType    DocumentType        `gorm:"size:20" json:"documentType,omitempty"`
	DocumentNumber  *string             `gorm:"size:30;uniqueIndex" json:"documentNumber,omitempty"`
	Address         string              `json:"address,omitempty"`
	City            string              `gorm:"size:100" json:"city,omitempty"`
	State           string              `gorm:"size:100" json:"state,omitempty"`
	ZipCode         string              `gorm:"size:20" json:"zipCode,omitempty"`
	Country         string              `gorm:"size:100" json:"country,omitempty"`
	JobTitle        string              `gorm:"size:100;not null" json:"jobTitle"`
	Salary          decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"salary"`
	HireDate        *time.Time          `json:"hireDate,omitempty"`
	TerminationDate *time.Time          `json:"terminationDate,omitempty"`
	Status          EmployeeStatus      `gorm:"size:20;default:'ACTIVE'" json:"status"`
	Notes           string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`

	Sales []Sale `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Validate applies the employee form rules. Dates are judged against now.
func (e *Employee) Validate(now time.Time) validation.Violations {
	v := validation.Violations{}
	validatePersonName("firstName", e.FirstName, v)
	validatePersonName("lastName", e.LastName, v)

	if validation.Required("email", e.Email, v) && !utils.ValidateEmail(e.Email) {
		v.Add("email", "email format is invalid")
	}
	if validation.Required("jobTitle", strings.TrimSpace(e.JobTitle), v) {
		validation.MinLength("jobTitle", strings.TrimSpace(e.JobTitle), 3, v)
	}

	if strings.TrimSpace(e.Phone) != "" {
		if !utils.PhoneHasValidChars(e.Phone) {
			v.Add("phone", "phone format is invalid")
		} else if utils.CountDigits(e.Phone) < 7 {
			v.Add("phone", "phone must have at least 7 digits")
		}
	}

	e.validateDocument(v)

	if e.Salary.Valid {
		if e.Salary.Decimal.IsNegative() {
			v.Add("salary", "salary must not be negative")
		} else if e.Salary.Decimal.GreaterThan(maxSalary) {
			v.Add("salary", "salary is too large")
		}
	}

	if strings.TrimSpace(e.Address) != "" {
		validation.MinLength("address", strings.TrimSpace(e.Address), 10, v)
	}
	if city := strings.TrimSpace(e.City); city != "" {
		if validation.MinLength("city", city, 2, v) && !utils.OnlyLetters(city) {
			v.Add("city", "city may only contain letters")
		}
	}
	if strings.TrimSpace(e.ZipCode) != "" {
		validation.Matches("zipCode", e.ZipCode, employeeZipRegex, "zipCode must have between 4 and 6 digits", v)
	}

	e.validateDates(now, v)

	if e.Status != "" && !e.Status.Valid() {
		v.Add("status", "status is invalid")
	}
	if e.Status == EmployeeTerminated && e.TerminationDate == nil {
		v.Add("terminationDate", "terminationDate is required for terminated employees")
	}
	validation.MaxLength("notes", e.Notes, 500, v)
	return v
}

func (e *Employee) validateDocument(v validation.Violations) {
	if e.DocumentType != "" && !e.DocumentType.Valid() {
		v.Add("documentType", "documentType is invalid")
		return
	}
	if e.DocumentNumber == nil || strings.TrimSpace(*e.DocumentNumber) == "" {
		return
	}
	number := strings.TrimSpace(*e.DocumentNumber)
	rule, ok := documentRules[e.DocumentType]
	if !ok {
		validation.MinLength("documentNumber", number, 5, v)
		return
	}
	validation.Matches("documentNumber", number, rule.re, rule.msg, v)
}

func (e *Employee) validateDates(now time.Time, v validation.Violations) {
	today := utils.BeginningOfDay(now)
	if e.HireDate != nil {
		hire := utils.BeginningOfDay(e.HireDate.In(now.Location()))
		switch {
		case hire.After(today):
			v.Add("hireDate", "hireDate cannot be in the future")
		case hire.Before(today.AddDate(-50, 0, 0)):
			v.Add("hireDate", "hireDate cannot be more than 50 years ago")
		}
	}
	if e.TerminationDate == nil {
		return
	}
	if e.HireDate == nil {
		v.Add("terminationDate", "terminationDate requires a hireDate")
		return
	}
	term := utils.BeginningOfDay(e.TerminationDate.In(now.Location()))
	switch {
	case term.Before(utils.BeginningOfDay(e.HireDate.In(now.Location()))):
		v.Add("terminationDate", "terminationDate cannot be before hireDate")
	case term.After(today):
		v.Add("terminationDate", "terminationDate cannot be in the future")
	}
}
