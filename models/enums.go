package models

import (
	"encoding/json"
	"fmt"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

func (s SaleStatus) Label() string {
	switch s {
	case SaleStatusPending:
		return "Pending"
	case SaleStatusCompleted:
		return "Completed"
	case SaleStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

func (s *SaleStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(s), func(v string) bool { return v == "" || SaleStatus(v).Valid() }, "sale status")
}

// PaymentMethod is how the customer pays for a sale.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentFinancing    PaymentMethod = "FINANCING"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentFinancing:
		return true
	}
	return false
}

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCash:
		return "Cash"
	case PaymentCreditCard:
		return "Credit card"
	case PaymentDebitCard:
		return "Debit card"
	case PaymentBankTransfer:
		return "Bank transfer"
	case PaymentFinancing:
		return "Financing"
	}
	return string(p)
}

func (p *PaymentMethod) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(p), func(v string) bool { return v == "" || PaymentMethod(v).Valid() }, "payment method")
}

// CustomerStatus is the account state of a customer.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "ACTIVE"
	CustomerInactive CustomerStatus = "INACTIVE"
	CustomerBlocked  CustomerStatus = "BLOCKED"
)

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerActive, CustomerInactive, CustomerBlocked:
		return true
	}
	return false
}

func (s *CustomerStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(s), func(v string) bool { return v == "" || CustomerStatus(v).Valid() }, "customer status")
}

// EmployeeStatus is the employment state of an employee.
type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "ACTIVE"
	EmployeeInactive   EmployeeStatus = "INACTIVE"
	EmployeeTerminated EmployeeStatus = "TERMINATED"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeTerminated:
		return true
	}
	return false
}

func (s *EmployeeStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(s), func(v string) bool { return v == "" || EmployeeStatus(v).Valid() }, "employee status")
}

// DocumentType identifies the kind of identity document on file.
type DocumentType string

const (
	DocumentDNI           DocumentType = "DNI"
	DocumentCedula        DocumentType = "CEDULA"
	DocumentPassport      DocumentType = "PASSPORT"
	DocumentDriverLicense DocumentType = "DRIVER_LICENSE"
)

func (d DocumentType) Valid() bool {
	switch d {
	case DocumentDNI, DocumentCedula, DocumentPassport, DocumentDriverLicense:
		return true
	}
	return false
}

func (d *DocumentType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(d), func(v string) bool { return v == "" || DocumentType(v).Valid() }, "document type")
}

func unmarshalEnum(b []byte, dst *string, ok func(string) bool, name string) error {
	if string(b) == "null" {
		*dst = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if !ok(v) {
		return fmt.Errorf("invalid %s %q", name, v)
	}
	*dst = v
	return nil
}
