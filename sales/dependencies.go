package sales

import (
	"fmt"
	"strconv"
	"strings"

	"motorcycles-backend/models"
)

// Kind is an entity type that sales can reference.
type Kind string

const (
	KindCustomer   Kind = "customer"
	KindEmployee   Kind = "employee"
	KindMotorcycle Kind = "motorcycle"
)

// ParseKind accepts singular or plural names, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "customers":
		return KindCustomer, nil
	case "employee", "employees":
		return KindEmployee, nil
	case "motorcycle", "motorcycles":
		return KindMotorcycle, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// DependencyReport tells whether an entity can be deleted safely.
type DependencyReport struct {
	CanDelete    bool     `json:"canDelete"`
	Message      string   `json:"message"`
	Dependencies []string `json:"dependencies"`
}

// CheckDependencies scans sales for references to the entity of the given
// kind and id. Dependencies are listed as "Sale <saleNumber>" in scan order.
func CheckDependencies(list []models.Sale, kind Kind, id uint) DependencyReport {
	deps := []string{}
	for i := range list {
		if references(&list[i], kind, id) {
			deps = append(deps, "Sale "+list[i].SaleNumber)
		}
	}
	if len(deps) == 0 {
		return DependencyReport{
			CanDelete:    true,
			Message:      "The " + string(kind) + " can be deleted safely.",
			Dependencies: deps,
		}
	}
	return DependencyReport{
		CanDelete:    false,
		Message:      blockedMessage(kind, len(deps)),
		Dependencies: deps,
	}
}

func references(s *models.Sale, kind Kind, id uint) bool {
	if id == 0 {
		return false
	}
	switch kind {
	case KindCustomer:
		return s.CustomerRef() == id
	case KindEmployee:
		return s.EmployeeRef() == id
	case KindMotorcycle:
		for j := range s.Details {
			if s.Details[j].MotorcycleRef() == id {
				return true
			}
		}
	}
	return false
}

func blockedMessage(kind Kind, n int) string {
	count := strconv.Itoa(n) + " sale(s)"
	if kind == KindMotorcycle {
		return "This motorcycle cannot be deleted because it is used in " + count + "."
	}
	return "This " + string(kind) + " cannot be deleted because it has " + count + " on record."
}
