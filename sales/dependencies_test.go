package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorcycles-backend/models"
)

func fixtureSales() []models.Sale {
	return []models.Sale{
		{SaleNumber: "SALE-1", Customer: &models.Customer{ID: 1}, Employee: &models.Employee{ID: 2},
			Details: []models.DetailSale{{Motorcycle: &models.Motorcycle{ID: 7}}, {MotorcycleID: 8}}},
		{SaleNumber: "SALE-2", CustomerID: 3, EmployeeID: 2,
			Details: []models.DetailSale{{MotorcycleID: 9}}},
		{SaleNumber: "SALE-3", CustomerID: 1, EmployeeID: 4,
			Details: []models.DetailSale{{MotorcycleID: 7}}},
	}
}

func TestCheckDependencies(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		id   uint
		want []string
	}{
		{"motorcycle in two sales", KindMotorcycle, 7, []string{"Sale SALE-1", "Sale SALE-3"}},
		{"motorcycle on second line", KindMotorcycle, 8, []string{"Sale SALE-1"}},
		{"customer", KindCustomer, 1, []string{"Sale SALE-1", "Sale SALE-3"}},
		{"employee", KindEmployee, 2, []string{"Sale SALE-1", "Sale SALE-2"}},
		{"unreferenced motorcycle", KindMotorcycle, 99, []string{}},
		{"unreferenced customer", KindCustomer, 2, []string{}},
		{"zero id", KindEmployee, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckDependencies(fixtureSales(), tt.kind, tt.id)

			assert.Equal(t, tt.want, r.Dependencies)
			assert.Equal(t, len(tt.want) == 0, r.CanDelete)
			assert.NotEmpty(t, r.Message)
		})
	}
}

func TestCheckDependenciesEmptyList(t *testing.T) {
	r := CheckDependencies(nil, KindMotorcycle, 7)

	assert.True(t, r.CanDelete)
	assert.NotNil(t, r.Dependencies)
	assert.Empty(t, r.Dependencies)
}

func TestCheckDependenciesMessage(t *testing.T) {
	r := CheckDependencies(fixtureSales(), KindMotorcycle, 9)

	assert.False(t, r.CanDelete)
	assert.Equal(t, "This motorcycle cannot be deleted because it is used in 1 sale(s).", r.Message)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Motorcycles")
	require.NoError(t, err)
	assert.Equal(t, KindMotorcycle, k)

	k, err = ParseKind("customer")
	require.NoError(t, err)
	assert.Equal(t, KindCustomer, k)

	_, err = ParseKind("sales")
	assert.Error(t, err)
}
