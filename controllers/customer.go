package controllers

import (
	"errors"
	"net/http"
	"strings"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/sales"
	"motorcycles-backend/utils"
	"motorcycles-backend/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CustomerInput defines the expected JSON structure for creating or updating a customer
type CustomerInput struct {
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone"`
	DocumentType   models.DocumentType   `json:"documentType"`
	DocumentNumber string                `json:"documentNumber"`
	Address        string                `json:"address"`
	City           string                `json:"city"`
	State          string                `json:"state"`
	ZipCode        string                `json:"zipCode"`
	Country        string                `json:"country"`
	BirthDate      string                `json:"birthDate"` // YYYY-MM-DD or RFC 3339
	Status         models.CustomerStatus `json:"status"`
	Notes          string                `json:"notes"`
}

// apply copies the input onto customer and returns the violations found
func (in CustomerInput) apply(customer *models.Customer) validation.Violations {
	customer.FirstName = strings.TrimSpace(in.FirstName)
	customer.LastName = strings.TrimSpace(in.LastName)
	customer.Email = strings.ToLower(strings.TrimSpace(in.Email))
	customer.Phone = strings.TrimSpace(in.Phone)
	customer.DocumentType = in.DocumentType
	customer.DocumentNumber = optionalString(in.DocumentNumber)
	customer.Address = strings.TrimSpace(in.Address)
	customer.City = strings.TrimSpace(in.City)
	customer.State = strings.TrimSpace(in.State)
	customer.ZipCode = strings.TrimSpace(in.ZipCode)
	customer.Country = strings.TrimSpace(in.Country)
	customer.Notes = in.Notes
	if in.Status != "" {
		customer.Status = in.Status
	} else if customer.Status == "" {
		customer.Status = models.CustomerActive
	}

	v := customer.Validate()
	birthDate, err := utils.ParseOptionalDate(in.BirthDate, location())
	if err != nil {
		v.Add("birthDate", "birthDate is not a valid date")
	} else {
		customer.BirthDate = birthDate
	}
	return v
}

// CreateCustomer registers a new customer
func CreateCustomer(c *gin.Context) {
	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if v := input.apply(&customer); len(v) > 0 {
		utils.RespondWithViolations(c, v)
		return
	}

	// Check if email or document already exists
	if personTaken(c, &models.Customer{}, customer.Email, customer.DocumentNumber, 0, "Customer") {
		return
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers
func GetCustomers(c *gin.Context) {
	customers := []models.Customer{}
	if err := config.DB.Order("id").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing customer
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if v := input.apply(&customer); len(v) > 0 {
		utils.RespondWithViolations(c, v)
		return
	}
	if personTaken(c, &models.Customer{}, customer.Email, customer.DocumentNumber, customer.ID, "Customer") {
		return
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer deletes a customer without sales
func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}
	if !recordExists(c, sales.KindCustomer, id) || !guardDelete(c, sales.KindCustomer, id) {
		return
	}

	result := config.DB.Delete(&models.Customer{}, id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// personTaken answers 409 when another customer or employee already uses
// the email or document number.
func personTaken(c *gin.Context, model interface{}, email string, document *string, selfID uint, label string) bool {
	q := config.DB.Model(model).Where("email = ?", email)
	if document != nil {
		q = config.DB.Model(model).Where("(email = ? OR document_number = ?)", email, *document)
	}
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return true
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusConflict, label+" with this email or document already exists")
		return true
	}
	return false
}
