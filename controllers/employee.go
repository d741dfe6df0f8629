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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeInput struct {
	FirstName       string                `json:"firstName"`
	LastName        string                `json:"lastName"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	DocumentType    models.DocumentType   `json:"documentType"`
	DocumentNumber  string                `json:"documentNumber"`
	Address         string                `json:"address"`
	City            string                `json:"city"`
	State           string                `json:"state"`
	ZipCode         string                `json:"zipCode"`
	Country         string                `json:"country"`
	JobTitle        string                `json:"jobTitle"`
	Salary          *decimal.Decimal      `json:"salary"`
	HireDate        string                `json:"hireDate"`
	TerminationDate string                `json:"terminationDate"`
	Status          models.EmployeeStatus `json:"status"`
	Notes           string                `json:"notes"`
}

func (in EmployeeInput) apply(e *models.Employee) validation.Violations {
	e.FirstName = strings.TrimSpace(in.FirstName)
	e.LastName = strings.TrimSpace(in.LastName)
	e.Email = strings.ToLower(strings.TrimSpace(in.Email))
	e.Phone = strings.TrimSpace(in.Phone)
	e.DocumentType = in.DocumentType
	e.DocumentNumber = optionalString(in.DocumentNumber)
	e.Address = strings.TrimSpace(in.Address)
	e.City = strings.TrimSpace(in.City)
	e.State = strings.TrimSpace(in.State)
	e.ZipCode = strings.TrimSpace(in.ZipCode)
	e.Country = strings.TrimSpace(in.Country)
	e.JobTitle = strings.TrimSpace(in.JobTitle)
	e.Notes = in.Notes
	e.Salary = decimal.NullDecimal{}
	if in.Salary != nil {
		e.Salary = decimal.NewNullDecimal(models.RoundMoney(*in.Salary))
	}
	if in.Status != "" {
		e.Status = in.Status
	} else if e.Status == "" {
		e.Status = models.EmployeeActive
	}

	dateErrs := validation.Violations{}
	hire, err := utils.ParseOptionalDate(in.HireDate, location())
	if err != nil {
		dateErrs.Add("hireDate", "hireDate is not a valid date")
	}
	e.HireDate = hire
	term, err := utils.ParseOptionalDate(in.TerminationDate, location())
	if err != nil {
		dateErrs.Add("terminationDate", "terminationDate is not a valid date")
	}
	e.TerminationDate = term

	v := e.Validate(localNow())
	v.Merge("", dateErrs)
	return v
}

// AddEmployee creates a new employee
func AddEmployee(c *gin.Context) {
	var input EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if v := input.apply(&employee); !v.Empty() {
		utils.RespondWithViolations(c, v)
		return
	}
	if personTaken(c, &models.Employee{}, employee.Email, employee.DocumentNumber, 0, "Employee") {
		return
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func GetEmployees(c *gin.Context) {
	employees := []models.Employee{}
	if err := config.DB.Order("id").Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

func GetEmployee(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, employee)
}

func UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	var input EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if v := input.apply(&employee); !v.Empty() {
		utils.RespondWithViolations(c, v)
		return
	}
	if personTaken(c, &models.Employee{}, employee.Email, employee.DocumentNumber, employee.ID, "Employee") {
		return
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

func DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}
	if !recordExists(c, sales.KindEmployee, id) || !guardDelete(c, sales.KindEmployee, id) {
		return
	}

	result := config.DB.Delete(&models.Employee{}, id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
