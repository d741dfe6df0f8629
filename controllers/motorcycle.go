package controllers

import (
	"errors"
	"net/http"
	"strings"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/sales"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MotorcycleInput is the body of motorcycle create and update calls
type MotorcycleInput struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	Year           int             `json:"year"`
	EngineCapacity int             `json:"engine_capacity"`
	Price          decimal.Decimal `json:"price"`
}

func (in MotorcycleInput) apply(m *models.Motorcycle) {
	m.Code = strings.TrimSpace(in.Code)
	m.Name = strings.TrimSpace(in.Name)
	m.Description = in.Description
	m.Brand = strings.TrimSpace(in.Brand)
	m.Model = strings.TrimSpace(in.Model)
	m.Year = in.Year
	m.EngineCapacity = in.EngineCapacity
	m.Price = models.RoundMoney(in.Price)
}

// CreateMotorcycle adds a motorcycle to the catalogue
func CreateMotorcycle(c *gin.Context) {
	var input MotorcycleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var motorcycle models.Motorcycle
	input.apply(&motorcycle)
	if v := motorcycle.Validate(localNow()); !v.Empty() {
		utils.RespondWithViolations(c, v)
		return
	}

	if codeTaken(c, motorcycle.Code, 0) {
		return
	}

	if err := config.DB.Create(&motorcycle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create motorcycle")
		return
	}

	c.JSON(http.StatusCreated, motorcycle)
}

// GetMotorcycles lists the whole catalogue
func GetMotorcycles(c *gin.Context) {
	motorcycles := []models.Motorcycle{}
	if err := config.DB.Order("id").Find(&motorcycles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve motorcycles")
		return
	}

	c.JSON(http.StatusOK, motorcycles)
}

func GetMotorcycle(c *gin.Context) {
	id, ok := parseID(c, "id", "motorcycle")
	if !ok {
		return
	}

	var motorcycle models.Motorcycle
	if err := config.DB.First(&motorcycle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Motorcycle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, motorcycle)
}

// UpdateMotorcycle replaces the editable fields of a motorcycle. Prices
// already captured on sale lines are not touched.
func UpdateMotorcycle(c *gin.Context) {
	id, ok := parseID(c, "id", "motorcycle")
	if !ok {
		return
	}

	var input MotorcycleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing motorcycle
	var motorcycle models.Motorcycle
	if err := config.DB.First(&motorcycle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Motorcycle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	input.apply(&motorcycle)
	if v := motorcycle.Validate(localNow()); !v.Empty() {
		utils.RespondWithViolations(c, v)
		return
	}
	if codeTaken(c, motorcycle.Code, motorcycle.ID) {
		return
	}

	if err := config.DB.Save(&motorcycle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update motorcycle")
		return
	}

	c.JSON(http.StatusOK, motorcycle)
}

// DeleteMotorcycle removes a motorcycle that no sale refers to
func DeleteMotorcycle(c *gin.Context) {
	id, ok := parseID(c, "id", "motorcycle")
	if !ok {
		return
	}
	if !recordExists(c, sales.KindMotorcycle, id) || !guardDelete(c, sales.KindMotorcycle, id) {
		return
	}

	result := config.DB.Delete(&models.Motorcycle{}, id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete motorcycle")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Motorcycle deleted successfully"})
}

func codeTaken(c *gin.Context, code string, selfID uint) bool {
	var count int64
	q := config.DB.Model(&models.Motorcycle{}).Where("code = ?", code)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return true
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Motorcycle with this code already exists")
		return true
	}
	return false
}
