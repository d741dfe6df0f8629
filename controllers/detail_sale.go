package controllers

import (
	"errors"
	"net/http"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sale lines are read only here; they change through the sale endpoints.

func GetDetailSales(c *gin.Context) {
	details := []models.DetailSale{}
	if err := config.DB.Preload("Motorcycle").Order("id").Find(&details).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sale details")
		return
	}

	c.JSON(http.StatusOK, details)
}

func GetDetailSale(c *gin.Context) {
	id, ok := parseID(c, "id", "detail")
	if !ok {
		return
	}

	var detail models.DetailSale
	if err := config.DB.Preload("Motorcycle").First(&detail, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale detail not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetDetailSalesBySale lists the lines of one sale in entry order
func GetDetailSalesBySale(c *gin.Context) {
	saleID, ok := parseID(c, "saleId", "sale")
	if !ok {
		return
	}

	details := []models.DetailSale{}
	if err := config.DB.Preload("Motorcycle").Where("sale_id = ?", saleID).Order("id").Find(&details).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sale details")
		return
	}

	c.JSON(http.StatusOK, details)
}
