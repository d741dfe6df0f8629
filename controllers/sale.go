// controllers/sale.go
package controllers

import (
	"net/http"

	"motorcycles-backend/models"
	"motorcycles-backend/services"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
)

// SaleController exposes sales. Creation and update go through the sale
// engine so totals are always derived from the submitted lines.
type SaleController struct {
	Service *services.SaleService
}

func (sc *SaleController) CreateSale(c *gin.Context) {
	var input models.SalePayload
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sale, err := sc.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Sale")
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (sc *SaleController) GetSales(c *gin.Context) {
	list, err := sc.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Sale")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (sc *SaleController) GetSale(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := sc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Sale")
		return
	}

	c.JSON(http.StatusOK, sale)
}

// UpdateSale replaces the header and all lines of a sale
func (sc *SaleController) UpdateSale(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	var input models.SalePayload
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sale, err := sc.Service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Sale")
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (sc *SaleController) DeleteSale(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	if err := sc.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Sale")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}
