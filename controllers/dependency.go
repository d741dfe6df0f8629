package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/sales"
	"motorcycles-backend/services"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CheckDependencies returns a handler reporting whether the :id record of
// kind is still referenced by sales.
func CheckDependencies(kind sales.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id", string(kind))
		if !ok {
			return
		}
		if !recordExists(c, kind, id) {
			return
		}
		report, err := services.NewDependencyService(config.DB).Check(c.Request.Context(), kind, id)
		if err != nil {
			slog.Error("dependency check failed", "kind", kind, "id", id, "error", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Error checking dependencies")
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// guardDelete answers 409 with the dependency report when the record is in
// use, and returns false in that case.
func guardDelete(c *gin.Context, kind sales.Kind, id uint) bool {
	report, err := services.NewDependencyService(config.DB).Check(c.Request.Context(), kind, id)
	if err != nil {
		slog.Error("dependency check failed", "kind", kind, "id", id, "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Error checking dependencies")
		return false
	}
	if !report.CanDelete {
		c.JSON(http.StatusConflict, report)
		return false
	}
	return true
}

func recordExists(c *gin.Context, kind sales.Kind, id uint) bool {
	var model interface{}
	var label string
	switch kind {
	case sales.KindCustomer:
		model, label = &models.Customer{}, "Customer"
	case sales.KindEmployee:
		model, label = &models.Employee{}, "Employee"
	default:
		model, label = &models.Motorcycle{}, "Motorcycle"
	}
	if err := config.DB.First(model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, label+" not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return false
	}
	return true
}
