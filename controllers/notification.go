package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/services"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetNotificationLogs lists receipt delivery attempts, newest first.
// ?status=sent|failed narrows the list; ?limit caps it (default 100).
func GetNotificationLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	q := config.DB.Order("created_at DESC, id DESC").Limit(limit)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	logs := []models.NotificationLog{}
	if err := q.Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// GetSaleNotifications lists the delivery attempts for one sale
func GetSaleNotifications(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	logs := []models.NotificationLog{}
	if err := config.DB.Where("sale_id = ?", id).Order("created_at DESC, id DESC").Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// SendReceipt sends the sale receipt to the customer again
func (sc *SaleController) SendReceipt(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	if err := sc.Service.ResendReceipt(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrNotificationsDisabled) {
			respondServiceError(c, err, "Sale")
			return
		}
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send receipt: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Receipt sent successfully"})
}
