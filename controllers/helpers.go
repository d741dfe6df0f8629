package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"motorcycles-backend/config"
	"motorcycles-backend/services"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseID reads the numeric :name path parameter, answering 400 when it is not one.
func parseID(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return 0, false
	}
	return uint(id), true
}

func location() *time.Location {
	if config.AppConfig != nil {
		return config.AppConfig.Location()
	}
	return time.UTC
}

func localNow() time.Time {
	return time.Now().In(location())
}

// respondServiceError maps service errors onto HTTP answers.
func respondServiceError(c *gin.Context, err error, what string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithViolations(c, verr.Violations)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, services.ErrReferenceNotFound):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateSaleNumber):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotificationsDisabled):
		utils.RespondWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("request failed", "path", c.Request.URL.Path, "request_id", c.GetString(config.RequestIDKey), "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
