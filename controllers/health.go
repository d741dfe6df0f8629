package controllers

import (
	"database/sql"
	"errors"
	"net/http"

	"motorcycles-backend/config"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "motorcycles-backend"
	Version     = "1.0.0"
)

// Health reports whether the service and its database answer
func Health(c *gin.Context) {
	body := gin.H{"status": "ok", "service": ServiceName, "version": Version}

	err := errors.New("database not connected")
	if config.DB != nil {
		var sqlDB *sql.DB
		if sqlDB, err = config.DB.DB(); err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
	}
	if err != nil {
		body["status"] = "unavailable"
		body["error"] = "database unreachable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	c.JSON(http.StatusOK, body)
}
