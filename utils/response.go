// utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motorcycles-backend/validation"
)

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithViolations answers 422 with the field-scoped messages under "details"
func RespondWithViolations(c *gin.Context, v validation.Violations) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": v,
	})
}
