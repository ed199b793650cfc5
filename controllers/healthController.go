package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns a fixed OK payload with no side effects.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "API is running"})
}
