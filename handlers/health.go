package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns a lightweight, unauthenticated status payload for
// uptime monitoring and load balancers.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "bookshelf-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
