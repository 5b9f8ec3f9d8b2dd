package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// internalError records err for the request logger and answers a generic 500.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
