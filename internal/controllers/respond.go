package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/apperr"
)

// respondError maps a taxonomy error to its status code and writes the
// standard envelope.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal detail stays in the logs.
		msg = "internal server error"
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}
