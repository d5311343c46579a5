// Package response writes JSON error bodies for the typed errors of the
// service layer.
package response

import (
	"errors"
	"log"
	"net/http"

	"taskflow-backend/internal/shared"

	"github.com/gin-gonic/gin"
)

// Status maps err to an HTTP status code.
func Status(err error) int {
	var validation *shared.ValidationError
	var transition *shared.InvalidStateTransitionError
	var notFound *shared.NotFoundError
	var conflict *shared.ConflictError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &transition), errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts the request with the status and body that match err.
// Unexpected errors are logged and hidden behind a generic message.
func Error(c *gin.Context, err error) {
	status := Status(err)
	body := gin.H{"error": err.Error()}

	var validation *shared.ValidationError
	var conflict *shared.ConflictError
	switch {
	case errors.As(err, &validation):
		body["field"] = validation.Field
	case errors.As(err, &conflict):
		body["field"] = conflict.Field
	case status == http.StatusInternalServerError:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		body["error"] = "internal server error"
	}

	c.AbortWithStatusJSON(status, body)
}

// BadRequest reports a request body or query that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
