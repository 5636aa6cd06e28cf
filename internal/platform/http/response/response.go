// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube_backend/internal/shared/apperror"
)

// Envelope wraps every response body.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// OK writes a successful envelope. success is derived from status.
func OK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error maps err to its kind's status and writes a failed envelope.
// Internal errors are logged and their details withheld from the client.
func Error(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
			"remote_addr", c.ClientIP(),
		)
	}
	Abort(c, kind.HTTPStatus(), apperror.MessageOf(err))
}

// Abort writes a failed envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}
