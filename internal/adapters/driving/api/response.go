package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// Response represents a standard API response.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternalError = "INTERNAL_ERROR"
)

// success sends a 200 response carrying data.
func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// fail sends an error response and stops the handler chain.
func fail(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, CodeBadRequest, message)
}

func notFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, CodeNotFound, message)
}

// failWith maps a service error onto a status code.
// Internal failures are logged and reported without their cause.
func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		badRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		notFound(c, err.Error())
	default:
		requestLogger(c).Error().Err(err).Msg("request failed")
		fail(c, http.StatusInternalServerError, CodeInternalError, "internal error")
	}
}
