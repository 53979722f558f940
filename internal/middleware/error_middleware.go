package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

const internalErrorMessage = "Internal server error"

// RespondOK writes data in a successful envelope
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Success(data))
}

// HandleAPIError translates err into a status code and a failed envelope.
// It is the only place that decides how an error kind reaches the client.
func HandleAPIError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("requestId", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		if c.GetBool(hideDetailsKey) {
			message = internalErrorMessage
		}
	}

	c.AbortWithStatusJSON(status, dto.Failure(message))
}

// StatusFor maps an error onto its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		// ErrNotConnected, ErrDatabase and anything unrecognised
		return http.StatusInternalServerError
	}
}

// RouteNotFound answers every unmatched route
func RouteNotFound(c *gin.Context) {
	HandleAPIError(c, apperrors.NewResourceNotFoundError("Route not found"))
}

// Recovery turns a panic in a later handler into a 500 envelope
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				c.Header("Connection", "close")
				HandleAPIError(c, fmt.Errorf("panic: %v", rec))
			}
		}()
		c.Next()
	}
}
