package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostel-portal/auth-service/internal/services"
	"github.com/hostel-portal/auth-service/internal/utils"
)

// ErrorResponse is the client-facing error body. Details stays empty for
// internal failures; operators get the cause from the logs instead.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the logging helpers shared by all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c, h.logger).Error(msg, args...)
}

// handleServiceError translates the service error taxonomy into HTTP
// statuses. Anything outside the taxonomy is logged in full and answered
// with a generic message.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid email address"})
	case errors.Is(err, services.ErrOTPNotSent):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "OTP not sent or expired"})
	case errors.Is(err, services.ErrInvalidOTP):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid OTP"})
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid password"})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Details: err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access denied"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "User already exists"})
	case errors.Is(err, services.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: "Failed to send OTP"})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server error"})
	}
}
