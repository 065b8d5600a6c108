package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/services"
	"github.com/hostel-portal/auth-service/internal/utils"
)

// AuthHandler exposes the registration and login pipeline.
type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SendOTP issues a verification code and mails it to the given address.
// @Summary Send a registration OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SendOTPRequest true "Target email"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid email address"
// @Failure 502 {object} ErrorResponse "Mail delivery failed"
// @Router /auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Sending OTP", "email", req.Email)

	if err := h.service.SendOTP(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "OTP sent to email"})
}

// Register creates an account after OTP verification.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration payload"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse "Missing fields, invalid email, or bad OTP"
// @Failure 409 {object} ErrorResponse "User already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Registering user", "user_id", req.UserID, "role", req.Role)

	if err := h.service.Register(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{Message: "User registered successfully"})
}

// Login verifies credentials and issues a session token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid password"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Logging in", "user_id", req.UserID)

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
