package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/repositories"
	"github.com/hostel-portal/auth-service/internal/services"
	"github.com/hostel-portal/auth-service/internal/utils"
)

// UserHandler exposes profile reads, the two partial-update paths, and the
// admin listing/export surface.
type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Me returns the authenticated user's own record, minus the credential.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the authenticated user's own
// student-profile fields.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /auth/update-profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Updating own profile")

	profile, err := h.service.UpdateOwnProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Message: "Profile updated successfully",
		User:    profile,
	})
}

// AdminUpdateUser applies an allow-listed partial update to the user
// matching the userId path parameter.
// @Summary Update any user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "Target login identifier"
// @Param request body models.AdminUpdateUserRequest true "Fields to change"
// @Success 200 {object} models.ProfileResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /auth/update-user/{userId} [put]
func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	targetUserID := c.Param("userId")
	if targetUserID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "UserId is required"})
		return
	}

	var req models.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Admin updating user", "target_user_id", targetUserID)

	profile, err := h.service.AdminUpdateUser(c.Request.Context(), targetUserID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Message: "User updated successfully",
		User:    profile,
	})
}

// ListUsers returns a page of user profiles for the admin console.
// @Summary List users (admin)
// @Tags users
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param q query string false "Search query (userId or email)"
// @Param role query string false "Filter by role (Student, Mess, Admin)"
// @Success 200 {object} models.UserListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /auth/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	resp, err := h.service.ListUsers(c.Request.Context(), h.parseUserFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportUsers streams the user directory as an xlsx workbook.
// @Summary Export users as xlsx (admin)
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /auth/users/export [get]
func (h *UserHandler) ExportUsers(c *gin.Context) {
	h.LogRequest(c, "Exporting users")

	data, err := h.service.ExportUsers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	page := 1
	size := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	filters := repositories.UserFilters{
		Query:  c.Query("q"),
		Limit:  size,
		Offset: (page - 1) * size,
	}

	if roleStr := c.Query("role"); roleStr != "" {
		role := models.UserRole(roleStr)
		if models.ValidRole(role) {
			filters.Role = &role
		}
	}

	return filters
}
