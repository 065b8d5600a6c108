package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hostel-portal/auth-service/internal/auth"
	"github.com/hostel-portal/auth-service/internal/models"
)

const (
	contextUserIDKey   = "user_id"
	contextUserRoleKey = "user_role"
)

// JWTAuthMiddleware is the authentication gate: it verifies the bearer
// token on every protected request and attaches the verified claims to the
// request context. It never touches the store.
type JWTAuthMiddleware struct {
	tokens *auth.TokenService
}

func NewJWTAuthMiddleware(tokens *auth.TokenService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens}
}

// AuthMiddleware rejects requests without a valid "Bearer <token>"
// Authorization header and short-circuits the pipeline with 401.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "No token provided"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid token format"})
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			message := "Token is invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Token is expired"
			}
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: message})
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRoleMiddleware is the authorization gate: it permits only requests
// whose verified role is a member of the allowed set. Membership is strict;
// there is no implicit admin bypass.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(contextUserRoleKey)
		if !exists {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access denied"})
			c.Abort()
			return
		}

		role, ok := value.(models.UserRole)
		if !ok || role == "" {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access denied"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{Message: "You are not allowed to access this resource"})
		c.Abort()
	}
}

// GetUserIDFromContext extracts the verified internal user id set by the
// auth gate.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	value, exists := c.Get(contextUserIDKey)
	if !exists {
		return "", fmt.Errorf("user id not found in context")
	}

	id, ok := value.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid user id in context")
	}
	return id, nil
}

// GetUserRoleFromContext extracts the verified role set by the auth gate.
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	value, exists := c.Get(contextUserRoleKey)
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := value.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role in context")
	}
	return role, nil
}
