package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostel-portal/auth-service/internal/auth"
	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/services"
	"github.com/hostel-portal/auth-service/internal/utils"
)

// HandlerManager wires the handlers and middleware onto the router.
type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	authMiddleware *JWTAuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, tokens *auth.TokenService, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		authMiddleware: NewJWTAuthMiddleware(tokens),
	}
}

// SetupRoutes registers the full route table. Everything under the
// authenticated group passes the auth gate first; role-gated routes add a
// role check on top.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api/auth")
	{
		api.POST("/send-otp", hm.authHandler.SendOTP)
		api.POST("/register", hm.authHandler.Register)
		api.POST("/login", hm.authHandler.Login)

		authenticated := api.Group("")
		authenticated.Use(hm.authMiddleware.AuthMiddleware())
		{
			authenticated.GET("/me", hm.userHandler.Me)
			authenticated.PUT("/update-profile", hm.userHandler.UpdateProfile)

			authenticated.GET("/student",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent),
				roleWelcome("Student"))
			authenticated.GET("/mess",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleMess),
				roleWelcome("Mess"))
			authenticated.GET("/admin",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin),
				roleWelcome("Admin"))

			admin := authenticated.Group("")
			admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
			{
				admin.PUT("/update-user/:userId", hm.userHandler.AdminUpdateUser)
				admin.GET("/users", hm.userHandler.ListUsers)
				admin.GET("/users/export", hm.userHandler.ExportUsers)
			}
		}
	}
}

func roleWelcome(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome " + role})
	}
}
