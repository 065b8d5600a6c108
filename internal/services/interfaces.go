package services

import (
	"context"

	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/repositories"
)

// AuthService orchestrates the registration and login pipeline: OTP
// issuance and delivery, OTP-verified account creation, and credentialed
// token issuance.
type AuthService interface {
	SendOTP(ctx context.Context, req *models.SendOTPRequest) error
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// UserService serves profile reads and the two partial-update paths
// (self-service and admin), plus the admin listing/export surface.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpdateOwnProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.Profile, error)
	AdminUpdateUser(ctx context.Context, targetUserID string, req *models.AdminUpdateUserRequest) (*models.Profile, error)
	ListUsers(ctx context.Context, filters repositories.UserFilters) (*models.UserListResponse, error)
	ExportUsers(ctx context.Context) ([]byte, error)
}

// ServiceManager wires service instances and manages their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	User() UserService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
