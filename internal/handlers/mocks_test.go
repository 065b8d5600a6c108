package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hostel-portal/auth-service/internal/auth"
	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/repositories"
	"github.com/hostel-portal/auth-service/internal/services"
	"github.com/hostel-portal/auth-service/internal/utils"
)

type mockAuthService struct {
	sendOTPErr  error
	registerErr error
	loginResp   *models.LoginResponse
	loginErr    error

	lastSendOTP  *models.SendOTPRequest
	lastRegister *models.RegisterRequest
	lastLogin    *models.LoginRequest
}

func (m *mockAuthService) SendOTP(ctx context.Context, req *models.SendOTPRequest) error {
	m.lastSendOTP = req
	return m.sendOTPErr
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) error {
	m.lastRegister = req
	return m.registerErr
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	m.lastLogin = req
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResp, nil
}

type mockUserService struct {
	profile    *models.Profile
	profileErr error
	listResp   *models.UserListResponse
	exportData []byte

	lastProfileID   string
	lastUpdateID    string
	lastUpdate      *models.UpdateProfileRequest
	lastAdminTarget string
	lastAdminUpdate *models.AdminUpdateUserRequest
	lastFilters     repositories.UserFilters
}

func (m *mockUserService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	m.lastProfileID = id
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profile, nil
}

func (m *mockUserService) UpdateOwnProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	m.lastUpdateID = id
	m.lastUpdate = req
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profile, nil
}

func (m *mockUserService) AdminUpdateUser(ctx context.Context, targetUserID string, req *models.AdminUpdateUserRequest) (*models.Profile, error) {
	m.lastAdminTarget = targetUserID
	m.lastAdminUpdate = req
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profile, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, filters repositories.UserFilters) (*models.UserListResponse, error) {
	m.lastFilters = filters
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.listResp, nil
}

func (m *mockUserService) ExportUsers(ctx context.Context) ([]byte, error) {
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.exportData, nil
}

type mockServiceManager struct {
	auth services.AuthService
	user services.UserService
}

func (m *mockServiceManager) Auth() services.AuthService           { return m.auth }
func (m *mockServiceManager) User() services.UserService           { return m.user }
func (m *mockServiceManager) Initialize(ctx context.Context) error { return nil }
func (m *mockServiceManager) Shutdown(ctx context.Context) error   { return nil }

type routerEnv struct {
	router *gin.Engine
	auth   *mockAuthService
	user   *mockUserService
	tokens *auth.TokenService
}

func newRouterEnv() *routerEnv {
	gin.SetMode(gin.TestMode)

	env := &routerEnv{
		auth:   &mockAuthService{},
		user:   &mockUserService{},
		tokens: auth.NewTokenService("test-secret", time.Hour),
	}

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	manager := &mockServiceManager{auth: env.auth, user: env.user}

	env.router = gin.New()
	hm := NewHandlerManager(manager, env.tokens, logger)
	hm.SetupRoutes(env.router)

	return env
}

func (env *routerEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func newRecorder(env *routerEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *routerEnv) tokenFor(role models.UserRole) string {
	token, err := env.tokens.Issue("64a1f0c2e4b0a1b2c3d4e5f6", role)
	if err != nil {
		panic(err)
	}
	return token
}
