package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hostel-portal/auth-service/internal/auth"
	"github.com/hostel-portal/auth-service/internal/events"
	"github.com/hostel-portal/auth-service/internal/mailer"
	"github.com/hostel-portal/auth-service/internal/repositories"
	"github.com/hostel-portal/auth-service/internal/validator"
)

// Dependencies carries everything the services are built from. All fields
// are required.
type Dependencies struct {
	Repo        repositories.Repository
	OTPStore    auth.OTPStore
	Hasher      *auth.PasswordHasher
	Tokens      *auth.TokenService
	Mailer      mailer.Mailer
	Publisher   events.EventPublisher
	Validator   *validator.Validator
	Logger      *slog.Logger
	OTPValidity time.Duration
}

type serviceManager struct {
	deps Dependencies

	authService AuthService
	userService UserService

	initialized bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager from explicit dependencies.
func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{deps: deps}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	sm.authService = &authService{
		repo:        sm.deps.Repo,
		otp:         sm.deps.OTPStore,
		hasher:      sm.deps.Hasher,
		tokens:      sm.deps.Tokens,
		mailer:      sm.deps.Mailer,
		publisher:   sm.deps.Publisher,
		validator:   sm.deps.Validator,
		logger:      sm.deps.Logger,
		otpValidity: sm.deps.OTPValidity,
	}

	sm.userService = &userService{
		repo:      sm.deps.Repo,
		publisher: sm.deps.Publisher,
		validator: sm.deps.Validator,
		logger:    sm.deps.Logger,
	}

	sm.initialized = true
	sm.deps.Logger.Info("services initialized")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.userService
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}
	sm.initialized = false

	return sm.deps.Publisher.Close()
}
