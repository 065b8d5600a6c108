package services

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostel-portal/auth-service/internal/auth"
	"github.com/hostel-portal/auth-service/internal/events"
	"github.com/hostel-portal/auth-service/internal/mailer"
	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/repositories"
	"github.com/hostel-portal/auth-service/internal/validator"
)

// memoryUserRepository is an in-memory stand-in for the mongo repository,
// honoring the same uniqueness and not-found semantics.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by internal id hex
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*models.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.UserID == user.UserID || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}

	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.UserID = strings.TrimSpace(user.UserID)
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID.Hex()] = &clone
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryUserRepository) GetByUserID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.UserID == userID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryUserRepository) ExistsByUserID(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepository) UpdateByID(_ context.Context, id string, update repositories.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.apply(u, update), nil
}

func (r *memoryUserRepository) UpdateByUserID(_ context.Context, userID string, update repositories.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.UserID == userID {
			return r.apply(u, update), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryUserRepository) apply(u *models.User, update repositories.UserUpdate) *models.User {
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Mobile != nil {
		u.Mobile = *update.Mobile
	}
	if update.HostelBlock != nil {
		u.HostelBlock = *update.HostelBlock
	}
	if update.RoomNumber != nil {
		u.RoomNumber = *update.RoomNumber
	}
	if update.CourseYear != nil {
		u.CourseYear = *update.CourseYear
	}
	if update.Branch != nil {
		u.Branch = *update.Branch
	}
	if update.IsInactiveToday != nil {
		u.IsInactiveToday = *update.IsInactiveToday
	}
	u.UpdatedAt = time.Now().UTC()

	clone := *u
	return &clone
}

func (r *memoryUserRepository) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*models.User
	for _, u := range r.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		clone := *u
		all = append(all, &clone)
	}
	return all, int64(len(all)), nil
}

type memoryRepository struct {
	users *memoryUserRepository
}

func (r *memoryRepository) User() repositories.UserRepository { return r.users }
func (r *memoryRepository) Ping(_ context.Context) error      { return nil }
func (r *memoryRepository) Close(_ context.Context) error     { return nil }

// testEnv bundles a fully wired service manager with its fakes.
type testEnv struct {
	manager   ServiceManager
	repo      *memoryRepository
	mailer    *mailer.MockMailer
	publisher *events.MockEventPublisher
	otp       auth.OTPStore
	tokens    *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := &memoryRepository{users: newMemoryUserRepository()}
	mockMailer := mailer.NewMockMailer()
	mockPublisher := events.NewMockEventPublisher(logger)
	otpStore := auth.NewMemoryOTPStore(5 * time.Minute)
	tokens := auth.NewTokenService("test-secret", 24*time.Hour)

	manager := NewServiceManager(Dependencies{
		Repo:        repo,
		OTPStore:    otpStore,
		Hasher:      auth.NewPasswordHasher(4), // min-ish cost keeps tests fast
		Tokens:      tokens,
		Mailer:      mockMailer,
		Publisher:   mockPublisher,
		Validator:   validator.New(),
		Logger:      logger,
		OTPValidity: 5 * time.Minute,
	})
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize services: %v", err)
	}

	return &testEnv{
		manager:   manager,
		repo:      repo,
		mailer:    mockMailer,
		publisher: mockPublisher,
		otp:       otpStore,
		tokens:    tokens,
	}
}
