package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hostel-portal/auth-service/internal/auth"
	"github.com/hostel-portal/auth-service/internal/events"
	"github.com/hostel-portal/auth-service/internal/mailer"
	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/repositories"
	"github.com/hostel-portal/auth-service/internal/validator"
)

const otpMailSubject = "Hostel Portal OTP Verification"

type authService struct {
	repo        repositories.Repository
	otp         auth.OTPStore
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
	mailer      mailer.Mailer
	publisher   events.EventPublisher
	validator   *validator.Validator
	logger      *slog.Logger
	otpValidity time.Duration
}

// SendOTP validates the address, issues a fresh code (overwriting any
// pending one) and delivers it by mail. The code stays issued even when
// delivery fails, so an immediate retry can succeed against the same code
// window.
func (s *authService) SendOTP(ctx context.Context, req *models.SendOTPRequest) error {
	if req.Email == "" || !validator.IsValidEmail(req.Email) {
		return ErrInvalidEmail
	}

	code, err := s.otp.Issue(req.Email)
	if err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	body := fmt.Sprintf("Your OTP is %s. It is valid for %d minutes.", code, int(s.otpValidity.Minutes()))
	if err := s.mailer.Send(ctx, req.Email, otpMailSubject, body); err != nil {
		s.logger.Error("otp mail delivery failed", "email", req.Email, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.publish(ctx, events.EventOTPRequested, map[string]string{"email": req.Email})

	return nil
}

// Register creates an account once the supplied OTP proves control of the
// email address. The OTP is consumed exactly once, on success.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}
	if !validator.IsValidEmail(req.Email) {
		return ErrInvalidEmail
	}

	if !s.otp.Pending(req.Email) {
		return ErrOTPNotSent
	}
	if !s.otp.Verify(req.Email, req.OTP) {
		return ErrInvalidOTP
	}
	s.otp.Consume(req.Email)

	exists, err := s.repo.User().ExistsByUserID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return ErrConflict
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		UserID:       req.UserID,
		Role:         req.Role,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: hash,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.publish(ctx, events.EventUserRegistered, map[string]string{
		"userId": user.UserID,
		"role":   string(user.Role),
	})

	return nil
}

// Login verifies credentials by userId and issues a session token embedding
// the internal id and role.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	user, err := s.repo.User().GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		Role:    user.Role,
		UserID:  user.UserID,
	}, nil
}

// publish emits a domain event; failures are logged, never surfaced.
func (s *authService) publish(ctx context.Context, eventType string, data interface{}) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Warn("event publish failed", "event_type", eventType, "error", err)
	}
}
