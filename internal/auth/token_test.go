package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hostel-portal/auth-service/internal/models"
)

func TestTokenService(t *testing.T) {
	service := NewTokenService("test-secret", 24*time.Hour)

	t.Run("issued token round-trips id and role", func(t *testing.T) {
		token, err := service.Issue("64f0c2a1b3d4e5f601234567", models.RoleStudent)
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}
		if token == "" {
			t.Fatal("Issue returned an empty token")
		}

		claims, err := service.Verify(token)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if claims.UserID != "64f0c2a1b3d4e5f601234567" {
			t.Errorf("expected user id to round-trip, got %q", claims.UserID)
		}
		if claims.Role != models.RoleStudent {
			t.Errorf("expected role Student, got %q", claims.Role)
		}
	})

	t.Run("tampered signature fails", func(t *testing.T) {
		token, _ := service.Issue("64f0c2a1b3d4e5f601234567", models.RoleAdmin)

		parts := strings.Split(token, ".")
		parts[2] = "AAAA" + parts[2][4:]
		tampered := strings.Join(parts, ".")

		if _, err := service.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		other := NewTokenService("different-secret", 24*time.Hour)
		token, _ := other.Issue("64f0c2a1b3d4e5f601234567", models.RoleMess)

		if _, err := service.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage token fails", func(t *testing.T) {
		if _, err := service.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token fails with expiry error", func(t *testing.T) {
		svc := NewTokenService("test-secret", time.Hour)
		token, _ := svc.Issue("64f0c2a1b3d4e5f601234567", models.RoleStudent)

		svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

		_, err := svc.Verify(token)
		if !errors.Is(err, ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
		if errors.Is(err, ErrInvalidToken) {
			t.Error("expiry must be distinguishable from signature failure")
		}
	})
}
