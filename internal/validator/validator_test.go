package validator

import (
	"testing"

	"github.com/hostel-portal/auth-service/internal/models"
)

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last@hostel.edu.in", true},
		{"user+tag@example.org", true},
		{"", false},
		{"plainaddress", false},
		{"no-domain@", false},
		{"@no-local.com", false},
		{"no tld@domain", false},
		{"spaces in@local.com", false},
	}

	for _, tc := range cases {
		if got := IsValidEmail(tc.email); got != tc.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	v := New()

	t.Run("valid request passes", func(t *testing.T) {
		req := models.RegisterRequest{
			UserID:   "21BCS001",
			Role:     models.RoleStudent,
			Email:    "a@b.com",
			OTP:      "123456",
			Mobile:   "9876543210",
			Password: "secret123",
		}
		if errs := v.Validate(&req); errs != nil {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("missing fields are reported", func(t *testing.T) {
		errs := v.Validate(&models.RegisterRequest{})
		if len(errs) == 0 {
			t.Fatal("expected validation errors for empty request")
		}
	})

	t.Run("role outside enum is rejected", func(t *testing.T) {
		req := models.RegisterRequest{
			UserID:   "21BCS001",
			Role:     "Warden",
			Email:    "a@b.com",
			OTP:      "123456",
			Mobile:   "9876543210",
			Password: "secret123",
		}
		errs := v.Validate(&req)
		if len(errs) != 1 {
			t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
		}
		if errs[0].Rule != "user_role" {
			t.Errorf("expected user_role rule, got %s", errs[0].Rule)
		}
	})
}
