package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hostel-portal/auth-service/internal/models"
)

func TestAuthMiddleware(t *testing.T) {
	env := newRouterEnv()
	env.user.profile = &models.Profile{UserID: "B20CS001", Role: models.RoleStudent}

	t.Run("rejects request without token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/me", "", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Message != "No token provided" {
			t.Errorf("unexpected message %q", resp.Message)
		}
	})

	t.Run("rejects malformed authorization header", func(t *testing.T) {
		req := []struct {
			name   string
			header string
		}{
			{"bare scheme", "Bearer"},
			{"wrong scheme", "Basic abc123"},
			{"empty token", "Bearer "},
		}

		for _, tc := range req {
			t.Run(tc.name, func(t *testing.T) {
				r, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
				r.Header.Set("Authorization", tc.header)
				w := newRecorder(env, r)
				if w.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", w.Code)
				}

				var resp ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if resp.Message != "Invalid token format" {
					t.Errorf("unexpected message %q", resp.Message)
				}
			})
		}
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		token := env.tokenFor(models.RoleStudent)
		w := env.do(http.MethodGet, "/api/auth/me", "", token+"x")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Message != "Token is invalid" {
			t.Errorf("unexpected message %q", resp.Message)
		}
	})

	t.Run("passes valid token through", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/me", "", env.tokenFor(models.RoleStudent))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if env.user.lastProfileID != "64a1f0c2e4b0a1b2c3d4e5f6" {
			t.Errorf("service called with id %q", env.user.lastProfileID)
		}
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	env := newRouterEnv()

	t.Run("allows matching role", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/student", "", env.tokenFor(models.RoleStudent))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("rejects non member role", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/student", "", env.tokenFor(models.RoleMess))
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Message != "You are not allowed to access this resource" {
			t.Errorf("unexpected message %q", resp.Message)
		}
	})

	t.Run("admin role gets no implicit access to other gates", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/student", "", env.tokenFor(models.RoleAdmin))
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for admin on student route, got %d", w.Code)
		}

		w = env.do(http.MethodGet, "/api/auth/mess", "", env.tokenFor(models.RoleAdmin))
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for admin on mess route, got %d", w.Code)
		}
	})

	t.Run("admin routes reject students", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/users", "", env.tokenFor(models.RoleStudent))
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin routes accept admins", func(t *testing.T) {
		env.user.listResp = &models.UserListResponse{Users: []*models.Profile{}, Page: 1, Size: 10}
		w := env.do(http.MethodGet, "/api/auth/users", "", env.tokenFor(models.RoleAdmin))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}
