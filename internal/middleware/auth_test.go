package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testKeyHash(t *testing.T, key string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}
	return string(hash)
}

func TestAPIKey_ValidKeyPasses(t *testing.T) {
	t.Parallel()

	hash := testKeyHash(t, "secret-key")
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodGet, "/v1/calendars/ada", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	rr := httptest.NewRecorder()

	APIKey(hash)(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Error("handler should run with a valid key")
	}
}

func TestAPIKey_Rejections(t *testing.T) {
	t.Parallel()

	hash := testKeyHash(t, "secret-key")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic secret-key"},
		{"wrong key", "Bearer other-key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := &captureHandler{}
			req := httptest.NewRequest(http.MethodGet, "/v1/calendars/ada", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			APIKey(hash)(handler).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
			if handler.called {
				t.Error("handler should not run")
			}
		})
	}
}

func TestAPIKey_EmptyHashDisablesAuth(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/v1/calendars/ada", nil)
	rr := httptest.NewRecorder()

	APIKey("")(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Error("empty hash should disable authentication")
	}
}

func TestAPIKey_HealthExempt(t *testing.T) {
	t.Parallel()

	hash := testKeyHash(t, "secret-key")
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	APIKey(hash)(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Error("health endpoint should bypass authentication")
	}
}
