package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func identityProbe() (http.Handler, *string) {
	var buid string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buid = GetBuid(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &buid
}

func TestIdentityMissingHeaderIsGuest(t *testing.T) {
	probe, buid := identityProbe()
	handler := Identity(testSecret)(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, guests must pass through", rec.Code)
	}
	if *buid != "" {
		t.Errorf("buid = %q, want empty for guest", *buid)
	}
}

func TestIdentityValidToken(t *testing.T) {
	probe, buid := identityProbe()
	handler := Identity(testSecret)(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "user-42"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if *buid != "user-42" {
		t.Errorf("buid = %q, want user-42", *buid)
	}
}

func TestIdentityInvalidTokenRejected(t *testing.T) {
	probe, _ := identityProbe()
	handler := Identity(testSecret)(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", "user-42"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a bad signature", rec.Code)
	}
}

func TestIdentityMalformedHeaderRejected(t *testing.T) {
	probe, _ := identityProbe()
	handler := Identity(testSecret)(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a malformed header", rec.Code)
	}
}
