package haclient

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestInspectToken(t *testing.T) {
	issued := time.Now().Add(-24 * time.Hour)
	expires := time.Now().Add(10 * 365 * 24 * time.Hour)

	token := signedToken(t, jwt.MapClaims{
		"iss": "abc123",
		"iat": issued.Unix(),
		"exp": expires.Unix(),
	})

	info, err := InspectToken(token)
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if info.Issuer != "abc123" {
		t.Errorf("issuer = %q", info.Issuer)
	}
	if info.IssuedAt.Unix() != issued.Unix() {
		t.Errorf("issued at = %v, want %v", info.IssuedAt, issued)
	}
	if info.Expired() {
		t.Error("long-lived token reported expired")
	}
	if info.ExpiresWithin(time.Hour) {
		t.Error("long-lived token reported expiring soon")
	}
}

func TestInspectTokenExpired(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"iss": "abc123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	info, err := InspectToken(token)
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if !info.Expired() {
		t.Error("expired token not reported expired")
	}
	if !info.ExpiresWithin(time.Minute) {
		t.Error("expired token must also report expiring soon")
	}
}

func TestInspectTokenNoExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"iss": "abc123"})

	info, err := InspectToken(token)
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if info.Expired() || info.ExpiresWithin(time.Hour) {
		t.Error("token without exp claim must never report expiry")
	}
}

func TestInspectTokenOpaque(t *testing.T) {
	_, err := InspectToken("not-a-jwt")
	if !errors.Is(err, ErrNotJWT) {
		t.Errorf("err = %v, want ErrNotJWT", err)
	}
}
