package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, true, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !claims.Admin {
		t.Fatal("expected admin claim")
	}

	if _, err := ParseToken("another-secret-another-secret-xx", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, true, time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := ParseToken(testSecret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestServiceLogin(t *testing.T) {
	svc := NewService(testSecret, testHash(t, "letmein"), time.Hour)
	fixed := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	for _, password := range []string{"nope", ""} {
		if _, err := svc.Login(password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %q, got %v", password, err)
		}
	}

	session, err := svc.Login("letmein")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !session.ExpiresAt.Equal(fixed.Add(time.Hour)) {
		t.Fatalf("expected expiry %s, got %s", fixed.Add(time.Hour), session.ExpiresAt)
	}
}

func TestServiceAuthorize(t *testing.T) {
	svc := NewService(testSecret, testHash(t, "letmein"), time.Hour)
	session, err := svc.Login("letmein")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Authorize(session.Token); err != nil {
		t.Fatalf("expected admin token to authorize: %v", err)
	}

	plain, err := GenerateToken(testSecret, false, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := svc.Authorize(plain); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if err := svc.Authorize("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService("", "", time.Hour)
	if svc.Enabled() {
		t.Fatal("expected service without secret to be disabled")
	}
	if _, err := svc.Login("anything"); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("expected ErrAdminDisabled from login, got %v", err)
	}
	if err := svc.Authorize("x"); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("expected ErrAdminDisabled from authorize, got %v", err)
	}
}
