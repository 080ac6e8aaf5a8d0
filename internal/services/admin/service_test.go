package admin

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dream_match/internal/config"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	return New(slog.New(slog.NewTextHandler(os.Stdout, nil)), config.AuthConfig{
		Secret:            "test-secret",
		TokenTTL:          ttl,
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
	})
}

func TestService_LoginAndVerify(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	if err := svc.VerifyToken(token); err != nil {
		t.Errorf("issued token must verify: %v", err)
	}
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t, time.Hour)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong username", "root", "correct-horse"},
		{"empty password", "admin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("want ErrInvalidCredentials, got: %v", err)
			}
		})
	}
}

func TestService_VerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(%q): want ErrInvalidToken, got: %v", token, err)
		}
	}
}

func TestService_VerifyTokenRejectsExpired(t *testing.T) {
	svc := newTestService(t, -time.Hour)

	token, err := svc.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}

	if err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token must be rejected, got: %v", err)
	}
}

func TestService_VerifyTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other := New(slog.New(slog.NewTextHandler(os.Stdout, nil)), config.AuthConfig{
		Secret:            "another-secret",
		TokenTTL:          time.Hour,
		AdminUser:         "admin",
		AdminPasswordHash: svc.cfg.AdminPasswordHash,
	})

	token, err := other.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}

	if err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token signed with a different secret must be rejected, got: %v", err)
	}
}
