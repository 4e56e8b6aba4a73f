package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bettermespace/backend/internal/config"
	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestClassifyAccount(t *testing.T) {
	tests := []struct {
		account string
		want    HandleKind
	}{
		{"13812345678", HandlePhone},
		{"19900000000", HandlePhone},
		{"12812345678", HandleInvalid}, // second digit must be 3-9
		{"1381234567", HandleInvalid},  // too short
		{"138123456789", HandleInvalid},
		{"user@example.com", HandleEmail},
		{"a@b.cn", HandleEmail},
		{"13812345678@example.com", HandleEmail}, // email pattern wins, not phone
		{"not-an-account", HandleInvalid},
		{"user@@example.com", HandleInvalid},
		{"user@example", HandleInvalid},
		{"", HandleInvalid},
	}

	for _, tt := range tests {
		if got := ClassifyAccount(tt.account); got != tt.want {
			t.Errorf("ClassifyAccount(%q) = %v, want %v", tt.account, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"abc", false},      // too short
		{"abcdefgh", false}, // no digit
		{"12345678", false}, // no letter
		{"abc123", false},   // too short even with both
		{"abcdef12", true},
		{"P4ssword", true},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.ok && err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", tt.password, err)
		}
		if !tt.ok && !errors.Is(err, ErrWeakPassword) {
			t.Errorf("ValidatePassword(%q) = %v, want ErrWeakPassword", tt.password, err)
		}
	}
}

func testAuthService(expiry time.Duration) *AuthService {
	return NewAuthService(nil, &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: expiry,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	s := testAuthService(30 * 24 * time.Hour)
	userID := uuid.New()

	token, err := s.IssueToken(userID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	got, err := ParseUserID("test-secret", token)
	if err != nil {
		t.Fatalf("ParseUserID: %v", err)
	}
	if got != userID {
		t.Errorf("ParseUserID = %s, want %s", got, userID)
	}
}

func TestTokenFailuresAreUniform(t *testing.T) {
	s := testAuthService(30 * 24 * time.Hour)
	token, err := s.IssueToken(uuid.New())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Tampered signature
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseUserID("test-secret", tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: got %v, want ErrInvalidToken", err)
	}

	// Wrong secret
	if _, err := ParseUserID("other-secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: got %v, want ErrInvalidToken", err)
	}

	// Garbage
	if _, err := ParseUserID("test-secret", "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: got %v, want ErrInvalidToken", err)
	}

	// Tampered payload keeps the original signature invalid
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	forged := parts[0] + "." + parts[1] + "A." + parts[2]
	if _, err := ParseUserID("test-secret", forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("forged payload: got %v, want ErrInvalidToken", err)
	}
}

func newDBAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestDB(t), &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	s := newDBAuthService(t)

	resp, err := s.Register(&dto.RegisterRequest{Account: "13812345678", Password: "abcdef12"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.User.Account != "13812345678" {
		t.Errorf("registered account = %q, want %q", resp.User.Account, "13812345678")
	}
	if got, err := ParseUserID("test-secret", resp.Token); err != nil || got != resp.User.ID {
		t.Errorf("token resolves to %s (%v), want %s", got, err, resp.User.ID)
	}

	login, err := s.Login(&dto.LoginRequest{Account: "13812345678", Password: "abcdef12"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login user = %s, want %s", login.User.ID, resp.User.ID)
	}

	if _, err := s.Login(&dto.LoginRequest{Account: "13812345678", Password: "wrongpw99"}); !errors.Is(err, ErrBadPassword) {
		t.Errorf("wrong password: got %v, want ErrBadPassword", err)
	}
	if _, err := s.Login(&dto.LoginRequest{Account: "nobody@example.com", Password: "abcdef12"}); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("unknown account: got %v, want ErrAccountNotFound", err)
	}
	if _, err := s.Login(&dto.LoginRequest{Account: "not-an-account", Password: "abcdef12"}); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("malformed account: got %v, want ErrAccountNotFound", err)
	}
}

func TestRegisterRejectionCreatesNoRow(t *testing.T) {
	s := newDBAuthService(t)

	tests := []struct {
		name     string
		account  string
		password string
		wantErr  error
	}{
		{"too short", "13812345678", "abc", ErrWeakPassword},
		{"no digit", "13812345678", "abcdefgh", ErrWeakPassword},
		{"bad handle", "not-an-account", "abcdef12", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Register(&dto.RegisterRequest{Account: tt.account, Password: tt.password}); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := countRows(t, s.db, &models.User{}); n != 0 {
		t.Errorf("user rows = %d, want 0", n)
	}
}

func TestRegisterDuplicateHandle(t *testing.T) {
	s := newDBAuthService(t)

	if _, err := s.Register(&dto.RegisterRequest{Account: "user@example.com", Password: "abcdef12"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := s.Register(&dto.RegisterRequest{Account: "user@example.com", Password: "zyxwvu98"}); !errors.Is(err, ErrAccountTaken) {
		t.Fatalf("second Register = %v, want ErrAccountTaken", err)
	}
	if n := countRows(t, s.db, &models.User{}); n != 1 {
		t.Errorf("user rows = %d, want 1", n)
	}

	// A registration racing past the probe hits the unique index; the driver
	// must surface that as a duplicated-key error for Register to map it.
	email := "user@example.com"
	err := s.db.Create(&models.User{ID: uuid.New(), Email: &email, PasswordHash: "x"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate insert = %v, want gorm.ErrDuplicatedKey", err)
	}
	if n := countRows(t, s.db, &models.User{}); n != 1 {
		t.Errorf("user rows after duplicate insert = %d, want 1", n)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	s := testAuthService(-1 * time.Hour)
	token, err := s.IssueToken(uuid.New())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := ParseUserID("test-secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}
