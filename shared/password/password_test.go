package password_test

import (
	"errors"
	"kampus/shared/password"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestConstants(t *testing.T) {
	if password.DefaultCost != bcrypt.DefaultCost {
		t.Errorf("expected DefaultCost to be %d, got %d", bcrypt.DefaultCost, password.DefaultCost)
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := password.HashWithCost("admin123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "admin123" {
		t.Fatal("expected hash to differ from plain password")
	}

	if err := password.Verify("admin123", hash); err != nil {
		t.Errorf("expected password to verify, got %v", err)
	}

	if err := password.Verify("user123", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestHashEmpty(t *testing.T) {
	if _, err := password.Hash(""); !errors.Is(err, password.ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestVerifyEmptyInputs(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     string
	}{
		{name: "empty password", password: "", hash: "$2a$04$abc"},
		{name: "empty hash", password: "secret", hash: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := password.Verify(tt.password, tt.hash); !errors.Is(err, password.ErrInvalidPassword) {
				t.Errorf("expected ErrInvalidPassword, got %v", err)
			}
		})
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	err := password.Verify("secret", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}

	if errors.Is(err, password.ErrInvalidPassword) {
		t.Error("expected a verification error, not ErrInvalidPassword")
	}
}
