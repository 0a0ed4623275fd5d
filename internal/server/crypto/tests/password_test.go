package tests

import (
	"strings"
	"testing"

	crypt "github.com/jotvibfeng/development-platforms-ca/internal/server/crypto"
)

func TestHashPassword_And_Verify_OK(t *testing.T) {
	t.Parallel()

	hash, err := crypt.HashPassword("Secret1!", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" || hash == "Secret1!" {
		t.Fatal("hash must be non-empty and differ from the password")
	}

	ok, err := crypt.VerifyPassword("Secret1!", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := crypt.HashPassword("Secret1!", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := crypt.VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
}

// Соль случайная — два хэша одного пароля различаются
func TestHashPassword_SaltIsRandom(t *testing.T) {
	t.Parallel()

	h1, err := crypt.HashPassword("Secret1!", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := crypt.HashPassword("Secret1!", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	t.Parallel()

	if _, err := crypt.HashPassword("   ", 4); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPassword_BrokenHash(t *testing.T) {
	t.Parallel()

	_, err := crypt.VerifyPassword("Secret1!", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("expected error for broken hash")
	}
}

// Нулевая стоимость заменяется дефолтной — хэш всё равно валидный bcrypt
func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := crypt.HashPassword("Secret1!", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
}
