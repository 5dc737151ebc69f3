package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("expected digest, got plaintext")
	}
	if !h.Verify("s3cret", digest) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("S3cret", digest) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected distinct digests for the same password")
	}
}

func TestBcryptHasher_RejectsEmpty(t *testing.T) {
	if _, err := NewBcryptHasher(bcrypt.MinCost).Hash(""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestBcryptHasher_LimitCountsBytes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	// 40 characters, 80 bytes
	if _, err := h.Hash(strings.Repeat("é", 40)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for multi-byte password over the limit, got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", maxPasswordBytes+1)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 73-byte password, got %v", err)
	}

	digest, err := h.Hash(strings.Repeat("é", 36))
	if err != nil {
		t.Fatalf("72-byte password should hash: %v", err)
	}
	if !h.Verify(strings.Repeat("é", 36), digest) {
		t.Fatalf("expected 72-byte password to verify")
	}
}

func TestBcryptHasher_VerifyGarbageDigest(t *testing.T) {
	if NewBcryptHasher(0).Verify("x", "not-a-bcrypt-digest") {
		t.Fatalf("expected garbage digest to fail")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	if got := NewBcryptHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptHasher(99).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}
