package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == "correct horse battery staple" {
		t.Fatalf("HashPassword() returned unusable digest %q", hash)
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("CheckPassword() = false for matching password")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("CheckPassword() = true for non-matching password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt is not per-call")
	}
	if !CheckPassword(h1, "pw1") || !CheckPassword(h2, "pw1") {
		t.Error("both salted digests should verify against the original password")
	}
}

func TestCheckPassword_InvalidDigest(t *testing.T) {
	t.Parallel()

	if CheckPassword("not-a-bcrypt-digest", "pw") {
		t.Error("CheckPassword() = true for garbage digest")
	}
	if CheckPassword(strings.Repeat("x", 60), "pw") {
		t.Error("CheckPassword() = true for malformed digest")
	}
}
