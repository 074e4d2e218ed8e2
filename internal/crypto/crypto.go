package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize     = 32     // Salt size in bytes
	HashSize     = 32     // Verifier hash size
	DefaultIters = 210000 // Default PBKDF2 iterations (OWASP minimum)
)

// KDF hashes master passwords
type KDF struct {
	Salt       []byte
	Iterations int
}

// NewKDF creates a new KDF with a random salt
func NewKDF() (*KDF, error) {
	salt, err := GenerateRandom(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return &KDF{
		Salt:       salt,
		Iterations: DefaultIters,
	}, nil
}

// Hash derives the verifier for a password
func (k *KDF) Hash(password []byte) []byte {
	return pbkdf2.Key(password, k.Salt, k.Iterations, HashSize, sha256.New)
}

// Verify reports whether password hashes to expected
func (k *KDF) Verify(password, expected []byte) bool {
	got := k.Hash(password)
	defer ClearBytes(got)
	return ConstantTimeCompare(got, expected)
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
