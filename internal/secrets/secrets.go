// Package secrets provides the crypto primitives the bank depends on:
// authenticated encryption of personally identifiable fields and slow,
// salted password hashing with constant-time verification.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/pbkdf2"

	"securebank/internal/domain"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// SaltSize is the password salt length in bytes.
	SaltSize = 16

	// HashIterations is the PBKDF2 round count. Deliberately large so that
	// verification cost is non-trivial.
	HashIterations = 100_000

	hashSize = 32
)

// Manager performs encryption and password hashing under one process-wide
// key loaded at startup.
type Manager struct {
	aead cipher.AEAD
}

// NewManager creates a Manager from the supplied key. An empty key is
// replaced by a freshly generated one; that event is logged as a warning
// because the key will not survive a restart and previously encrypted data
// becomes unreadable.
func NewManager(key []byte, logger zerolog.Logger) (*Manager, error) {
	if len(key) == 0 {
		key = make([]byte, KeySize)
		if _, err := io.ReadFull(rand.Reader, key); err != nil {
			return nil, fmt.Errorf("generate encryption key: %w", err)
		}
		logger.Warn().Msg("no encryption key configured, generated ephemeral key; encrypted data will not survive a restart")
	}

	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return &Manager{aead: aead}, nil
}

// Encrypt seals plaintext with AES-GCM. The random nonce is prepended to
// the returned ciphertext.
func (m *Manager) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, m.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return m.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Tampered data or data
// sealed under a different key yields domain.ErrIntegrity and never a
// partial plaintext.
func (m *Manager) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < m.aead.NonceSize() {
		return nil, domain.ErrIntegrity
	}

	nonce, sealed := ciphertext[:m.aead.NonceSize()], ciphertext[m.aead.NonceSize():]

	plaintext, err := m.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, domain.ErrIntegrity
	}

	return plaintext, nil
}

// HashPassword derives a PBKDF2-HMAC-SHA256 hash of password. A
// cryptographically random salt is generated when salt is nil.
func (m *Manager) HashPassword(password string, salt []byte) (hash, usedSalt []byte, err error) {
	if salt == nil {
		salt = make([]byte, SaltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, nil, fmt.Errorf("generate salt: %w", err)
		}
	}

	hash = pbkdf2.Key([]byte(password), salt, HashIterations, hashSize, sha256.New)

	return hash, salt, nil
}

// VerifyPassword recomputes the derivation and compares in constant time.
func (m *Manager) VerifyPassword(password string, hash, salt []byte) bool {
	derived := pbkdf2.Key([]byte(password), salt, HashIterations, hashSize, sha256.New)

	return subtle.ConstantTimeCompare(derived, hash) == 1
}
