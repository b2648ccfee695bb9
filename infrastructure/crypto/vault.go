package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	apperrors "social-manager/pkg/errors"
)

// Blob layout: hex(salt || nonce || tag || ciphertext). The layout keeps the
// whole record in one text column and lets each field be sliced back out by
// fixed offsets.
const (
	saltLength  = 64
	nonceLength = 16
	tagLength   = 16
	keyLength   = 32

	pbkdf2Iterations = 100000

	tagPosition       = saltLength + nonceLength
	encryptedPosition = tagPosition + tagLength
)

// Vault encrypts per-brand API secrets with AES-256-GCM. The key used for any
// single record is derived from the master key plus a per-record random salt,
// so the master key never encrypts data directly.
type Vault struct {
	masterKey []byte
}

// Config carries the vault's injected configuration.
type Config struct {
	MasterKeyHex string
}

// NewVault builds a vault from a 64-character hex master key.
func NewVault(cfg Config) (*Vault, error) {
	if cfg.MasterKeyHex == "" {
		return nil, apperrors.Configuration("vault master key is not configured")
	}
	key, err := hex.DecodeString(cfg.MasterKeyHex)
	if err != nil {
		return nil, apperrors.Configuration("vault master key is not valid hex")
	}
	if len(key) != keyLength {
		return nil, apperrors.Configuration(fmt.Sprintf("vault master key must be %d hex characters", keyLength*2))
	}
	return &Vault{masterKey: key}, nil
}

// Encrypt seals plaintext and returns the hex blob.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperrors.Validation("plaintext to encrypt cannot be empty")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	aead, err := v.aead(salt)
	if err != nil {
		return "", err
	}

	// Seal appends the tag after the ciphertext; the blob layout wants it in
	// front, so split and reorder.
	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	blob := make([]byte, 0, encryptedPosition+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)
	return hex.EncodeToString(blob), nil
}

// Decrypt opens a hex blob produced by Encrypt. A failed tag check surfaces as
// a cipher authentication error, never as corrupt plaintext.
func (v *Vault) Decrypt(blob string) (string, error) {
	if blob == "" {
		return "", apperrors.Validation("encrypted data cannot be empty")
	}
	raw, err := hex.DecodeString(blob)
	if err != nil {
		return "", apperrors.Validation("encrypted data is not valid hex")
	}
	if len(raw) < encryptedPosition {
		return "", apperrors.Validation("encrypted data is truncated")
	}

	salt := raw[:saltLength]
	nonce := raw[saltLength:tagPosition]
	tag := raw[tagPosition:encryptedPosition]
	ciphertext := raw[encryptedPosition:]

	aead, err := v.aead(salt)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ciphertext)+tagLength)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", apperrors.CipherAuth(err)
	}
	return string(plaintext), nil
}

func (v *Vault) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(v.masterKey, salt, pbkdf2Iterations, keyLength, sha512.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceLength)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}
	return aead, nil
}

// GenerateKey returns a fresh random master key as a 64-character hex string.
func GenerateKey() (string, error) {
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}
