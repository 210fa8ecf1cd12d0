package pipeline

import (
	"chat-hub/errors"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "chat-hub/message-body"

// Cipher seals message bodies with XChaCha20-Poly1305.
// A ciphertext is base64(nonce || sealed body), the nonce being fresh for every call.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives the AEAD key from the process secret with HKDF-SHA256.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.ErrMissingEncryptionKey
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt.
// Anything else, including rows written before encryption was enabled, is returned unchanged.
func (c *Cipher) Decrypt(value string) string {
	raw, ok := c.decode(value)
	if !ok {
		return value
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return value
	}
	return string(plaintext)
}

// LooksEncrypted reports whether value has the shape of a ciphertext.
// It does not authenticate it.
func (c *Cipher) LooksEncrypted(value string) bool {
	_, ok := c.decode(value)
	return ok
}

func (c *Cipher) decode(value string) ([]byte, bool) {
	if value == "" || len(value)%4 != 0 {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, false
	}
	if len(raw) < c.aead.NonceSize()+c.aead.Overhead() {
		return nil, false
	}
	return raw, true
}
