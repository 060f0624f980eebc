package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// tokenSealer encrypts provider refresh tokens at rest with AES-GCM. The nonce
// is prepended to the ciphertext and the result is base64url encoded.
type tokenSealer struct {
	aead cipher.AEAD
}

func newTokenSealer(key string) (*tokenSealer, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, errors.New("token encryption key must be 16, 24, or 32 bytes")
	}
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &tokenSealer{aead: aead}, nil
}

func (s *tokenSealer) seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *tokenSealer) open(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	size := s.aead.NonceSize()
	if len(payload) < size {
		return "", errors.New("sealed token too short")
	}
	plaintext, err := s.aead.Open(nil, payload[:size], payload[size:], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
