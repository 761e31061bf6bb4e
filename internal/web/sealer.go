package web

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize          = 32 // AES-256
	nonceSize        = 12 // GCM standard nonce size
	pbkdf2Iterations = 100000
)

// sealerSalt separates the flash key from any other use of the secret
var sealerSalt = []byte("medshare/flash/v1")

var errUnseal = errors.New("unseal failed: invalid key or corrupted data")

// Sealer encrypts and authenticates short cookie values with AES-256-GCM
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the cookie key from secret. An empty secret gets a random per-process
// key, so sealed cookies do not survive a restart.
func NewSealer(secret string) (*Sealer, error) {
	var key []byte
	if secret == "" {
		key = make([]byte, keySize)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	} else {
		key = pbkdf2.Key([]byte(secret), sealerSalt, pbkdf2Iterations, keySize, sha256.New)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal returns nonce + ciphertext, URL-safe base64 encoded
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal
func (s *Sealer) Open(encoded string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errUnseal
	}
	if len(data) < nonceSize {
		return nil, errUnseal
	}

	plaintext, err := s.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return nil, errUnseal
	}
	return plaintext, nil
}
