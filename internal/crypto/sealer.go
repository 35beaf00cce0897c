// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// sealedPrefix marks values produced by [aesSealer.Seal].
const sealedPrefix = "sealed:v1:"

const saltSize = 16

var (
	ErrEmptyPassphrase = errors.New("crypto: empty passphrase")
	ErrSealedTooShort  = errors.New("crypto: sealed value too short")
)

// aesSealer derives a per-value AES-256 key from the configured passphrase
// and a random salt with Argon2id, then encrypts with AES-GCM.
//
// Sealed layout (base64, standard encoding, after the prefix):
//
//	salt (16 bytes) ‖ nonce (12 bytes) ‖ ciphertext
type aesSealer struct {
	passphrase []byte

	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewSealer returns a [Sealer] keyed by passphrase. The Argon2id cost is
// lower than an interactive password hash: the input is a machine secret,
// and every token refresh re-seals two values.
func NewSealer(passphrase string) (Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &aesSealer{
		passphrase:   []byte(passphrase),
		argonTime:    1,
		argonMemory:  19 * 1024, // 19 MiB
		argonThreads: 2,
		argonKeyLen:  32,
	}, nil
}

func (s *aesSealer) key(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, s.argonTime, s.argonMemory, s.argonThreads, s.argonKeyLen)
}

func (s *aesSealer) gcm(salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key(salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Seal implements [Sealer]. The empty string is stored as is.
func (s *aesSealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := s.gcm(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(plaintext), nil)

	return sealedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Sealer]. Values without the sealed prefix are returned
// unchanged.
func (s *aesSealer) Open(sealed string) (string, error) {
	encoded, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return sealed, nil
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	if len(blob) < saltSize {
		return "", ErrSealedTooShort
	}

	salt, rest := blob[:saltSize], blob[saltSize:]
	gcm, err := s.gcm(salt)
	if err != nil {
		return "", err
	}

	if len(rest) < gcm.NonceSize() {
		return "", ErrSealedTooShort
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plaintext), nil
}

type nopSealer struct{}

// NewNopSealer returns a [Sealer] that stores values in plaintext. Used when
// no encryption key is configured.
func NewNopSealer() Sealer { return nopSealer{} }

func (nopSealer) Seal(plaintext string) (string, error) { return plaintext, nil }

func (nopSealer) Open(sealed string) (string, error) { return sealed, nil }
