// Package secretcodec implements the SecretCodec port with AES-256-GCM.
package secretcodec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SecretCodec = (*Codec)(nil)

const (
	// envelopeSep joins the nonce, tag and ciphertext segments of an envelope.
	envelopeSep = ":"
	tagSize     = 16
)

// ErrEmptyMasterSecret is returned by New when no master secret is provided.
var ErrEmptyMasterSecret = errors.New("secretcodec: master secret is empty")

// Codec seals credential strings into envelopes of the form
// base64(nonce):base64(tag):base64(ciphertext).
type Codec struct {
	aead cipher.AEAD
	rand io.Reader
}

// DeriveKey reduces the master secret to a 32-byte AES-256 key.
func DeriveKey(masterSecret string) [32]byte {
	return sha256.Sum256([]byte(masterSecret))
}

// New creates a Codec keyed by the SHA-256 digest of masterSecret.
func New(masterSecret string) (*Codec, error) {
	if masterSecret == "" {
		return nil, ErrEmptyMasterSecret
	}

	key := DeriveKey(masterSecret)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	return &Codec{aead: gcm, rand: rand.Reader}, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (c *Codec) Seal(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal produces ciphertext || tag.
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(tag),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, envelopeSep), nil
}

// Open decrypts an envelope produced by Seal. Empty or structurally malformed
// envelopes yield ("", nil). A well-formed envelope that fails authentication
// yields an error wrapping driven.ErrSecretTampered.
func (c *Codec) Open(envelope string) (string, error) {
	nonce, tag, ciphertext, ok := c.split(envelope)
	if !ok {
		return "", nil
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", driven.ErrSecretTampered, err)
	}

	return string(plaintext), nil
}

// split decodes the three envelope segments and checks their sizes.
func (c *Codec) split(envelope string) (nonce, tag, ciphertext []byte, ok bool) {
	if envelope == "" {
		return nil, nil, nil, false
	}

	parts := strings.Split(envelope, envelopeSep)
	if len(parts) != 3 {
		return nil, nil, nil, false
	}

	decoded := make([][]byte, 3)
	for i, part := range parts {
		if part == "" {
			return nil, nil, nil, false
		}
		b, err := base64.StdEncoding.DecodeString(part)
		if err != nil {
			return nil, nil, nil, false
		}
		decoded[i] = b
	}

	nonce, tag, ciphertext = decoded[0], decoded[1], decoded[2]
	if len(nonce) != c.aead.NonceSize() || len(tag) != tagSize {
		return nil, nil, nil, false
	}

	return nonce, tag, ciphertext, true
}
