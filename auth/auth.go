// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidCallerKey   = errors.New("invalid caller key")
	ErrMissingCredentials = errors.New("missing caller identity or key")
)

// GenerateCallerKey creates the HMAC-based key an identity presents with
// each request. It is deterministic, so nothing needs to be stored.
func GenerateCallerKey(identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerKey checks that key was issued for identity
func ValidateCallerKey(identity, key, salt string) error {
	expected := GenerateCallerKey(identity, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidCallerKey
	}
	return nil
}

// Authenticate trims the presented credentials and returns the identity they
// prove.
func Authenticate(identity, key, salt string) (string, error) {
	identity = strings.TrimSpace(identity)
	key = strings.TrimSpace(key)
	if identity == "" || key == "" {
		return "", ErrMissingCredentials
	}
	if err := ValidateCallerKey(identity, key, salt); err != nil {
		return "", err
	}
	return identity, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
