// Package storage provides the key-value persistence behind the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MaxKeyLength bounds key size for both backends.
const MaxKeyLength = 128

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrInvalidKey  = errors.New("invalid key")
	ErrClosed      = errors.New("storage is closed")
)

// checkKey validates the arguments shared by Get and Set.
func checkKey(ctx context.Context, key string) error {
	if ctx == nil {
		return ErrNilContext
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: key", ErrEmptyString)
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidKey, MaxKeyLength)
	}
	if strings.IndexFunc(key, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidKey, key)
	}
	return nil
}

// checkPath validates a database path.
func checkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: database path", ErrEmptyString)
	}
	return nil
}
