package utils

import "errors"

// Maximum allowed input sizes. The cipher itself handles any length; these
// bounds apply where untrusted input enters the system (HTTP and CLI).
const (
	// MaxTextLength is the maximum allowed plaintext or ciphertext length.
	MaxTextLength = 1 << 16 // 64K characters

	// MaxKeyLength is the maximum allowed key length.
	MaxKeyLength = 1 << 10 // 1K characters

	// MaxRequestBodyBytes is the maximum allowed HTTP request body size.
	MaxRequestBodyBytes = 1 << 20 // 1MB
)

var (
	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}
