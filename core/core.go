// Package core provides the alphabet constants and boundary validation for
// the AQIMC cipher.
package core

import (
	"errors"
	"regexp"
)

// AlphabetSize is the modulus for all cipher arithmetic: the letters A-Z.
const AlphabetSize = 26

var (
	textPattern = regexp.MustCompile(`^[A-Za-z\s]*$`)
	keyPattern  = regexp.MustCompile(`^[A-Za-z]+$`)
)

// ValidateText checks that s is acceptable at the system boundary:
// non-empty and made of letters and whitespace only. Whitespace-only input
// passes here and is rejected by the pipeline, which needs at least one
// letter to work with.
func ValidateText(s string) error {
	if s == "" {
		return errors.New("text must be a non-empty string")
	}
	if !textPattern.MatchString(s) {
		return errors.New("text can only contain letters and spaces")
	}
	return nil
}

// ValidateKey checks that s is acceptable as a layer key: non-empty and
// purely alphabetic.
func ValidateKey(s string) error {
	if s == "" {
		return errors.New("key must be a non-empty string")
	}
	if !keyPattern.MatchString(s) {
		return errors.New("key can only contain alphabetic characters")
	}
	return nil
}
