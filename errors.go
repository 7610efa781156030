package aqimc

import "errors"

// Error kinds surfaced by the cipher layers and the pipeline. They are
// sentinel values so callers can classify failures with errors.Is.
var (
	// ErrEmptyKey indicates a key with no alphabetic characters.
	ErrEmptyKey = errors.New("key must contain at least one letter")

	// ErrEmptyText indicates input text with no alphabetic characters.
	ErrEmptyText = errors.New("text must contain at least one letter")

	// ErrMatrixNotInvertible indicates a diffusion matrix whose determinant
	// shares a factor with the alphabet size.
	ErrMatrixNotInvertible = errors.New("diffusion matrix is not invertible mod 26")

	// ErrNoSolutionFound indicates a ciphertext pair with no valid preimage.
	// Decryption still completes; the affected pair passes through unchanged.
	ErrNoSolutionFound = errors.New("no valid preimage for ciphertext pair")
)
