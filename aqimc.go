// Package aqimc implements the AQIMC layered text encryption system.
// This package provides the shared types and error kinds for the cipher.
// The four layers live under layers/ and pipeline/ composes them:
// DKSS (Dynamic Key-Shift Substitution), NRPE (Non-Linear Relational
// Pair Encoding), VBMD (Variable Block Matrix Diffusion) and
// KDPP (Key-Driven Positional Permutation).
package aqimc

// Version of the AQIMC Go implementation.
const Version = "1.0.0"

// API summary:
//
// Pipeline:
//   - pipeline.Encrypt(plaintext, keys) - Apply DKSS, NRPE, VBMD, KDPP in order
//   - pipeline.Decrypt(ciphertext, keys) - Invert the four layers in reverse
//   - pipeline.SelfTest() - Built-in encrypt/decrypt round-trip check
//
// Individual layers:
//   - dkss.Encrypt / dkss.Decrypt - Position-dependent key-shift substitution
//   - nrpe.Encrypt / nrpe.Decrypt - Non-linear relational pair encoding
//   - vbmd.Encrypt / vbmd.Decrypt - Keyed matrix diffusion over fixed blocks
//   - kdpp.Encrypt / kdpp.Decrypt - Key-driven positional permutation
//
// Key material:
//   - alphabet.RandomKey(n) - Uniform random letter key
//   - alphabet.DeriveKey(phrase, n) - Deterministic key from a seed phrase
