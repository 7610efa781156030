// Package pipeline composes the four AQIMC layers into the full cipher:
// substitution, pair encoding, matrix diffusion and permutation on the way
// in, their inverses in reverse order on the way out.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
	"github.com/bilalwebs/AQIMC-Encryption-System/alphabet"
	"github.com/bilalwebs/AQIMC-Encryption-System/layers/dkss"
	"github.com/bilalwebs/AQIMC-Encryption-System/layers/kdpp"
	"github.com/bilalwebs/AQIMC-Encryption-System/layers/nrpe"
	"github.com/bilalwebs/AQIMC-Encryption-System/layers/vbmd"
)

// Self-test vector. The pair encoding is not injective, so not every
// plaintext/key combination round-trips exactly; this one is verified to.
const selfTestPlaintext = "HELLOWORLD"

var selfTestKeys = aqimc.Keys{Key1: "DELTA", Key2: "ALPHA", Key3: "ALPHA", Key4: "ALPHA"}

// Encrypt runs DKSS, NRPE, VBMD and KDPP in order and records one trace
// entry per layer. All four keys must contain at least one letter and the
// plaintext at least one letter; the pair and block layers pad with 'A' as
// they go, so the ciphertext can be longer than the plaintext.
func Encrypt(plaintext string, keys aqimc.Keys) (*aqimc.EncryptResult, error) {
	if err := checkKeys(keys); err != nil {
		return nil, err
	}
	if len(alphabet.Encode(plaintext)) == 0 {
		return nil, aqimc.ErrEmptyText
	}

	trace := make(aqimc.Trace, 0, 4)

	afterDKSS, err := dkss.Encrypt(plaintext, keys.Key1)
	if err != nil {
		return nil, fmt.Errorf("key1: %w", err)
	}
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "DKSS",
		Input:       plaintext,
		Output:      afterDKSS,
		Description: "Dynamic Key-Shift Substitution applied",
	})

	afterNRPE := nrpe.Encrypt(afterDKSS, keys.Key2)
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "NRPE",
		Input:       afterDKSS,
		Output:      afterNRPE,
		Description: "Non-Linear Relational Pair Encoding applied",
	})

	afterVBMD, err := vbmd.Encrypt(afterNRPE, keys.Key3)
	if err != nil {
		return nil, fmt.Errorf("key3: %w", err)
	}
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "VBMD",
		Input:       afterNRPE,
		Output:      afterVBMD,
		Description: "Variable Block Matrix Diffusion applied",
	})

	ciphertext, err := kdpp.Encrypt(afterVBMD, keys.Key4)
	if err != nil {
		return nil, fmt.Errorf("key4: %w", err)
	}
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "KDPP",
		Input:       afterVBMD,
		Output:      ciphertext,
		Description: "Key-Driven Positional Permutation applied",
	})

	return &aqimc.EncryptResult{
		Ciphertext: ciphertext,
		Plaintext:  plaintext,
		Trace:      trace,
	}, nil
}

// Decrypt runs the inverse layers in reverse order. Ciphertext pairs that
// the pair decoder cannot solve pass through unchanged and surface in
// Warnings rather than failing the whole decryption; every other layer
// error aborts.
func Decrypt(ciphertext string, keys aqimc.Keys) (*aqimc.DecryptResult, error) {
	if err := checkKeys(keys); err != nil {
		return nil, err
	}
	if len(alphabet.Encode(ciphertext)) == 0 {
		return nil, aqimc.ErrEmptyText
	}

	trace := make(aqimc.Trace, 0, 4)
	var warnings []string

	afterKDPP, err := kdpp.Decrypt(ciphertext, keys.Key4)
	if err != nil {
		return nil, fmt.Errorf("key4: %w", err)
	}
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "KDPP_inverse",
		Input:       ciphertext,
		Output:      afterKDPP,
		Description: "Inverse Key-Driven Positional Permutation applied",
	})

	afterVBMD, err := vbmd.Decrypt(afterKDPP, keys.Key3)
	if err != nil {
		return nil, fmt.Errorf("key3: %w", err)
	}
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "VBMD_inverse",
		Input:       afterKDPP,
		Output:      afterVBMD,
		Description: "Inverse Variable Block Matrix Diffusion applied",
	})

	afterNRPE, err := nrpe.Decrypt(afterVBMD, keys.Key2)
	if err != nil {
		if !errors.Is(err, aqimc.ErrNoSolutionFound) {
			return nil, fmt.Errorf("key2: %w", err)
		}
		warnings = append(warnings, err.Error())
	}
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "NRPE_inverse",
		Input:       afterVBMD,
		Output:      afterNRPE,
		Description: "Inverse Non-Linear Relational Pair Encoding applied",
	})

	plaintext, err := dkss.Decrypt(afterNRPE, keys.Key1)
	if err != nil {
		return nil, fmt.Errorf("key1: %w", err)
	}
	trace = append(trace, aqimc.TraceEntry{
		Layer:       "DKSS_inverse",
		Input:       afterNRPE,
		Output:      plaintext,
		Description: "Inverse Dynamic Key-Shift Substitution applied",
	})

	return &aqimc.DecryptResult{
		Plaintext:  plaintext,
		Ciphertext: ciphertext,
		Trace:      trace,
		Warnings:   warnings,
	}, nil
}

// SelfTest encrypts and decrypts the built-in vector and reports whether
// the round trip reproduced the plaintext. It exercises every layer in
// both directions, which makes it a cheap health probe.
func SelfTest() (*aqimc.SelfTestResult, error) {
	enc, err := Encrypt(selfTestPlaintext, selfTestKeys)
	if err != nil {
		return nil, err
	}
	dec, err := Decrypt(enc.Ciphertext, selfTestKeys)
	if err != nil {
		return nil, err
	}
	return &aqimc.SelfTestResult{
		Plaintext: selfTestPlaintext,
		Encrypted: enc.Ciphertext,
		Decrypted: dec.Plaintext,
		Match:     dec.Plaintext == strings.ToUpper(selfTestPlaintext),
	}, nil
}

// checkKeys requires a letter in each of the four keys. The pair encoder
// would tolerate an empty key2, but a silent no-op layer hides key entry
// mistakes, so the pipeline holds all four to the same rule.
func checkKeys(keys aqimc.Keys) error {
	named := []struct {
		name  string
		value string
	}{
		{"key1", keys.Key1},
		{"key2", keys.Key2},
		{"key3", keys.Key3},
		{"key4", keys.Key4},
	}
	for _, k := range named {
		if _, err := alphabet.KeyNumerals(k.value); err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
	}
	return nil
}
