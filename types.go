// Package aqimc implements the AQIMC layered text encryption system.
//
// AQIMC composes four independent keyed transformations over the 26-letter
// alphabet. Each layer consumes and produces uppercase letter strings, so
// every intermediate stage is printable and can be traced. Decryption
// applies the layer inverses in reverse order.
//
// WARNING: This is an educational cipher construction that has NOT been
// reviewed for real-world security. DO NOT use it to protect sensitive data.
package aqimc

// =============================================================================
// Key Material
// =============================================================================

// Keys holds the four independent layer keys for a full pipeline run.
// Every key must contain at least one letter; non-letter characters are
// ignored when the key stream is derived.
type Keys struct {
	Key1 string `json:"key1"` // DKSS shift key
	Key2 string `json:"key2"` // NRPE pair key
	Key3 string `json:"key3"` // VBMD matrix key, also selects the block size
	Key4 string `json:"key4"` // KDPP permutation key
}

// =============================================================================
// Trace Types
// =============================================================================

// TraceEntry records one layer application: the text the layer received,
// the text it produced, and a human-readable description.
type TraceEntry struct {
	Layer       string `json:"layer"`
	Input       string `json:"input"`
	Output      string `json:"output"`
	Description string `json:"description"`
}

// Trace is the ordered sequence of layer applications for one pipeline run.
type Trace []TraceEntry

// Step returns the entry for the named layer and whether it was recorded.
func (t Trace) Step(layer string) (TraceEntry, bool) {
	for _, e := range t {
		if e.Layer == layer {
			return e, true
		}
	}
	return TraceEntry{}, false
}

// =============================================================================
// Result Types
// =============================================================================

// EncryptResult contains the outcome of a full encryption run.
type EncryptResult struct {
	Ciphertext string `json:"encrypted_text"`
	Plaintext  string `json:"original_plaintext"`
	Trace      Trace  `json:"steps"`
}

// DecryptResult contains the outcome of a full decryption run.
// Warnings lists non-fatal degradations, such as ciphertext pairs that had
// no valid preimage and were passed through unchanged.
type DecryptResult struct {
	Plaintext  string   `json:"decrypted_text"`
	Ciphertext string   `json:"original_ciphertext"`
	Trace      Trace    `json:"steps"`
	Warnings   []string `json:"warnings,omitempty"`
}

// SelfTestResult reports the built-in encrypt/decrypt round-trip check.
type SelfTestResult struct {
	Plaintext string `json:"test_plaintext"`
	Encrypted string `json:"encrypted"`
	Decrypted string `json:"decrypted"`
	Match     bool   `json:"match"`
}
