package utils

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/sha3"
)

const (
	// fingerprintDomain separates fingerprinting from other XOF uses.
	fingerprintDomain = "aqimc-key-fingerprint-v1"

	// fingerprintLen is the number of XOF output bytes in a fingerprint.
	fingerprintLen = 8
)

var shake256Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake256()
	},
}

// Shake256WithDomain computes SHAKE256 with domain separation. The domain
// string is length-prefixed so distinct uses of the XOF cannot collide.
// Panics if domain is longer than 255 bytes.
func Shake256WithDomain(domain string, data []byte, outputLen int) []byte {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}

	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	h.Write(data)
	output := make([]byte, outputLen)
	_, _ = h.Read(output)
	return output
}

// KeyFingerprint returns a short hex fingerprint of a key. Log entries use
// it to identify which key was involved without recording the key itself.
func KeyFingerprint(key string) string {
	sum := Shake256WithDomain(fingerprintDomain, []byte(key), fingerprintLen)
	return hex.EncodeToString(sum)
}
