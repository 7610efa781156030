// Package alphabet implements the letter codec shared by all cipher layers:
// text to numerals in [0, 26) and back, plus key material helpers.
package alphabet

import (
	"encoding/binary"
	"errors"

	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
	"github.com/bilalwebs/AQIMC-Encryption-System/core"
	"github.com/bilalwebs/AQIMC-Encryption-System/utils"
)

// DomainDeriveKey separates seed-phrase key derivation from other XOF uses.
const DomainDeriveKey = "aqimc-derive-key-v1"

// Encode maps text to numerals: A=0 .. Z=25. Characters outside A-Za-z are
// dropped, so the mapping ignores case, spaces and punctuation.
func Encode(text string) []int {
	nums := make([]int, 0, len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			nums = append(nums, int(r-'A'))
		case r >= 'a' && r <= 'z':
			nums = append(nums, int(r-'a'))
		}
	}
	return nums
}

// Decode maps numerals back to uppercase text. Values are reduced mod 26
// first, so any integer is accepted.
func Decode(nums []int) string {
	out := make([]byte, len(nums))
	for i, n := range nums {
		out[i] = byte('A' + utils.Mod(n, core.AlphabetSize))
	}
	return string(out)
}

// KeyNumerals derives the cyclic key stream for a key string. It fails
// with ErrEmptyKey when the key contains no letters.
func KeyNumerals(key string) ([]int, error) {
	nums := Encode(key)
	if len(nums) == 0 {
		return nil, aqimc.ErrEmptyKey
	}
	return nums, nil
}

// RandomKey generates a uniformly random key of n letters from the
// system CSPRNG.
func RandomKey(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("key length must be positive")
	}
	out := make([]byte, n)
	for i := range out {
		v, err := utils.RandomInt(core.AlphabetSize)
		if err != nil {
			return "", err
		}
		out[i] = byte('A' + v)
	}
	return string(out), nil
}

// DeriveKey deterministically derives a key of n letters from a seed
// phrase. The XOF stream is rejection-sampled so letters stay uniform.
// n <= 0 yields the empty string.
func DeriveKey(phrase string, n int) string {
	if n <= 0 {
		return ""
	}
	// 234 is the largest multiple of 26 that fits in a byte; higher
	// values are rejected to avoid modulo bias.
	const threshold = 256 - (256 % core.AlphabetSize)

	seed := []byte(phrase)
	stream := utils.Shake256WithDomain(DomainDeriveKey, seed, 2*n)

	out := make([]byte, 0, n)
	used := 0
	extension := uint32(0)
	for len(out) < n {
		if used >= len(stream) {
			extension++
			ext := make([]byte, len(seed)+4)
			copy(ext, seed)
			binary.LittleEndian.PutUint32(ext[len(seed):], extension)
			stream = utils.Shake256WithDomain(DomainDeriveKey, ext, 2*n)
			used = 0
		}
		b := stream[used]
		used++
		if int(b) < threshold {
			out = append(out, byte('A'+int(b)%core.AlphabetSize))
		}
	}
	return string(out)
}
