// Package nrpe implements the Non-Linear Relational Pair Encoding layer of AQIMC.
//
// Letters are consumed two at a time and replaced by the pair
// c1 = (a + 2b) mod 26, c2 = |a - b| mod 26. The map is not injective:
// distinct pairs can share an image, so Decrypt resolves collisions with a
// fixed preference order and reports pairs that have no preimage at all.
package nrpe

import (
	"fmt"

	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
	"github.com/bilalwebs/AQIMC-Encryption-System/alphabet"
	"github.com/bilalwebs/AQIMC-Encryption-System/core"
	"github.com/bilalwebs/AQIMC-Encryption-System/utils"
)

// Encrypt encodes the text pairwise. The letter stream is padded with 'A'
// to even length first. The key is optional: when it contains letters,
// output position p is additionally shifted by key[p mod |key|].
func Encrypt(text, key string) string {
	nums := alphabet.Encode(text)
	if len(nums)%2 != 0 {
		nums = append(nums, 0)
	}
	keyNums := alphabet.Encode(key)

	out := make([]int, 0, len(nums))
	for i := 0; i < len(nums); i += 2 {
		a, b := nums[i], nums[i+1]
		c1 := utils.Mod(a+2*b, core.AlphabetSize)
		c2 := absDiff(a, b) % core.AlphabetSize
		if len(keyNums) > 0 {
			c1 = utils.Mod(c1+keyNums[i%len(keyNums)], core.AlphabetSize)
			c2 = utils.Mod(c2+keyNums[(i+1)%len(keyNums)], core.AlphabetSize)
		}
		out = append(out, c1, c2)
	}
	return alphabet.Decode(out)
}

// Decrypt inverts Encrypt. The key shift is removed elementwise first, then
// each pair is solved: the closed form for a >= b, the closed form for
// a < b, and finally an exhaustive search in ascending (a, b) order. The
// first candidate that re-encodes to (c1, c2) wins, so decryption is
// deterministic even for pairs with several preimages.
//
// Pairs with no preimage pass through unchanged. Decrypt still returns the
// complete output then, alongside an error wrapping ErrNoSolutionFound, so
// callers can treat the loss as a warning rather than a failure.
func Decrypt(text, key string) (string, error) {
	nums := alphabet.Encode(text)
	if len(nums)%2 != 0 {
		return "", fmt.Errorf("pair decoding requires an even number of letters, got %d", len(nums))
	}
	keyNums := alphabet.Encode(key)
	if len(keyNums) > 0 {
		for i := range nums {
			nums[i] = utils.Mod(nums[i]-keyNums[i%len(keyNums)], core.AlphabetSize)
		}
	}

	inv3, invErr := utils.ModInverse(3, core.AlphabetSize)

	lossy := 0
	out := make([]int, 0, len(nums))
	for i := 0; i < len(nums); i += 2 {
		c1, c2 := nums[i], nums[i+1]
		a, b, ok := solvePair(c1, c2, inv3, invErr == nil)
		if !ok {
			lossy++
			a, b = c1, c2
		}
		out = append(out, a, b)
	}

	decoded := alphabet.Decode(out)
	if lossy > 0 {
		return decoded, fmt.Errorf("%d of %d pairs: %w", lossy, len(nums)/2, aqimc.ErrNoSolutionFound)
	}
	return decoded, nil
}

// solvePair finds a preimage (a, b) of the pair (c1, c2).
//
// When c2 = (a - b) mod 26 the system is linear: 3b = c1 - c2. When
// c2 = (b - a) mod 26 instead, 3a = c1 - 2*c2. Each closed form is accepted
// only if its candidate re-encodes exactly, with the a >= b branch always
// tried first. The row-major search is the safety net for the case that no
// inverse of 3 is available; it scans a ascending and returns the first hit.
func solvePair(c1, c2, inv3 int, haveInv bool) (int, int, bool) {
	if haveInv {
		b := utils.Mod((c1-c2)*inv3, core.AlphabetSize)
		a := utils.Mod(c2+b, core.AlphabetSize)
		if a >= b && pairMatches(a, b, c1, c2) {
			return a, b, true
		}
		a = utils.Mod((c1-2*c2)*inv3, core.AlphabetSize)
		b = utils.Mod(c2+a, core.AlphabetSize)
		if a < b && pairMatches(a, b, c1, c2) {
			return a, b, true
		}
	}
	for a := 0; a < core.AlphabetSize; a++ {
		for b := 0; b < core.AlphabetSize; b++ {
			if pairMatches(a, b, c1, c2) {
				return a, b, true
			}
		}
	}
	return 0, 0, false
}

// pairMatches reports whether (a, b) encodes to exactly (c1, c2).
func pairMatches(a, b, c1, c2 int) bool {
	if utils.Mod(a+2*b, core.AlphabetSize) != c1 {
		return false
	}
	return absDiff(a, b)%core.AlphabetSize == c2
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
