// Package dkss implements the Dynamic Key-Shift Substitution layer of AQIMC.
package dkss

import (
	"github.com/bilalwebs/AQIMC-Encryption-System/alphabet"
	"github.com/bilalwebs/AQIMC-Encryption-System/core"
	"github.com/bilalwebs/AQIMC-Encryption-System/utils"
)

// Encrypt shifts each letter by the cycling key plus its own position:
// C_i = (P_i + K[i mod |K|] + i) mod 26. The position term makes repeated
// plaintext letters encrypt differently. Non-letter runes are dropped
// before shifting; empty input maps to "".
func Encrypt(text, key string) (string, error) {
	nums := alphabet.Encode(text)
	if len(nums) == 0 {
		return "", nil
	}
	keyNums, err := alphabet.KeyNumerals(key)
	if err != nil {
		return "", err
	}
	out := make([]int, len(nums))
	for i, p := range nums {
		out[i] = utils.Mod(p+keyNums[i%len(keyNums)]+i, core.AlphabetSize)
	}
	return alphabet.Decode(out), nil
}

// Decrypt inverts Encrypt: P_i = (C_i - K[i mod |K|] - i) mod 26.
func Decrypt(text, key string) (string, error) {
	nums := alphabet.Encode(text)
	if len(nums) == 0 {
		return "", nil
	}
	keyNums, err := alphabet.KeyNumerals(key)
	if err != nil {
		return "", err
	}
	out := make([]int, len(nums))
	for i, c := range nums {
		out[i] = utils.Mod(c-keyNums[i%len(keyNums)]-i, core.AlphabetSize)
	}
	return alphabet.Decode(out), nil
}
