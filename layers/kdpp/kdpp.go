// Package kdpp implements the Key-Driven Positional Permutation layer of AQIMC.
//
// Unlike the other layers it does not run through the letter codec: the
// input is permuted rune for rune exactly as given, so spacing and
// punctuation survive in scrambled positions.
package kdpp

import (
	"github.com/bilalwebs/AQIMC-Encryption-System/alphabet"
	"github.com/bilalwebs/AQIMC-Encryption-System/utils"
)

// Permutation derives the length-n position table from the key numerals.
// Starting from the identity, position i is swapped with
// (i + key[i mod |key|]) mod n, one pass left to right. Swaps are
// bijective, so the table is always a valid permutation. keyNums must be
// non-empty.
func Permutation(n int, keyNums []int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < n; i++ {
		j := utils.Mod(i+keyNums[i%len(keyNums)], n)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Encrypt scatters the text runes: the rune at position i moves to
// position perm[i]. Empty input maps to itself before the key is checked.
func Encrypt(text, key string) (string, error) {
	if text == "" {
		return "", nil
	}
	keyNums, err := alphabet.KeyNumerals(key)
	if err != nil {
		return "", err
	}
	runes := []rune(text)
	perm := Permutation(len(runes), keyNums)
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[perm[i]] = r
	}
	return string(out), nil
}

// Decrypt gathers the runes back: position i is read from perm[i].
func Decrypt(text, key string) (string, error) {
	if text == "" {
		return "", nil
	}
	keyNums, err := alphabet.KeyNumerals(key)
	if err != nil {
		return "", err
	}
	runes := []rune(text)
	perm := Permutation(len(runes), keyNums)
	out := make([]rune, len(runes))
	for i := range runes {
		out[i] = runes[perm[i]]
	}
	return string(out), nil
}
