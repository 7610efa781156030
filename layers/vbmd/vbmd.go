// Package vbmd implements the Variable Block Matrix Diffusion layer of AQIMC.
//
// The text is processed in blocks of 2, 3 or 4 letters, each multiplied by
// an invertible key matrix mod 26 so that every output letter depends on
// the whole block.
package vbmd

import (
	"fmt"

	"github.com/bilalwebs/AQIMC-Encryption-System/alphabet"
)

// Encrypt multiplies each block of the text by the key matrix mod 26. The
// letter stream is padded with 'A' to a block multiple first. The block
// size follows from the key length, so the same key always selects the
// same geometry for both directions.
func Encrypt(text, key string) (string, error) {
	keyNums, err := alphabet.KeyNumerals(key)
	if err != nil {
		return "", err
	}
	size := BlockSize(keyNums)
	m := BuildMatrix(keyNums, size)

	nums := alphabet.Encode(text)
	for len(nums)%size != 0 {
		nums = append(nums, 0)
	}

	out := make([]int, 0, len(nums))
	for i := 0; i < len(nums); i += size {
		out = append(out, m.MulVec(nums[i:i+size])...)
	}
	return alphabet.Decode(out), nil
}

// Decrypt multiplies each block by the inverse key matrix mod 26. The
// letter count must already be a block multiple; Encrypt guarantees that
// for its own output.
func Decrypt(text, key string) (string, error) {
	keyNums, err := alphabet.KeyNumerals(key)
	if err != nil {
		return "", err
	}
	size := BlockSize(keyNums)

	nums := alphabet.Encode(text)
	if len(nums)%size != 0 {
		return "", fmt.Errorf("block diffusion requires a multiple of %d letters, got %d", size, len(nums))
	}

	inv, err := BuildMatrix(keyNums, size).Inverse()
	if err != nil {
		return "", err
	}

	out := make([]int, 0, len(nums))
	for i := 0; i < len(nums); i += size {
		out = append(out, inv.MulVec(nums[i:i+size])...)
	}
	return alphabet.Decode(out), nil
}
