package utils

import (
	"crypto/rand"
	"errors"
	"io"
)

// RandReader is the entropy source for key generation. Tests may replace
// it with a deterministic reader.
var RandReader io.Reader = rand.Reader

// RandomInt generates a cryptographically secure random integer in [0, max).
// It uses rejection sampling to keep the distribution uniform.
func RandomInt(max int) (int, error) {
	if max <= 0 {
		return 0, errors.New("max must be positive")
	}
	if max == 1 {
		return 0, nil
	}

	bitsNeeded := 0
	for m := max - 1; m > 0; m >>= 1 {
		bitsNeeded++
	}
	bytesNeeded := (bitsNeeded + 7) / 8
	mask := (1 << bitsNeeded) - 1

	buf := make([]byte, bytesNeeded)
	for {
		if _, err := io.ReadFull(RandReader, buf); err != nil {
			return 0, err
		}

		var value int
		for i := 0; i < bytesNeeded; i++ {
			value = (value << 8) | int(buf[i])
		}
		value &= mask

		if value < max {
			return value, nil
		}
	}
}
