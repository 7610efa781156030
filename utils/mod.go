// Package utils provides shared helpers for the AQIMC cipher: modular
// arithmetic, key fingerprinting, key generation entropy and input size
// guards for the untrusted boundaries.
package utils

import "errors"

// ErrNoInverse indicates a value with no multiplicative inverse modulo m.
var ErrNoInverse = errors.New("value has no modular inverse")

// Mod returns x mod m in [0, m). Go's % operator keeps the sign of the
// dividend, so negative inputs need the correction.
func Mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ModInverse computes the modular multiplicative inverse a^(-1) mod m.
// It uses the extended Euclidean algorithm and returns ErrNoInverse when
// gcd(a, m) != 1.
func ModInverse(a, m int) (int, error) {
	a = Mod(a, m)
	if a == 0 {
		return 0, ErrNoInverse
	}
	oldR, r := a, m
	oldS, s := 1, 0

	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, ErrNoInverse
	}
	return Mod(oldS, m), nil
}
