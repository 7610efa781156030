package vbmd

import (
	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
	"github.com/bilalwebs/AQIMC-Encryption-System/core"
	"github.com/bilalwebs/AQIMC-Encryption-System/utils"
)

// Matrix is a square matrix over the residue ring mod 26.
type Matrix [][]int

// BlockSize selects the diffusion block width from the number of key
// letters: fewer than 10 give 2, fewer than 20 give 3, anything longer 4.
func BlockSize(keyNums []int) int {
	switch {
	case len(keyNums) < 10:
		return 2
	case len(keyNums) < 20:
		return 3
	default:
		return 4
	}
}

// BuildMatrix fills a size x size matrix row-major from the key numerals,
// cycling the key when it is shorter than size*size, then repairs it until
// the determinant is coprime with 26: entry (0,0) is bumped by one, then
// entry (0,1), and as a last resort a fixed invertible matrix replaces it.
// The result is always invertible mod 26.
func BuildMatrix(keyNums []int, size int) Matrix {
	m := make(Matrix, size)
	for r := 0; r < size; r++ {
		m[r] = make([]int, size)
		for c := 0; c < size; c++ {
			m[r][c] = keyNums[(r*size+c)%len(keyNums)]
		}
	}
	if m.invertible() {
		return m
	}
	m[0][0] = (m[0][0] + 1) % core.AlphabetSize
	if m.invertible() {
		return m
	}
	m[0][1] = (m[0][1] + 1) % core.AlphabetSize
	if m.invertible() {
		return m
	}
	return fallbackMatrix(size)
}

// fallbackMatrix returns a fresh copy of the fixed matrix used when the
// key-derived matrix cannot be repaired. All three have determinant 1.
func fallbackMatrix(size int) Matrix {
	switch size {
	case 2:
		return Matrix{{1, 2}, {3, 7}}
	case 3:
		return Matrix{{1, 2, 3}, {0, 1, 4}, {5, 6, 0}}
	default:
		return Matrix{{1, 2, 3, 4}, {0, 1, 2, 3}, {0, 0, 1, 2}, {0, 0, 0, 1}}
	}
}

func (m Matrix) invertible() bool {
	return utils.GCD(m.Det(), core.AlphabetSize) == 1
}

// Det computes the exact integer determinant by cofactor expansion along
// the first row. Block sizes never exceed 4, so the recursion stays tiny,
// and integer arithmetic avoids the rounding that plagues floating-point
// determinants of integer matrices.
func (m Matrix) Det() int {
	switch len(m) {
	case 0:
		return 1
	case 1:
		return m[0][0]
	case 2:
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}
	det := 0
	sign := 1
	for c := range m[0] {
		det += sign * m[0][c] * m.minor(0, c).Det()
		sign = -sign
	}
	return det
}

// minor returns m with row r and column c removed.
func (m Matrix) minor(r, c int) Matrix {
	out := make(Matrix, 0, len(m)-1)
	for i := range m {
		if i == r {
			continue
		}
		row := make([]int, 0, len(m)-1)
		for j := range m[i] {
			if j == c {
				continue
			}
			row = append(row, m[i][j])
		}
		out = append(out, row)
	}
	return out
}

// Inverse returns the matrix inverse mod 26 via the adjugate:
// inv = det^(-1) * adj(m), entry (r,c) of the adjugate being the (c,r)
// cofactor. It fails with ErrMatrixNotInvertible when the determinant
// shares a factor with 26.
func (m Matrix) Inverse() (Matrix, error) {
	detInv, err := utils.ModInverse(m.Det(), core.AlphabetSize)
	if err != nil {
		return nil, aqimc.ErrMatrixNotInvertible
	}
	n := len(m)
	inv := make(Matrix, n)
	for r := 0; r < n; r++ {
		inv[r] = make([]int, n)
		for c := 0; c < n; c++ {
			cof := m.minor(c, r).Det()
			if (r+c)%2 != 0 {
				cof = -cof
			}
			inv[r][c] = utils.Mod(detInv*cof, core.AlphabetSize)
		}
	}
	return inv, nil
}

// MulVec multiplies m by a column vector mod 26.
func (m Matrix) MulVec(v []int) []int {
	out := make([]int, len(m))
	for r := range m {
		sum := 0
		for c, entry := range m[r] {
			sum += entry * v[c]
		}
		out[r] = utils.Mod(sum, core.AlphabetSize)
	}
	return out
}
