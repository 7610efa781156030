package vbmd

import (
	"errors"
	"reflect"
	"testing"

	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
	"github.com/bilalwebs/AQIMC-Encryption-System/alphabet"
)

func TestBlockSize(t *testing.T) {
	cases := []struct {
		letters int
		want    int
	}{
		{1, 2},
		{4, 2},
		{9, 2},
		{10, 3},
		{19, 3},
		{20, 4},
		{30, 4},
	}
	for _, tc := range cases {
		if got := BlockSize(make([]int, tc.letters)); got != tc.want {
			t.Errorf("BlockSize(%d letters) = %d, want %d", tc.letters, got, tc.want)
		}
	}
}

func TestBuildMatrix_FromKey(t *testing.T) {
	// ALPHA = [0, 11, 15, 7, 0]; the first four numerals already form an
	// invertible matrix, so no repair happens.
	m := BuildMatrix(alphabet.Encode("ALPHA"), 2)
	want := Matrix{{0, 11}, {15, 7}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BuildMatrix(ALPHA) = %v, want %v", m, want)
	}
	if got := m.Det(); got != -165 {
		t.Errorf("Det = %d, want -165", got)
	}
}

func TestBuildMatrix_CyclesShortKey(t *testing.T) {
	// BCD = [1, 2, 3] cycles to [1, 2, 3, 1], determinant -5.
	m := BuildMatrix(alphabet.Encode("BCD"), 2)
	want := Matrix{{1, 2}, {3, 1}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BuildMatrix(BCD) = %v, want %v", m, want)
	}
}

func TestBuildMatrix_RepairFirstEntry(t *testing.T) {
	// BBBB gives [[1,1],[1,1]] with determinant 0; bumping (0,0) fixes it.
	m := BuildMatrix(alphabet.Encode("BBBB"), 2)
	want := Matrix{{2, 1}, {1, 1}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BuildMatrix(BBBB) = %v, want %v", m, want)
	}
}

func TestBuildMatrix_RepairSecondEntry(t *testing.T) {
	// AAFC gives [[0,0],[5,2]]: bumping (0,0) leaves determinant 2, so
	// (0,1) is bumped as well. Both bumps stay in the final matrix.
	m := BuildMatrix(alphabet.Encode("AAFC"), 2)
	want := Matrix{{1, 1}, {5, 2}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BuildMatrix(AAFC) = %v, want %v", m, want)
	}
}

func TestBuildMatrix_Fallback(t *testing.T) {
	// The all-zero matrix from AAAA cannot be repaired by bumps.
	m := BuildMatrix(alphabet.Encode("AAAA"), 2)
	want := Matrix{{1, 2}, {3, 7}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BuildMatrix(AAAA) = %v, want %v", m, want)
	}

	// MATRIXKEYLONG builds a 3x3 whose determinant stays even through
	// both bumps, so the fixed matrix takes over.
	m = BuildMatrix(alphabet.Encode("MATRIXKEYLONG"), 3)
	want = Matrix{{1, 2, 3}, {0, 1, 4}, {5, 6, 0}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BuildMatrix(MATRIXKEYLONG) = %v, want %v", m, want)
	}

	// The first sixteen numerals of the alphabet form a singular matrix.
	m = BuildMatrix(alphabet.Encode("ABCDEFGHIJKLMNOPQRSTUV"), 4)
	want = Matrix{{1, 2, 3, 4}, {0, 1, 2, 3}, {0, 0, 1, 2}, {0, 0, 0, 1}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BuildMatrix(alphabet key) = %v, want %v", m, want)
	}
}

func TestFallbackDeterminants(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		if got := fallbackMatrix(size).Det(); got != 1 {
			t.Errorf("fallbackMatrix(%d).Det() = %d, want 1", size, got)
		}
	}
}

func TestInverse(t *testing.T) {
	m := Matrix{{0, 11}, {15, 7}}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	want := Matrix{{5, 7}, {19, 0}}
	if !reflect.DeepEqual(inv, want) {
		t.Errorf("Inverse = %v, want %v", inv, want)
	}
}

func TestInverse_Fallbacks(t *testing.T) {
	inv3, err := fallbackMatrix(3).Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	want3 := Matrix{{2, 18, 5}, {20, 11, 22}, {21, 4, 1}}
	if !reflect.DeepEqual(inv3, want3) {
		t.Errorf("3x3 fallback inverse = %v, want %v", inv3, want3)
	}

	inv4, err := fallbackMatrix(4).Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	want4 := Matrix{{1, 24, 1, 0}, {0, 1, 24, 1}, {0, 0, 1, 24}, {0, 0, 0, 1}}
	if !reflect.DeepEqual(inv4, want4) {
		t.Errorf("4x4 fallback inverse = %v, want %v", inv4, want4)
	}
}

func TestInverse_NotInvertible(t *testing.T) {
	m := Matrix{{2, 4}, {6, 8}}
	if _, err := m.Inverse(); !errors.Is(err, aqimc.ErrMatrixNotInvertible) {
		t.Errorf("Inverse err = %v, want ErrMatrixNotInvertible", err)
	}
}

func TestInverse_UndoesMulVec(t *testing.T) {
	keys := []string{"ALPHA", "BBBB", "AAAA", "SECRETMATRIXKEY", "ABCDEFGHIJKLMNOPQRSTUV"}
	for _, key := range keys {
		keyNums := alphabet.Encode(key)
		size := BlockSize(keyNums)
		m := BuildMatrix(keyNums, size)
		inv, err := m.Inverse()
		if err != nil {
			t.Fatalf("Inverse for key %q failed: %v", key, err)
		}
		for unit := 0; unit < size; unit++ {
			v := make([]int, size)
			v[unit] = 1
			got := inv.MulVec(m.MulVec(v))
			if !reflect.DeepEqual(got, v) {
				t.Errorf("key %q: inv(m(e%d)) = %v, want %v", key, unit, got, v)
			}
		}
	}
}
