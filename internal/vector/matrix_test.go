package vector

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func TestSaveLoadMatrix_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts", "embs.bin")
	m := [][]float32{
		{0.1, 0.2, 0.3},
		{-1, 0, 1},
	}
	if err := SaveMatrix(path, m, "fp123"); err != nil {
		t.Fatal(err)
	}
	got, fp, err := LoadMatrix(path)
	if err != nil {
		t.Fatal(err)
	}
	if fp != "fp123" {
		t.Errorf("fingerprint = %q, want %q", fp, "fp123")
	}
	if len(got) != len(m) {
		t.Fatalf("rows = %d, want %d", len(got), len(m))
	}
	for i := range m {
		for j := range m[i] {
			if got[i][j] != m[i][j] {
				t.Errorf("m[%d][%d] = %v, want %v", i, j, got[i][j], m[i][j])
			}
		}
	}
}

func TestLoadMatrix_NotFound(t *testing.T) {
	_, _, err := LoadMatrix(filepath.Join(t.TempDir(), "missing.bin"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSaveLoadMatrix_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := SaveMatrix(path, nil, "fp"); err != nil {
		t.Fatal(err)
	}
	got, fp, err := LoadMatrix(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 || fp != "fp" {
		t.Errorf("got %d rows, fp %q", len(got), fp)
	}
}

func TestSaveMatrix_RaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	err := SaveMatrix(path, [][]float32{{1, 2}, {3}}, "fp")
	if err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestInnerProduct(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}
	if got := InnerProduct(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("InnerProduct(a,a) = %v, want 1", got)
	}
	if got := InnerProduct(a, b); got != 0 {
		t.Errorf("InnerProduct(a,b) = %v, want 0", got)
	}
	if got := InnerProduct(a, []float32{1, 2}); got != 0 {
		t.Errorf("mismatched lengths should yield 0, got %v", got)
	}
}

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	NormalizeL2(v)
	if norm := L2Norm(v); math.Abs(norm-1) > 1e-6 {
		t.Errorf("norm = %v, want 1", norm)
	}
}

func TestNormalizeL2_ZeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	NormalizeL2(v)
	for i, x := range v {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			t.Errorf("v[%d] = %v after normalizing zero vector", i, x)
		}
	}
}
