package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("Expected 3 vectors, got %d", A.NVecs())
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("Expected an error for a slice not divisible by 3")
	}
	if _, err := NewMatrix(nil); err == nil {
		Te.Error("Expected an error for an empty slice")
	}
}

func TestDist(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 3, 4, 0, 3, 4, 12})
	if err != nil {
		Te.Fatal(err)
	}
	if d := A.Dist(0, 1); math.Abs(d-5) > 1e-12 {
		Te.Errorf("Expected distance 5, got %f", d)
	}
	if d := A.Dist(0, 2); math.Abs(d-13) > 1e-12 {
		Te.Errorf("Expected distance 13, got %f", d)
	}
	if A.Dist(1, 2) != A.Dist(2, 1) {
		Te.Error("Distance is not symmetric")
	}
	B := Zeros(2)
	if B.Dist(0, 1) != 0 || B.NVecs() != 2 {
		Te.Errorf("Zeros(2) should be two vectors at the origin, got %v", B)
	}
}

func TestVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	v := A.Vec(1)
	v[0] = 10
	if A.At(1, 0) != 10 {
		Te.Error("Changes in the vector are not reflected in the original matrix")
	}
	if w := A.Vec(1); w[0] != 10 || w[1] != 2 {
		Te.Errorf("Wrong vector: %v", w)
	}
	defer func() {
		if r := recover(); r != ErrIndexOutOfRange {
			Te.Errorf("expected a panic for an out of range vector, got %v", r)
		}
	}()
	A.Vec(2)
}
