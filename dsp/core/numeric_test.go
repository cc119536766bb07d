package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e6, 1e6+1e-4, 1e-9) {
		t.Fatal("expected relative tolerance for large values")
	}
	if !NearlyEqual(0, 1e-13, 0) {
		t.Fatal("expected default epsilon for eps <= 0")
	}
}

func TestSinc(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "origin", x: 0, want: 1},
		{name: "negative zero", x: math.Copysign(0, -1), want: 1},
		{name: "pi", x: math.Pi, want: 0},
		{name: "half pi", x: math.Pi / 2, want: 2 / math.Pi},
		{name: "symmetric", x: -math.Pi / 2, want: 2 / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sinc(tt.x)
			if math.Abs(got-tt.want) > 1e-15 {
				t.Fatalf("Sinc(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}

	if Sinc(0) != 1 {
		t.Fatal("Sinc(0) must be exactly 1")
	}
}

func TestIsPowerOf2(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 1024, 1 << 20} {
		if !IsPowerOf2(n) {
			t.Errorf("IsPowerOf2(%d) = false, want true", n)
		}
	}
	for _, n := range []int{-4, 0, 3, 6, 12, 1000} {
		if IsPowerOf2(n) {
			t.Errorf("IsPowerOf2(%d) = true, want false", n)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) || !IsFinite(0) {
		t.Fatal("expected finite values")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("expected non-finite values")
	}
}
