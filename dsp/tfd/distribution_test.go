package tfd

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"testing"

	"github.com/cwbudde/algo-tfd/internal/fpmode"
	"github.com/cwbudde/algo-tfd/internal/testutil"
)

// referenceWigner evaluates the Wigner distribution without going through
// the ambiguity domain. Summing the inverse transform over eta collapses the
// modulation to t, which leaves
//
//	D[t][f] = (1/N)·Σ_tau x[t+tau/2]·x[t-tau/2]·cos(2π·f·tau/N)
//
// over the valid lag window.
func referenceWigner(x []float64) [][]float64 {
	n := len(x)
	out := make([][]float64, n)
	for t := range n {
		out[t] = make([]float64, n)
		for f := range n {
			var sum float64
			for tau := range n {
				h := tau / 2
				if t-h < 0 || t+h >= n {
					continue
				}
				sum += x[t+h] * x[t-h] * math.Cos(2*math.Pi*float64(f*tau)/float64(n))
			}
			out[t][f] = sum / float64(n)
		}
	}
	return out
}

var allMethods = []Method{MethodDirect, MethodSeparable, MethodFFT}

func TestDistributionEmpty(t *testing.T) {
	d, err := Distribution(nil, Wigner, 0)
	if err != nil {
		t.Fatalf("Distribution(nil) error = %v", err)
	}
	if d == nil || len(d) != 0 {
		t.Fatalf("Distribution(nil) = %#v, want empty non-nil", d)
	}
}

func TestDistributionSingleSample(t *testing.T) {
	for _, method := range allMethods {
		for _, info := range Kernels() {
			t.Run(method.String()+"/"+info.Name, func(t *testing.T) {
				d, err := Distribution([]float64{-3}, info.Kernel, info.DefaultAlpha, WithMethod(method))
				if err != nil {
					t.Fatalf("Distribution() error = %v", err)
				}
				testutil.RequireSquare(t, d, 1)
				if math.Abs(d[0][0]-9) > 1e-12 {
					t.Fatalf("D[0][0] = %v, want 9", d[0][0])
				}
			})
		}
	}
}

func TestDistributionDimensions(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13, 16, 32} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			x := testutil.DeterministicNoise(int64(n), 1, n)
			d, err := Distribution(x, ConeShape, 0.01)
			if err != nil {
				t.Fatalf("Distribution() error = %v", err)
			}
			testutil.RequireSquare(t, d, n)
			for _, row := range d {
				testutil.RequireFinite(t, row)
			}
		})
	}
}

func TestWignerMatchesReference(t *testing.T) {
	x := []float64{0.5, -1, 2, 0.25, -0.75, 1.5, 3, -2}
	want := referenceWigner(x)

	for _, method := range allMethods {
		t.Run(method.String(), func(t *testing.T) {
			got, err := Distribution(x, Wigner, 0, WithMethod(method))
			if err != nil {
				t.Fatalf("Distribution() error = %v", err)
			}
			testutil.RequireMatrixNearlyEqual(t, got, want, 1e-9)
		})
	}
}

func TestMethodsAgree(t *testing.T) {
	signals := map[string][]float64{
		"chirp": testutil.LinearChirp(0.05, 0.4, 32),
		"noise": testutil.DeterministicNoise(3, 1, 32),
		"sine":  testutil.DeterministicSine(0.125, 0.8, 32),
	}

	for name, x := range signals {
		for _, info := range Kernels() {
			t.Run(name+"/"+info.Name, func(t *testing.T) {
				ref, err := Distribution(x, info.Kernel, info.DefaultAlpha, WithMethod(MethodDirect))
				if err != nil {
					t.Fatalf("direct error = %v", err)
				}
				for _, method := range []Method{MethodSeparable, MethodFFT, MethodAuto} {
					got, err := Distribution(x, info.Kernel, info.DefaultAlpha, WithMethod(method))
					if err != nil {
						t.Fatalf("%s error = %v", method, err)
					}
					testutil.RequireMatrixNearlyEqual(t, got, ref, 1e-9)
				}
			})
		}
	}
}

func TestMethodsAgreeNonPowerOfTwo(t *testing.T) {
	x := testutil.LinearChirp(0.02, 0.3, 12)
	ref, err := Distribution(x, ChoiWilliams, 0.2, WithMethod(MethodDirect))
	if err != nil {
		t.Fatalf("direct error = %v", err)
	}
	got, err := Distribution(x, ChoiWilliams, 0.2)
	if err != nil {
		t.Fatalf("auto error = %v", err)
	}
	testutil.RequireMatrixNearlyEqual(t, got, ref, 1e-9)
}

func TestEnergyScaling(t *testing.T) {
	const c = -2.5
	x := testutil.DeterministicNoise(11, 1, 16)

	for _, info := range Kernels() {
		t.Run(info.Name, func(t *testing.T) {
			base, err := Distribution(x, info.Kernel, info.DefaultAlpha)
			if err != nil {
				t.Fatalf("Distribution() error = %v", err)
			}
			scaled, err := Distribution(testutil.Scaled(x, c), info.Kernel, info.DefaultAlpha)
			if err != nil {
				t.Fatalf("Distribution() error = %v", err)
			}

			want := make([][]float64, len(base))
			for i, row := range base {
				want[i] = testutil.Scaled(row, c*c)
			}
			testutil.RequireMatrixNearlyEqual(t, scaled, want, 1e-9)
		})
	}
}

func TestMarginalsOfBuiltinKernels(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 16)
	power := make([]float64, len(x))
	var energy float64
	for i, v := range x {
		power[i] = v * v
		energy += v * v
	}

	for _, info := range Kernels() {
		t.Run(info.Name, func(t *testing.T) {
			d, err := Distribution(x, info.Kernel, info.DefaultAlpha)
			if err != nil {
				t.Fatalf("Distribution() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, TimeMarginal(d), power, 1e-9)
			if got := TotalEnergy(d); math.Abs(got-energy) > 1e-9 {
				t.Fatalf("TotalEnergy = %v, want %v", got, energy)
			}
		})
	}
}

func TestCustomKernel(t *testing.T) {
	x := testutil.DeterministicNoise(9, 1, 8)

	zero := func(_, _, _ float64) float64 { return 0 }
	d, err := Distribution(x, zero, 0)
	if err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	for t2, row := range d {
		for f, v := range row {
			if v != 0 {
				t.Fatalf("D[%d][%d] = %v, want 0", t2, f, v)
			}
		}
	}

	// A closure scaling the Wigner kernel scales the result.
	gain := 4.0
	scaledWigner := func(eta, tau, alpha float64) float64 { return gain * Wigner(eta, tau, alpha) }
	got, err := Distribution(x, scaledWigner, 0)
	if err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	ref := referenceWigner(x)
	for i := range ref {
		ref[i] = testutil.Scaled(ref[i], gain)
	}
	testutil.RequireMatrixNearlyEqual(t, got, ref, 1e-9)
}

func TestDistributionErrors(t *testing.T) {
	x := []float64{1, 2, 3}

	if _, err := Distribution(x, nil, 0); !errors.Is(err, ErrNilKernel) {
		t.Errorf("nil kernel: error = %v, want ErrNilKernel", err)
	}

	nan := func(eta, tau, _ float64) float64 {
		if eta == 2 && tau == 1 {
			return math.NaN()
		}
		return 1
	}
	if _, err := Distribution(x, nan, 0); !errors.Is(err, ErrNonFiniteKernel) {
		t.Errorf("NaN kernel: error = %v, want ErrNonFiniteKernel", err)
	}

	if _, err := Distribution(x, Rihaczek, -1e6); !errors.Is(err, ErrNonFiniteKernel) {
		t.Errorf("overflowing kernel: error = %v, want ErrNonFiniteKernel", err)
	}

	if _, err := Distribution(make([]float64, 12), Wigner, 0, WithMethod(MethodFFT)); !errors.Is(err, ErrLengthNotPowerOf2) {
		t.Errorf("fft with n=12: error = %v, want ErrLengthNotPowerOf2", err)
	}
}

func TestDistributionDeterministic(t *testing.T) {
	x := testutil.LinearChirp(0.01, 0.45, 24)

	for _, method := range []Method{MethodDirect, MethodSeparable} {
		t.Run(method.String(), func(t *testing.T) {
			ref, err := Distribution(x, ChoiWilliams, 0.05, WithMethod(method), WithWorkers(1))
			if err != nil {
				t.Fatalf("Distribution() error = %v", err)
			}
			for _, workers := range []int{1, 2, 3, 7, 16} {
				got, err := Distribution(x, ChoiWilliams, 0.05, WithMethod(method), WithWorkers(workers))
				if err != nil {
					t.Fatalf("Distribution() error = %v", err)
				}
				for i := range ref {
					for j := range ref[i] {
						if got[i][j] != ref[i][j] {
							t.Fatalf("workers=%d: D[%d][%d] = %v, want %v (bit-identical)", workers, i, j, got[i][j], ref[i][j])
						}
					}
				}
			}
		})
	}
}

func TestAnalyzerConcurrentStress(t *testing.T) {
	const n = 64
	goroutines := 4 * runtime.GOMAXPROCS(0)
	if testing.Short() {
		goroutines = 4
	}

	x := testutil.DeterministicNoise(21, 1, n)
	a := NewAnalyzer(WithWorkers(runtime.GOMAXPROCS(0)))
	defer a.Close()

	ref, err := a.Distribution(x, ConeShape, 0.001)
	if err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	results := make([][][]float64, goroutines)
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[g], errs[g] = a.Distribution(x, ConeShape, 0.001)
		}()
	}
	wg.Wait()

	for g := range goroutines {
		if errs[g] != nil {
			t.Fatalf("goroutine %d: error = %v", g, errs[g])
		}
		testutil.RequireMatrixNearlyEqual(t, results[g], ref, 1e-12)
	}
}

func TestDistributionDoesNotLeakFPMode(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	x := testutil.DeterministicNoise(1, 1, 16)
	if _, err := Distribution(x, ChoiWilliams, 0.5, WithWorkers(1)); err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	if fpmode.Enabled() {
		t.Fatal("flush-to-zero left enabled on the caller's thread")
	}
}

func TestFlushDenormalsDoesNotChangeResult(t *testing.T) {
	x := testutil.LinearChirp(0.05, 0.35, 16)
	on, err := Distribution(x, ChoiWilliams, 2, WithFlushDenormals(true))
	if err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	off, err := Distribution(x, ChoiWilliams, 2, WithFlushDenormals(false))
	if err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	testutil.RequireMatrixNearlyEqual(t, on, off, 1e-12)
}

func TestDistributionDoesNotModifyInput(t *testing.T) {
	x := []float64{1, -2, 3, -4, 5}
	orig := append([]float64(nil), x...)
	if _, err := Distribution(x, Rihaczek, 0.1); err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}
