package tfd

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// surface is an n×n complex matrix stored as split real and imaginary
// planes, row-major by the first index.
type surface struct {
	n  int
	re []float64
	im []float64
}

func newSurface(n int) *surface {
	return &surface{
		n:  n,
		re: make([]float64, n*n),
		im: make([]float64, n*n),
	}
}

func (s *surface) at(row, col int) complex128 {
	i := row*s.n + col
	return complex(s.re[i], s.im[i])
}

func (s *surface) row(r int) (re, im []float64) {
	lo, hi := r*s.n, (r+1)*s.n
	return s.re[lo:hi:hi], s.im[lo:hi:hi]
}

// twiddles holds cos(2πk/n) and sin(2πk/n) for k in [0, n).
// Indexing by (a·b) mod n keeps every angle reduced, so long sums do not
// lose precision to large trigonometric arguments.
type twiddles struct {
	cos []float64
	sin []float64
}

func newTwiddles(n int) twiddles {
	tw := twiddles{
		cos: make([]float64, n),
		sin: make([]float64, n),
	}
	for k := range n {
		phi := 2 * math.Pi * float64(k) / float64(n)
		tw.sin[k], tw.cos[k] = math.Sincos(phi)
	}
	return tw
}

// halfLagWindow returns the range of t for which both t+tau/2 and t-tau/2
// index into a signal of length n. The lower bound is inclusive:
// t-tau/2 >= 0. An empty window has lo > hi.
func halfLagWindow(n, tau int) (h, lo, hi int) {
	h = tau / 2
	return h, h, n - 1 - h
}

// lagProduct writes x[t+h]·x[t-h] into dst for every t in the valid window
// of column tau and zero elsewhere. The signal is real, so the conjugate of
// the second factor is the factor itself.
func lagProduct(dst, x []float64, tau int) {
	clear(dst)
	h, lo, hi := halfLagWindow(len(x), tau)
	for t := lo; t <= hi; t++ {
		dst[t] = x[t+h] * x[t-h]
	}
}

// ambiguity computes
//
//	A[eta][tau] = Σ_t x[t+tau/2]·x[t-tau/2]·exp(-2πi·eta·t/N)
//
// over the valid window of each column. Columns are independent and are
// distributed over the worker pool.
func (a *Analyzer) ambiguity(x []float64, method Method) (*surface, error) {
	n := len(x)
	amb := newSurface(n)

	if method == MethodFFT {
		err := a.parallel(n, func(start, end int) error {
			return ambiguityColumnsFFT(amb, x, start, end)
		})
		if err != nil {
			return nil, err
		}
		return amb, nil
	}

	tw := newTwiddles(n)
	// Column cost shrinks with tau, so columns are handed out one at a time.
	a.parallelEach(n, func(tau int) {
		lag := make([]float64, n)
		ambiguityColumnDFT(amb, x, tau, lag, tw)
	})
	return amb, nil
}

// ambiguityColumnDFT evaluates column tau with a direct DFT over the lag
// product.
func ambiguityColumnDFT(amb *surface, x []float64, tau int, lag []float64, tw twiddles) {
	n := amb.n
	lagProduct(lag, x, tau)
	_, lo, hi := halfLagWindow(n, tau)

	for eta := range n {
		var re, im float64
		k := (eta * lo) % n
		for t := lo; t <= hi; t++ {
			p := lag[t]
			re += p * tw.cos[k]
			im -= p * tw.sin[k]
			k += eta
			if k >= n {
				k -= n
			}
		}
		amb.re[eta*n+tau] = re
		amb.im[eta*n+tau] = im
	}
}

// ambiguityColumnsFFT evaluates columns [start, end) with a forward FFT of
// each lag product. Each call owns its plan and scratch buffers.
func ambiguityColumnsFFT(amb *surface, x []float64, start, end int) error {
	n := amb.n
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return fmt.Errorf("tfd: failed to create FFT plan: %w", err)
	}

	lag := make([]float64, n)
	in := make([]complex128, n)
	out := make([]complex128, n)

	for tau := start; tau < end; tau++ {
		lagProduct(lag, x, tau)
		for t, v := range lag {
			in[t] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return fmt.Errorf("tfd: forward FFT failed at tau=%d: %w", tau, err)
		}

		for eta, v := range out {
			amb.re[eta*n+tau] = real(v)
			amb.im[eta*n+tau] = imag(v)
		}
	}
	return nil
}
