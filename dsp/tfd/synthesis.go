package tfd

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tfd/dsp/core"
)

// applyKernel returns a new surface W[eta][tau] = A[eta][tau]·k(eta, tau, alpha).
// Rows are independent; the ambiguity surface is left untouched.
func (a *Analyzer) applyKernel(amb *surface, kernel Kernel, alpha float64) (*surface, error) {
	n := amb.n
	weighted := newSurface(n)

	err := a.parallel(n, func(start, end int) error {
		weights := make([]float64, n)
		for eta := start; eta < end; eta++ {
			fe := float64(eta)
			for tau := range weights {
				v := kernel(fe, float64(tau), alpha)
				if !core.IsFinite(v) {
					return fmt.Errorf("%w: k(%d, %d, %g) = %v", ErrNonFiniteKernel, eta, tau, alpha, v)
				}
				weights[tau] = v
			}

			aRe, aIm := amb.row(eta)
			wRe, wIm := weighted.row(eta)
			vecmath.MulBlock(wRe, aRe, weights)
			vecmath.MulBlock(wIm, aIm, weights)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return weighted, nil
}

// synthesize evaluates
//
//	D[t][f] = Re(Σ_eta Σ_tau W[eta][tau]·exp(+2πi·(t·eta + f·tau)/N)) / N²
//
// with the requested method. The caller must not start synthesis before
// applyKernel has returned.
func (a *Analyzer) synthesize(w *surface, method Method) ([][]float64, error) {
	out := core.Matrix[float64](w.n, w.n)

	var err error
	switch method {
	case MethodDirect:
		a.synthesizeDirect(w, out)
	case MethodFFT:
		err = a.synthesizeFFT(w, out)
	default:
		a.synthesizeSeparable(w, out)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// synthesizeDirect is the reference four-fold sum. Every output cell owns a
// single accumulator; rows are distributed over the pool.
func (a *Analyzer) synthesizeDirect(w *surface, out [][]float64) {
	n := w.n
	tw := newTwiddles(n)
	norm := 1 / float64(n*n)

	_ = a.parallel(n, func(start, end int) error {
		for t := start; t < end; t++ {
			row := out[t]
			for f := range n {
				var sum float64
				kt := 0 // (t·eta) mod n
				for eta := range n {
					wRe, wIm := w.row(eta)
					k := kt // (t·eta + f·tau) mod n
					for tau := range n {
						sum += wRe[tau]*tw.cos[k] - wIm[tau]*tw.sin[k]
						k += f
						if k >= n {
							k -= n
						}
					}
					kt += t
					if kt >= n {
						kt -= n
					}
				}
				row[f] = sum * norm
			}
		}
		return nil
	})
}

// synthesizeSeparable computes the same sum as two passes of inverse DFTs:
// first along tau for every eta, then along eta for every output row.
func (a *Analyzer) synthesizeSeparable(w *surface, out [][]float64) {
	n := w.n
	tw := newTwiddles(n)
	norm := 1 / float64(n*n)

	// G[eta][f] = Σ_tau W[eta][tau]·exp(+2πi·f·tau/N)
	g := newSurface(n)
	_ = a.parallel(n, func(start, end int) error {
		for eta := start; eta < end; eta++ {
			wRe, wIm := w.row(eta)
			gRe, gIm := g.row(eta)
			for f := range n {
				var re, im float64
				k := 0
				for tau := range n {
					c, s := tw.cos[k], tw.sin[k]
					re += wRe[tau]*c - wIm[tau]*s
					im += wRe[tau]*s + wIm[tau]*c
					k += f
					if k >= n {
						k -= n
					}
				}
				gRe[f], gIm[f] = re, im
			}
		}
		return nil
	})

	// D[t][f] = Re(Σ_eta G[eta][f]·exp(+2πi·t·eta/N)) / N²
	_ = a.parallel(n, func(start, end int) error {
		for t := start; t < end; t++ {
			row := out[t]
			k := 0
			for eta := range n {
				c, s := tw.cos[k], tw.sin[k]
				gRe, gIm := g.row(eta)
				for f := range row {
					row[f] += gRe[f]*c - gIm[f]*s
				}
				k += t
				if k >= n {
					k -= n
				}
			}
			for f := range row {
				row[f] *= norm
			}
		}
		return nil
	})
}

// synthesizeFFT runs the two passes of synthesizeSeparable with inverse FFT
// plans. The backend normalises each inverse by 1/N, which yields the 1/N²
// factor after both passes.
func (a *Analyzer) synthesizeFFT(w *surface, out [][]float64) error {
	n := w.n
	g := make([]complex128, n*n)

	err := a.parallel(n, func(start, end int) error {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return fmt.Errorf("tfd: failed to create FFT plan: %w", err)
		}
		in := make([]complex128, n)
		for eta := start; eta < end; eta++ {
			wRe, wIm := w.row(eta)
			for tau := range in {
				in[tau] = complex(wRe[tau], wIm[tau])
			}
			if err := plan.Inverse(g[eta*n:(eta+1)*n], in); err != nil {
				return fmt.Errorf("tfd: inverse FFT failed at eta=%d: %w", eta, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return a.parallel(n, func(start, end int) error {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return fmt.Errorf("tfd: failed to create FFT plan: %w", err)
		}
		col := make([]complex128, n)
		res := make([]complex128, n)
		for f := start; f < end; f++ {
			for eta := range col {
				col[eta] = g[eta*n+f]
			}
			if err := plan.Inverse(res, col); err != nil {
				return fmt.Errorf("tfd: inverse FFT failed at f=%d: %w", f, err)
			}
			for t, v := range res {
				out[t][f] = real(v)
			}
		}
		return nil
	})
}
