// Package tfd computes bilinear time-frequency distributions of Cohen's class.
//
// A distribution is obtained in three steps:
//
//   - the ambiguity surface A[eta][tau] of the signal is computed,
//   - the surface is weighted pointwise by a kernel k(eta, tau, alpha),
//   - the weighted surface is inverse-transformed along both axes into the
//     (time, frequency) plane.
//
// The classical distributions are special cases of the kernel:
//
//   - [Wigner]: no smoothing, best resolution, strongest cross-terms
//   - [ChoiWilliams]: Gaussian cross-term suppression
//   - [Rihaczek]: exponential weighting
//   - [ConeShape]: Zhao-Atlas-Marks cone kernel
//
// Any function with the [Kernel] signature can be passed instead.
//
// # Usage
//
// For a single signal, use the one-shot function:
//
//	d, err := tfd.Distribution(signal, tfd.ChoiWilliams, 0.5)
//	// d[t][f] is the energy density at time index t, frequency index f
//
// For repeated analysis, keep an [Analyzer] so its workers are reused:
//
//	a := tfd.NewAnalyzer(tfd.WithWorkers(8))
//	defer a.Close()
//	for _, frame := range frames {
//	    d, err := a.Distribution(frame, tfd.ConeShape, 0.001)
//	    ...
//	}
//
// Built-in kernels can be looked up by name, which is handy for tools:
//
//	info, err := tfd.LookupKernel("zam")
//	d, err := tfd.Distribution(signal, info.Kernel, info.DefaultAlpha)
//
// # Conventions
//
// The ambiguity lag tau is split as tau/2 with integer division, and a term
// contributes only when both t+tau/2 and t-tau/2 index into the signal
// (0 <= t-tau/2 and t+tau/2 < N). Out-of-range lags are skipped, never
// wrapped. Only the real part of the inverse transform is kept and the result
// is divided by N².
//
// # Algorithm Selection
//
// All methods produce the same matrix within floating-point tolerance:
//
//   - [MethodDirect]: four-fold reference sum, O(N^4)
//   - [MethodSeparable]: row/column inverse DFTs, O(N^3), any N
//   - [MethodFFT]: row/column inverse FFTs, O(N^2 log N), power-of-two N
//
// [MethodAuto] (the default) uses the FFT for power-of-two lengths of at
// least 16 samples and the separable DFT otherwise.
//
// # Concurrency
//
// Every phase is split over independent index ranges; each output cell is
// written by exactly one task and no locks guard the matrices. The kernel
// phase finishes completely before synthesis starts. Each task runs with
// subnormal results flushed to zero on its own thread, and the previous
// floating-point mode is restored before the thread is released.
package tfd
