package tfd

import (
	"github.com/cwbudde/algo-tfd/internal/fpmode"
	"github.com/cwbudde/algo-tfd/internal/workerpool"
)

// Analyzer computes Cohen's class distributions with a fixed configuration
// and a persistent worker pool. It is safe for concurrent use; Close must
// not be called while a Distribution call is in flight.
type Analyzer struct {
	cfg  Config
	pool *workerpool.Pool
}

// NewAnalyzer creates an Analyzer. Call Close to release its workers.
func NewAnalyzer(opts ...Option) *Analyzer {
	cfg := ApplyOptions(opts...)
	return &Analyzer{
		cfg:  cfg,
		pool: workerpool.New(cfg.Workers),
	}
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Close stops the worker goroutines. Calling Close multiple times is safe.
func (a *Analyzer) Close() {
	a.pool.Close()
}

// Distribution returns the N×N time-frequency distribution of signal,
// indexed [time][frequency], for the given kernel and spread parameter.
//
// An empty signal yields an empty matrix. The returned matrix is freshly
// allocated and owned by the caller.
func (a *Analyzer) Distribution(signal []float64, kernel Kernel, alpha float64) ([][]float64, error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}

	n := len(signal)
	if n == 0 {
		return [][]float64{}, nil
	}

	method, err := a.cfg.resolveMethod(n)
	if err != nil {
		return nil, err
	}

	amb, err := a.ambiguity(signal, method)
	if err != nil {
		return nil, err
	}

	weighted, err := a.applyKernel(amb, kernel, alpha)
	if err != nil {
		return nil, err
	}

	return a.synthesize(weighted, method)
}

// Distribution is a one-shot helper that creates a temporary Analyzer.
// For repeated calls, reuse an Analyzer to keep its worker pool alive.
func Distribution(signal []float64, kernel Kernel, alpha float64, opts ...Option) ([][]float64, error) {
	a := NewAnalyzer(opts...)
	defer a.Close()
	return a.Distribution(signal, kernel, alpha)
}

// parallel splits [0, n) over the pool and runs each chunk inside the
// configured FP scope. It returns after every chunk has finished.
func (a *Analyzer) parallel(n int, fn func(start, end int) error) error {
	return a.pool.ParallelForErr(n, func(start, end int) error {
		var err error
		a.scoped(func() {
			err = fn(start, end)
		})
		return err
	})
}

// parallelEach hands out indices one at a time, for work whose cost varies
// with the index.
func (a *Analyzer) parallelEach(n int, fn func(i int)) {
	a.pool.ParallelForAtomic(n, func(i int) {
		a.scoped(func() {
			fn(i)
		})
	})
}

func (a *Analyzer) scoped(fn func()) {
	if a.cfg.FlushDenormals {
		fpmode.Run(fn)
		return
	}
	fn()
}
