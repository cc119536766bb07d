package tfd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cwbudde/algo-tfd/dsp/core"
)

// fftMinSize is the smallest length MethodAuto hands to the FFT backend.
// Below it the separable DFT is faster than plan creation.
const fftMinSize = 16

// Method selects how the ambiguity surface and the inverse synthesis are
// evaluated. All methods produce the same matrix within floating-point
// tolerance.
type Method int

const (
	// MethodAuto picks MethodFFT for power-of-two lengths of at least 16
	// samples and MethodSeparable otherwise.
	MethodAuto Method = iota

	// MethodDirect evaluates the four-fold inverse sum cell by cell, O(N^4).
	// It is the reference implementation.
	MethodDirect

	// MethodSeparable evaluates the inverse transform as two passes of
	// one-dimensional DFTs, O(N^3), for any N.
	MethodSeparable

	// MethodFFT uses FFT plans for every one-dimensional transform,
	// O(N^2 log N). Requires a power-of-two length.
	MethodFFT
)

var methodNames = map[Method]string{
	MethodAuto:      "auto",
	MethodDirect:    "direct",
	MethodSeparable: "separable",
	MethodFFT:       "fft",
}

// String returns the lowercase method name.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod returns the Method for a name as printed by Method.String.
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, s := range methodNames {
		if s == name {
			return m, nil
		}
	}
	return MethodAuto, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Config holds the evaluation settings of an Analyzer.
type Config struct {
	// Workers is the number of goroutines used by each parallel phase.
	Workers int

	// Method selects the evaluation strategy.
	Method Method

	// FlushDenormals runs every parallel task with subnormal floating-point
	// results flushed to zero. The caller's FP mode is never changed.
	FlushDenormals bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns GOMAXPROCS workers, MethodAuto and denormal flushing.
func DefaultConfig() Config {
	return Config{
		Workers:        runtime.GOMAXPROCS(0),
		Method:         MethodAuto,
		FlushDenormals: true,
	}
}

// WithWorkers sets the number of worker goroutines.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithMethod sets the evaluation strategy.
func WithMethod(method Method) Option {
	return func(cfg *Config) {
		if _, ok := methodNames[method]; ok {
			cfg.Method = method
		}
	}
}

// WithFlushDenormals enables or disables the flush-to-zero scope.
func WithFlushDenormals(enabled bool) Option {
	return func(cfg *Config) {
		cfg.FlushDenormals = enabled
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// resolveMethod maps MethodAuto to a concrete method for length n.
func (c Config) resolveMethod(n int) (Method, error) {
	switch c.Method {
	case MethodDirect, MethodSeparable:
		return c.Method, nil
	case MethodFFT:
		if !core.IsPowerOf2(n) {
			return MethodAuto, fmt.Errorf("%w: got %d", ErrLengthNotPowerOf2, n)
		}
		if n < 2 {
			return MethodSeparable, nil
		}
		return MethodFFT, nil
	default:
		if n >= fftMinSize && core.IsPowerOf2(n) {
			return MethodFFT, nil
		}
		return MethodSeparable, nil
	}
}
