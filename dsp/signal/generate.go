// Package signal generates deterministic test signals for time-frequency
// analysis: tones, multi-tones, sweeps, impulses, Gabor atoms and seeded noise.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidLength is returned for non-positive sample counts.
	ErrInvalidLength = errors.New("signal: samples must be > 0")

	// ErrInvalidParameter is returned for out-of-range generator parameters.
	ErrInvalidParameter = errors.New("signal: invalid parameter")
)

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampleRate sets the sample rate in Hz. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) Option {
	return func(g *Generator) {
		if sampleRate > 0 {
			g.sampleRate = sampleRate
		}
	}
}

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator at 48 kHz with seed 1 unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		sampleRate: 48000,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed updates the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Multisine([]float64{freqHz}, amplitude, samples)
}

// Multisine generates the sum of equal-amplitude sines. Each component has
// the given amplitude, so the peak can reach len(freqsHz)·amplitude.
func (g *Generator) Multisine(freqsHz []float64, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if len(freqsHz) == 0 {
		return nil, fmt.Errorf("%w: multisine needs at least one frequency", ErrInvalidParameter)
	}
	out := make([]float64, samples)
	for _, f := range freqsHz {
		step := 2 * math.Pi * f / g.sampleRate
		for i := range out {
			out[i] += amplitude * math.Sin(step*float64(i))
		}
	}
	return out, nil
}

// LinearSweep generates a linear chirp from startHz to endHz across samples.
func (g *Generator) LinearSweep(startHz, endHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if startHz < 0 || endHz < 0 {
		return nil, fmt.Errorf("%w: sweep frequencies must be >= 0: %f, %f", ErrInvalidParameter, startHz, endHz)
	}
	out := make([]float64, samples)
	duration := float64(samples) / g.sampleRate
	rate := (endHz - startHz) / duration
	for i := range out {
		t := float64(i) / g.sampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*(startHz*t+0.5*rate*t*t))
	}
	return out, nil
}

// Impulse generates a single sample of the given amplitude at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("%w: impulse position %d outside [0,%d)", ErrInvalidParameter, pos, samples)
	}
	out := make([]float64, samples)
	out[pos] = amplitude
	return out, nil
}

// GaborAtom generates a Gaussian-windowed sine centred at centerSec with
// standard deviation widthSec. It is the signal with the most compact
// time-frequency footprint and a common reference for distributions.
func (g *Generator) GaborAtom(freqHz, amplitude, centerSec, widthSec float64, samples int) ([]float64, error) {
	if widthSec <= 0 {
		return nil, fmt.Errorf("%w: gabor width must be > 0: %f", ErrInvalidParameter, widthSec)
	}
	tone, err := g.Sine(freqHz, amplitude, samples)
	if err != nil {
		return nil, err
	}

	envelope := make([]float64, samples)
	for i := range envelope {
		d := (float64(i)/g.sampleRate - centerSec) / widthSec
		envelope[i] = math.Exp(-0.5 * d * d)
	}
	vecmath.MulBlockInPlace(tone, envelope)
	return tone, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("%w: noise amplitude must be >= 0: %f", ErrInvalidParameter, amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("%w: normalize target peak must be >= 0: %f", ErrInvalidParameter, targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: normalize input is empty", ErrInvalidLength)
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// RemoveDC returns a copy of data with its mean subtracted. A DC offset
// otherwise dominates the zero-frequency row of every distribution.
func RemoveDC(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: remove-dc input is empty", ErrInvalidLength)
	}
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out, nil
}
