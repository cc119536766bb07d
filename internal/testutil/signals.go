package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave at a normalised frequency
// (cycles per sample).
func DeterministicSine(cyclesPerSample, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * cyclesPerSample
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// LinearChirp sweeps from f0 to f1 (cycles per sample) over length samples.
func LinearChirp(f0, f1 float64, length int) []float64 {
	out := make([]float64, length)
	if length == 0 {
		return out
	}
	rate := (f1 - f0) / float64(length)
	for i := range out {
		n := float64(i)
		out[i] = math.Cos(2 * math.Pi * (f0*n + 0.5*rate*n*n))
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Scaled returns a copy of x multiplied by c.
func Scaled(x []float64, c float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * c
	}
	return out
}
