package tfd

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-tfd/dsp/core"
)

// Kernel weights the ambiguity surface at delay-frequency index eta and
// delay-time index tau. alpha is the kernel-specific spread parameter.
//
// eta and tau are the raw index magnitudes of the ambiguity matrix, not
// physical frequencies or times. A Kernel is called concurrently from many
// goroutines and must not mutate shared state.
type Kernel func(eta, tau, alpha float64) float64

// Wigner is the constant kernel. No smoothing: highest resolution and the
// strongest cross-terms.
func Wigner(_, _, _ float64) float64 {
	return 1
}

// ChoiWilliams is the Gaussian kernel exp(-alpha·eta²·tau²/2).
// Larger alpha suppresses more cross-term energy away from the axes.
func ChoiWilliams(eta, tau, alpha float64) float64 {
	return math.Exp(-alpha * (eta * eta) * (tau * tau) / 2)
}

// Rihaczek is the exponential kernel exp(-alpha·eta·tau).
func Rihaczek(eta, tau, alpha float64) float64 {
	return math.Exp(-alpha * eta * tau)
}

// ConeShape is the Zhao-Atlas-Marks kernel
// sinc(π·eta·tau)·exp(-2π·alpha·tau²).
//
// Whenever eta·tau is zero the kernel is exactly 1, independent of alpha.
func ConeShape(eta, tau, alpha float64) float64 {
	x := math.Pi * eta * tau
	if x == 0 {
		return 1
	}
	return core.Sinc(x) * math.Exp(-2*math.Pi*alpha*tau*tau)
}

// KernelInfo describes a registered kernel.
type KernelInfo struct {
	Name         string
	Description  string
	Kernel       Kernel
	DefaultAlpha float64
}

var kernelRegistry = []KernelInfo{
	{
		Name:         "wigner",
		Description:  "Wigner-Ville, no smoothing",
		Kernel:       Wigner,
		DefaultAlpha: 0,
	},
	{
		Name:         "choi-williams",
		Description:  "Gaussian cross-term suppression, exp(-a*eta^2*tau^2/2)",
		Kernel:       ChoiWilliams,
		DefaultAlpha: 1,
	},
	{
		Name:         "rihaczek",
		Description:  "exponential weighting, exp(-a*eta*tau)",
		Kernel:       Rihaczek,
		DefaultAlpha: 0.01,
	},
	{
		Name:         "cone-shape",
		Description:  "Zhao-Atlas-Marks, sinc(pi*eta*tau)*exp(-2*pi*a*tau^2)",
		Kernel:       ConeShape,
		DefaultAlpha: 0.001,
	},
}

var kernelAliases = map[string]string{
	"wv":               "wigner",
	"wigner-ville":     "wigner",
	"cw":               "choi-williams",
	"choiwilliams":     "choi-williams",
	"cone":             "cone-shape",
	"zam":              "cone-shape",
	"zhao-atlas-marks": "cone-shape",
}

// Kernels returns the built-in kernels sorted by name.
func Kernels() []KernelInfo {
	out := append([]KernelInfo(nil), kernelRegistry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupKernel returns the built-in kernel registered under name or one of
// its aliases. Matching is case-insensitive.
func LookupKernel(name string) (KernelInfo, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := kernelAliases[key]; ok {
		key = canonical
	}
	for _, info := range kernelRegistry {
		if info.Name == key {
			return info, nil
		}
	}
	return KernelInfo{}, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}
