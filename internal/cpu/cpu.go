// Package cpu reports the floating-point control features of the current
// processor.
//
// The transforms in this module run their hot loops with subnormal results
// flushed to zero. Whether that mode can be enabled, and which control bits
// are safe to set, depends on the architecture and on a few instruction set
// extensions. This package answers those questions once and caches the result.
//
// Detection is performed lazily on the first call to DetectFeatures() and the
// results are cached for subsequent calls using sync.Once for thread-safety.
package cpu

import (
	"sync"
)

// FPControl identifies the floating-point control register family available
// on the current processor.
type FPControl int

const (
	// FPControlNone indicates no supported control register (pure Go fallback).
	FPControlNone FPControl = iota

	// FPControlMXCSR indicates the x86-64 SSE control/status register.
	FPControlMXCSR

	// FPControlFPCR indicates the ARMv8 floating-point control register.
	FPControlFPCR
)

// String returns a human-readable name for the control register family.
func (c FPControl) String() string {
	switch c {
	case FPControlNone:
		return "None"
	case FPControlMXCSR:
		return "MXCSR"
	case FPControlFPCR:
		return "FPCR"
	default:
		return "Unknown"
	}
}

// Features describes CPU capabilities relevant to floating-point mode control.
type Features struct {
	Control FPControl

	// HasFTZ reports that results which would be subnormal can be flushed to zero.
	HasFTZ bool

	// HasDAZ reports that subnormal inputs can be treated as zero.
	// Only set where the control bit is known to be implemented.
	HasDAZ bool

	// ForceGeneric disables all FP mode changes (for testing/debugging).
	ForceGeneric bool

	// Architecture is runtime.GOARCH (e.g., "amd64", "arm64").
	Architecture string
}

var (
	// detectedFeatures holds the cached CPU features detected on this system.
	detectedFeatures Features

	// detectOnce ensures feature detection runs exactly once, thread-safely.
	detectOnce sync.Once

	// detectMutex serializes access to detectOnce/detectedFeatures.
	detectMutex sync.Mutex

	// forcedFeatures allows overriding actual hardware detection for testing.
	forcedFeatures *Features

	// forcedMutex protects forcedFeatures from concurrent access during testing.
	forcedMutex sync.RWMutex
)

// DetectFeatures returns the CPU features available on the current system.
//
// Detection is performed once on the first call and cached for subsequent calls.
// This function is thread-safe and can be called concurrently from multiple goroutines.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// CanFlushToZero returns true if flush-to-zero mode may be enabled.
func CanFlushToZero() bool {
	f := DetectFeatures()
	return f.HasFTZ && !f.ForceGeneric
}

// CanDenormalsAreZero returns true if denormals-are-zero mode may be enabled.
func CanDenormalsAreZero() bool {
	f := DetectFeatures()
	return f.HasDAZ && !f.ForceGeneric
}

// SetForcedFeatures overrides CPU feature detection with the specified features.
// This is intended for testing purposes only.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears any forced features and the detection cache.
// This is intended for testing purposes.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}
