// Package fpmode runs numeric work with subnormal floating-point values
// flushed to zero.
//
// Subnormal arithmetic takes a slow microcode path on most FPUs. Long
// trigonometric and exponential accumulations wander into that range often
// enough to cost an order of magnitude in wall-clock time, so the transform
// hot loops run inside [Run].
//
// The FP control register is per OS thread. [Run] pins the calling goroutine
// to its thread, sets the flush bits, and restores the previous register
// value before unpinning, on every exit path including panics. Nothing
// outside the callback observes the changed mode.
//
// Architectures without a driven control register, and builds with the
// purego tag, fall back to calling the function unchanged.
package fpmode

import (
	"runtime"

	"github.com/cwbudde/algo-tfd/internal/cpu"
)

// Supported reports whether Run changes the FP mode on this system.
func Supported() bool {
	return hasControl && flushBits() != 0
}

// Enabled reports whether flush-to-zero is active on the current thread.
// The answer is only stable while the goroutine is locked to its thread,
// which is always the case inside Run.
func Enabled() bool {
	if !hasControl {
		return false
	}
	return readControl()&ftzBit != 0
}

// Run calls fn with flush-to-zero (and denormals-are-zero where available)
// enabled on the current thread.
func Run(fn func()) {
	bits := flushBits()
	if !hasControl || bits == 0 {
		fn()
		return
	}

	runtime.LockOSThread()
	prev := readControl()
	writeControl(prev | bits)
	defer func() {
		writeControl(prev)
		runtime.UnlockOSThread()
	}()

	fn()
}

// flushBits returns the control bits Run sets, honouring CPU detection.
func flushBits() uint64 {
	var bits uint64
	if cpu.CanFlushToZero() {
		bits |= ftzBit
	}
	if cpu.CanDenormalsAreZero() {
		bits |= dazBit
	}
	return bits
}
