//go:build amd64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectFeaturesImpl performs CPU feature detection on amd64 systems.
//
// MXCSR.FTZ is part of the SSE baseline. MXCSR.DAZ is missing on a handful of
// early SSE2-only parts and setting an unimplemented MXCSR bit faults, so DAZ
// is only reported for SSE3-capable processors, all of which implement it.
func detectFeaturesImpl() Features {
	return Features{
		Control:      FPControlMXCSR,
		HasFTZ:       cpu.X86.HasSSE2,
		HasDAZ:       cpu.X86.HasSSE2 && cpu.X86.HasSSE3,
		Architecture: runtime.GOARCH,
	}
}
