//go:build arm64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectFeaturesImpl performs CPU feature detection on arm64 systems.
//
// On ARMv8 the FP unit is mandatory and FPCR.FZ flushes both subnormal
// inputs and outputs, so HasDAZ mirrors HasFTZ.
func detectFeaturesImpl() Features {
	return Features{
		Control:      FPControlFPCR,
		HasFTZ:       cpu.ARM64.HasFP,
		HasDAZ:       cpu.ARM64.HasFP,
		Architecture: runtime.GOARCH,
	}
}
