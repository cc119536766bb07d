//go:build arm64 && !purego

package fpmode

const (
	hasControl = true

	ftzBit uint64 = 1 << 24 // FPCR.FZ
	dazBit uint64 = 1 << 24 // FPCR.FZ also covers subnormal inputs
)

//go:noescape
func getFPCR() uint64

//go:noescape
func setFPCR(v uint64)

func readControl() uint64 {
	return getFPCR()
}

func writeControl(v uint64) {
	setFPCR(v)
}
