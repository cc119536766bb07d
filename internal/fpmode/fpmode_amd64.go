//go:build amd64 && !purego

package fpmode

const (
	hasControl = true

	ftzBit uint64 = 1 << 15 // MXCSR.FZ
	dazBit uint64 = 1 << 6  // MXCSR.DAZ
)

//go:noescape
func getMXCSR() uint32

//go:noescape
func setMXCSR(v uint32)

func readControl() uint64 {
	return uint64(getMXCSR())
}

func writeControl(v uint64) {
	setMXCSR(uint32(v))
}
