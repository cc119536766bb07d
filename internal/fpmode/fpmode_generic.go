//go:build purego || !(amd64 || arm64)

package fpmode

const (
	hasControl = false

	ftzBit uint64 = 0
	dazBit uint64 = 0
)

func readControl() uint64 { return 0 }

func writeControl(uint64) {}
