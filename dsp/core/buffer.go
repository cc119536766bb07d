package core

// Scalar is the element type of the scratch buffers used by the transforms.
type Scalar interface {
	~float64 | ~complex128
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// The contents of a reused buffer are not cleared.
func EnsureLen[T Scalar](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to 0.
func Zero[T Scalar](buf []T) {
	clear(buf)
}

// Matrix allocates a rows×cols matrix backed by a single contiguous slice.
// Rows do not alias each other.
func Matrix[T Scalar](rows, cols int) [][]T {
	if rows <= 0 {
		return [][]T{}
	}
	if cols < 0 {
		cols = 0
	}
	backing := make([]T, rows*cols)
	out := make([][]T, rows)
	for r := range out {
		out[r] = backing[r*cols : (r+1)*cols : (r+1)*cols]
	}
	return out
}
