package tfd

import "errors"

var (
	// ErrNilKernel is returned when no kernel function is supplied.
	ErrNilKernel = errors.New("tfd: kernel must not be nil")

	// ErrUnknownKernel is returned by LookupKernel for unregistered names.
	ErrUnknownKernel = errors.New("tfd: unknown kernel")

	// ErrUnknownMethod is returned by ParseMethod for unrecognised names.
	ErrUnknownMethod = errors.New("tfd: unknown method")

	// ErrLengthNotPowerOf2 is returned when MethodFFT is requested for a
	// signal whose length is not a power of two.
	ErrLengthNotPowerOf2 = errors.New("tfd: signal length must be a power of two for the FFT method")

	// ErrNonFiniteKernel is returned when a kernel evaluates to NaN or ±Inf.
	ErrNonFiniteKernel = errors.New("tfd: kernel returned a non-finite value")
)
