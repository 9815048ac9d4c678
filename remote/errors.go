package remote

import "errors"

var (
	// Construction
	ErrKeyNotSingleBit = errors.New("key is not a single-bit mask")
	ErrNilInput        = errors.New("nil input")
	ErrNilTransmitter  = errors.New("nil transmitter")
	ErrDebounce        = errors.New("negative debounce")

	// ErrInputClosed is returned by an Input that will never change again.
	// Run treats it as a clean stop.
	ErrInputClosed = errors.New("input closed")
)
