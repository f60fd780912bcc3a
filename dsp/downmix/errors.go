package downmix

import "errors"

var (
	ErrUnsupportedMask = errors.New("downmix: mask has bits outside the recognized positions")
	ErrNotConfigured   = errors.New("downmix: no input channel mask configured")
	ErrShortBuffer     = errors.New("downmix: buffer too small for frame count")
)
