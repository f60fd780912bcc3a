// Package downmix converts multichannel positional audio to stereo.
//
// A StereoMixer holds a per-slot gain matrix derived from the configured
// channel mask. The matrix is rebuilt only when the mask changes; processing a
// buffer performs no allocation and no locking, so a mixer is safe to drive
// from a real-time audio callback as long as reconfiguration and processing
// are not interleaved on the same instance.
//
// Quad, 5.1 and 7.1 layouts take a closed-form fast path that is numerically
// equivalent to the generic matrix path; WithoutFastPaths forces the generic
// path for all layouts.
package downmix
