package downmix

import (
	"github.com/cwbudde/algo-downmix/dsp/channel"
)

// Minus3dB is the linear amplitude factor for a 3 dB reduction (1/sqrt(2)).
// Center-like channels contribute at this factor to both output channels.
const Minus3dB = float32(0.70710678118654752440)

const (
	outputChannelCount = 2
	limitAmplitude     = float32(1.0) // 0 dBFS hard ceiling
)

// StereoMixer downmixes interleaved multichannel float32 audio to stereo.
//
// The zero value is unconfigured; Process fails until SetInputChannelMask
// succeeds with a non-empty mask. A mixer holds no locks: callers must
// serialize reconfiguration against in-flight Process calls on the same
// instance. Independent instances are safe to use concurrently.
type StereoMixer struct {
	// Rebuilt together on every mask change, never touched per frame.
	matrix          [channel.MaxPositions][outputChannelCount]float32
	mask            channel.Mask
	channelCount    int
	lastContributor int // one past the highest slot with a nonzero gain pair

	fastPaths bool
}

// NewStereoMixer returns an unconfigured mixer. Fast paths for quad, 5.1 and
// 7.1 layouts are enabled unless WithoutFastPaths is given.
func NewStereoMixer(opts ...Option) *StereoMixer {
	m := &StereoMixer{fastPaths: true}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// NewStereoMixerForMask returns a mixer configured for the given input mask.
func NewStereoMixerForMask(mask channel.Mask, opts ...Option) (*StereoMixer, error) {
	m := NewStereoMixer(opts...)
	if err := m.SetInputChannelMask(mask); err != nil {
		return nil, err
	}

	return m, nil
}

// SetInputChannelMask configures the input channel mask and rebuilds the gain
// matrix. Setting the already configured mask is a no-op. A mask with bits
// outside the recognized positions is rejected with ErrUnsupportedMask and
// leaves the previous configuration in effect. Setting channel.None returns
// the mixer to the unconfigured state.
//
// Per-slot gains: left positions (FL, SL, BL) pan 0.5 to the left output,
// right positions (FR, SR, BR) pan 0.5 to the right, center-like positions
// (FC, LFE, BC) contribute 0.5*Minus3dB to both. Remaining recognized
// positions are present in the frame layout but do not contribute.
func (m *StereoMixer) SetInputChannelMask(mask channel.Mask) error {
	if mask == m.mask {
		return nil
	}

	if mask&^channel.All != channel.None {
		return ErrUnsupportedMask
	}

	// The matrix and its derived bounds are committed together with the
	// mask; a rejected mask must not touch any of them.
	var matrix [channel.MaxPositions][outputChannelCount]float32

	last := 0
	index := 0

	for tmp := uint32(mask); tmp != 0; index++ {
		lowestBit := tmp & -tmp

		switch channel.Mask(lowestBit) {
		case channel.FrontLeft, channel.SideLeft, channel.BackLeft:
			matrix[index][0] = 0.5
			last = index + 1
		case channel.FrontRight, channel.SideRight, channel.BackRight:
			matrix[index][1] = 0.5
			last = index + 1
		case channel.FrontCenter, channel.LowFrequency, channel.BackCenter:
			matrix[index][0] = 0.5 * Minus3dB
			matrix[index][1] = 0.5 * Minus3dB
			last = index + 1
		}

		tmp ^= lowestBit
	}

	m.matrix = matrix
	m.mask = mask
	m.channelCount = index
	m.lastContributor = last

	return nil
}

// InputChannelMask returns the configured input channel mask, or channel.None
// when unconfigured.
func (m *StereoMixer) InputChannelMask() channel.Mask {
	return m.mask
}

// InputChannelCount returns the channel count implied by the configured mask.
func (m *StereoMixer) InputChannelCount() int {
	return m.channelCount
}

// Process downmixes frameCount frames from src into dst.
//
// src must hold frameCount frames of InputChannelCount interleaved samples in
// the slot order implied by the mask; dst receives frameCount interleaved
// stereo frames. When accumulate is true the computed pair is added to the
// existing destination content before clamping; otherwise it replaces it.
// Both output channels are hard-clamped to [-1, 1]. The call performs no
// allocation.
func (m *StereoMixer) Process(src, dst []float32, frameCount int, accumulate bool) error {
	if m.mask == channel.None {
		return ErrNotConfigured
	}

	if frameCount < 0 ||
		len(src) < frameCount*m.channelCount ||
		len(dst) < frameCount*outputChannelCount {
		return ErrShortBuffer
	}

	if m.fastPaths {
		switch m.mask {
		case channel.QuadBack, channel.QuadSide:
			processQuad(src, dst, frameCount, accumulate)
			return nil
		case channel.Surround5Point1Back, channel.Surround5Point1Side:
			process5Point1(src, dst, frameCount, accumulate)
			return nil
		case channel.Surround7Point1:
			process7Point1(src, dst, frameCount, accumulate)
			return nil
		}
	}

	m.matrixProcess(src, dst, frameCount, accumulate)

	return nil
}

// ProcessWithMask configures the mask and then downmixes. A rejected mask
// leaves the previous configuration in effect and writes no output.
func (m *StereoMixer) ProcessWithMask(src, dst []float32, frameCount int, accumulate bool,
	mask channel.Mask) error {
	if err := m.SetInputChannelMask(mask); err != nil {
		return err
	}

	return m.Process(src, dst, frameCount, accumulate)
}

// matrixProcess walks the gain matrix for every frame. Slots past the last
// contributing channel carry zero gain and are skipped entirely.
func (m *StereoMixer) matrixProcess(src, dst []float32, frameCount int, accumulate bool) {
	for ; frameCount > 0; frameCount-- {
		var left, right float32

		for i := 0; i < m.lastContributor; i++ {
			s := src[i]
			left += m.matrix[i][0] * s
			right += m.matrix[i][1] * s
		}

		if accumulate {
			left += dst[0]
			right += dst[1]
		}

		dst[0] = clamp(left)
		dst[1] = clamp(right)

		src = src[m.channelCount:]
		dst = dst[outputChannelCount:]
	}
}

// processQuad handles QuadBack and QuadSide.
// Frame slots: FL, FR, RL, RR (or SL, SR).
func processQuad(src, dst []float32, frameCount int, accumulate bool) {
	for ; frameCount > 0; frameCount-- {
		left := (src[0] + src[2]) * 0.5
		right := (src[1] + src[3]) * 0.5

		if accumulate {
			left += dst[0]
			right += dst[1]
		}

		dst[0] = clamp(left)
		dst[1] = clamp(right)

		src = src[4:]
		dst = dst[outputChannelCount:]
	}
}

// process5Point1 handles Surround5Point1Back and Surround5Point1Side.
// Frame slots: FL, FR, FC, LFE, RL, RR (or SL, SR).
func process5Point1(src, dst []float32, frameCount int, accumulate bool) {
	for ; frameCount > 0; frameCount-- {
		centerPlusLfe := src[2] + src[3]

		left := (src[0] + src[4] + centerPlusLfe*Minus3dB) * 0.5
		right := (src[1] + src[5] + centerPlusLfe*Minus3dB) * 0.5

		if accumulate {
			left += dst[0]
			right += dst[1]
		}

		dst[0] = clamp(left)
		dst[1] = clamp(right)

		src = src[6:]
		dst = dst[outputChannelCount:]
	}
}

// process7Point1 handles Surround7Point1.
// Frame slots: FL, FR, FC, LFE, RL, RR, SL, SR.
func process7Point1(src, dst []float32, frameCount int, accumulate bool) {
	for ; frameCount > 0; frameCount-- {
		centerPlusLfe := src[2] + src[3]

		left := (src[0] + src[4] + src[6] + centerPlusLfe*Minus3dB) * 0.5
		right := (src[1] + src[5] + src[7] + centerPlusLfe*Minus3dB) * 0.5

		if accumulate {
			left += dst[0]
			right += dst[1]
		}

		dst[0] = clamp(left)
		dst[1] = clamp(right)

		src = src[8:]
		dst = dst[outputChannelCount:]
	}
}

// clamp hard-limits a sample to the valid output range.
func clamp(v float32) float32 {
	if v > limitAmplitude {
		return limitAmplitude
	}

	if v < -limitAmplitude {
		return -limitAmplitude
	}

	return v
}
