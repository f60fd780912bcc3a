package downmix

import (
	"testing"

	"github.com/cwbudde/algo-downmix/dsp/channel"
)

const benchFrames = 512

func benchmarkProcess(b *testing.B, mask channel.Mask, opts ...Option) {
	m, err := NewStereoMixerForMask(mask, opts...)
	if err != nil {
		b.Fatalf("NewStereoMixerForMask() error = %v", err)
	}

	src := make([]float32, benchFrames*mask.Count())
	for i := range src {
		src[i] = float32(i%17) * 0.05
	}

	dst := make([]float32, benchFrames*2)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = m.Process(src, dst, benchFrames, false)
	}
}

func BenchmarkProcessQuadFast(b *testing.B) {
	benchmarkProcess(b, channel.QuadBack)
}

func BenchmarkProcessQuadMatrix(b *testing.B) {
	benchmarkProcess(b, channel.QuadBack, WithoutFastPaths())
}

func BenchmarkProcess5Point1Fast(b *testing.B) {
	benchmarkProcess(b, channel.Surround5Point1Back)
}

func BenchmarkProcess5Point1Matrix(b *testing.B) {
	benchmarkProcess(b, channel.Surround5Point1Back, WithoutFastPaths())
}

func BenchmarkProcess7Point1Fast(b *testing.B) {
	benchmarkProcess(b, channel.Surround7Point1)
}

func BenchmarkProcess7Point1Matrix(b *testing.B) {
	benchmarkProcess(b, channel.Surround7Point1, WithoutFastPaths())
}

func BenchmarkSetInputChannelMask(b *testing.B) {
	m := NewStereoMixer()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		// Alternate so every call recomputes the matrix.
		if i&1 == 0 {
			_ = m.SetInputChannelMask(channel.Surround7Point1)
		} else {
			_ = m.SetInputChannelMask(channel.QuadBack)
		}
	}
}
