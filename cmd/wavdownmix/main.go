// Command wavdownmix downmixes a multichannel PCM WAV file to 16-bit stereo.
//
// Usage:
//
//	wavdownmix -in input.wav -out output.wav [flags]
//
// The input layout is derived from the WAV channel count unless -mask names
// one explicitly.
//
// Examples:
//
//	wavdownmix -in surround.wav -out stereo.wav
//	wavdownmix -in quad.wav -out stereo.wav -mask quad-side
//	wavdownmix -in movie.wav -out stereo.wav -gain -3 -stats
//	wavdownmix -in quiet.wav -out stereo.wav -normalize
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/algo-dsp/dsp/core"
	timestats "github.com/cwbudde/algo-dsp/stats/time"
	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-downmix/dsp/channel"
	"github.com/cwbudde/algo-downmix/dsp/downmix"
)

var layouts = []struct {
	name string
	mask channel.Mask
}{
	{"mono", channel.Mono},
	{"stereo", channel.Stereo},
	{"quad", channel.QuadBack},
	{"quad-side", channel.QuadSide},
	{"5.1", channel.Surround5Point1Back},
	{"5.1-side", channel.Surround5Point1Side},
	{"7.1", channel.Surround7Point1},
}

func main() {
	var (
		inPath     = flag.String("in", "", "input WAV path")
		outPath    = flag.String("out", "", "output WAV path")
		maskName   = flag.String("mask", "auto", "input layout name, or \"auto\" to derive it from the channel count")
		gainDB     = flag.Float64("gain", 0, "output gain in dB")
		normalize  = flag.Bool("normalize", false, "scale the output so the stereo peak sits at -1 dBFS")
		printStats = flag.Bool("stats", false, "print per-channel level statistics of the output")
		generic    = flag.Bool("generic", false, "disable the specialized quad/5.1/7.1 paths")
	)

	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "wavdownmix: -in and -out are required")
		flag.Usage()
		os.Exit(2)
	}

	err := run(*inPath, *outPath, *maskName, *gainDB, *normalize, *printStats, *generic)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wavdownmix:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, maskName string, gainDB float64,
	normalize, printStats, generic bool) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return fmt.Errorf("%s: not a valid WAV file", inPath)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return fmt.Errorf("%s: invalid channel count %d", inPath, channels)
	}

	sampleRate := buf.Format.SampleRate
	frames := len(buf.Data) / channels

	mask, err := resolveMask(maskName, channels)
	if err != nil {
		return err
	}

	if mask.Count() != channels {
		return fmt.Errorf("layout %v implies %d channels, %s has %d",
			mask, mask.Count(), inPath, channels)
	}

	src, err := normalizedSamples(buf.Data, int(dec.BitDepth))
	if err != nil {
		return err
	}

	var opts []downmix.Option
	if generic {
		opts = append(opts, downmix.WithoutFastPaths())
	}

	mixer, err := downmix.NewStereoMixerForMask(mask, opts...)
	if err != nil {
		return err
	}

	stereo := make([]float32, frames*2)
	if err := mixer.Process(src, stereo, frames, false); err != nil {
		return err
	}

	// Gain, normalization and statistics run on a float64 workspace.
	work := make([]float64, len(stereo))
	for i, v := range stereo {
		work[i] = float64(v)
	}

	if gainDB != 0 {
		vecmath.ScaleBlock(work, work, core.DBToLinear(gainDB))
	}

	if normalize {
		if peak := timestats.Peak(work); peak > 0 {
			vecmath.ScaleBlock(work, work, core.DBToLinear(-1)/peak)
		}
	}

	if printStats {
		reportStats(work, frames)
	}

	return writeStereoWAV(outPath, sampleRate, work)
}

// resolveMask maps a -mask value to a channel mask, deriving it from the
// file's channel count for "auto".
func resolveMask(name string, channels int) (channel.Mask, error) {
	if name == "auto" {
		return channel.FromCount(channels)
	}

	for _, l := range layouts {
		if l.name == name {
			return l.mask, nil
		}
	}

	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.name
	}

	return channel.None, fmt.Errorf("unknown layout %q (known: %s)",
		name, strings.Join(names, ", "))
}

// normalizedSamples converts decoded integer PCM to float32 in [-1, 1].
func normalizedSamples(data []int, bitDepth int) ([]float32, error) {
	var maxVal float32

	switch bitDepth {
	case 8:
		maxVal = 128.0
	case 16:
		maxVal = 32768.0
	case 24:
		maxVal = 8388608.0
	case 32:
		maxVal = 2147483648.0
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v) / maxVal
	}

	return out, nil
}

func reportStats(work []float64, frames int) {
	left := make([]float64, frames)
	right := make([]float64, frames)

	for f := 0; f < frames; f++ {
		left[f] = work[2*f]
		right[f] = work[2*f+1]
	}

	for _, ch := range []struct {
		name  string
		stats timestats.Stats
	}{
		{"L", timestats.Calculate(left)},
		{"R", timestats.Calculate(right)},
	} {
		fmt.Printf("%s: rms %7.2f dB  peak %7.2f dB  crest %5.2f dB\n",
			ch.name, ch.stats.RMS_dB, ch.stats.Peak_dB, ch.stats.CrestFactor_dB)
	}
}

func writeStereoWAV(path string, sampleRate int, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}

	for i, v := range samples {
		buf.Data[i] = int(math.Round(core.Clamp(v, -1, 1) * 32767))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return enc.Close()
}
