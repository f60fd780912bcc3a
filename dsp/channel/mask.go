package channel

import (
	"fmt"
	"math/bits"
	"strings"
)

// Mask is a positional channel bitset. Each set bit names one speaker
// position; ascending bit order defines the interleaved sample order.
type Mask uint32

// Recognized speaker positions, in ascending bit order.
const (
	FrontLeft Mask = 1 << iota
	FrontRight
	FrontCenter
	LowFrequency
	BackLeft
	BackRight
	FrontLeftOfCenter
	FrontRightOfCenter
	BackCenter
	SideLeft
	SideRight
	TopCenter
	TopFrontLeft
	TopFrontCenter
	TopFrontRight
	TopBackLeft
	TopBackCenter
	TopBackRight
	TopSideLeft
	TopSideRight
	BottomFrontLeft
	BottomFrontCenter
	BottomFrontRight
	LowFrequency2
)

// None is the empty mask; it marks a mixer as unconfigured.
const None Mask = 0

// MaxPositions is the number of recognized speaker positions.
const MaxPositions = 24

// All has every recognized position set. Bits outside All are invalid.
const All Mask = 1<<MaxPositions - 1

// Common output layouts.
const (
	Mono     = FrontLeft
	Stereo   = FrontLeft | FrontRight
	QuadBack = Stereo | BackLeft | BackRight
	QuadSide = Stereo | SideLeft | SideRight

	Surround5Point1Back = Stereo | FrontCenter | LowFrequency | BackLeft | BackRight
	Surround5Point1Side = Stereo | FrontCenter | LowFrequency | SideLeft | SideRight
	Surround7Point1     = Surround5Point1Back | SideLeft | SideRight
)

// Count returns the number of set positions, i.e. the interleaved channel
// count implied by the mask.
func (m Mask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Positional reports whether m is non-empty and confined to the recognized
// positions.
func (m Mask) Positional() bool {
	return m != None && m&^All == None
}

// Contains reports whether every position in sub is also set in m.
func (m Mask) Contains(sub Mask) bool {
	return m&sub == sub
}

// positionNames maps bit index to the conventional short position name.
var positionNames = [MaxPositions]string{
	"FL", "FR", "FC", "LFE", "BL", "BR", "FLC", "FRC", "BC", "SL", "SR",
	"TC", "TFL", "TFC", "TFR", "TBL", "TBC", "TBR", "TSL", "TSR",
	"BFL", "BFC", "BFR", "LFE2",
}

// String renders the mask as pipe-separated position names, e.g. "FL|FR|LFE".
// Bits outside the recognized range are rendered as a hex residue.
func (m Mask) String() string {
	if m == None {
		return "none"
	}

	var sb strings.Builder

	for i := 0; i < MaxPositions; i++ {
		if m&(1<<i) == 0 {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte('|')
		}

		sb.WriteString(positionNames[i])
	}

	if residue := m &^ All; residue != None {
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}

		fmt.Fprintf(&sb, "0x%x", uint32(residue))
	}

	return sb.String()
}

// FromCount returns the default positional layout for a plain channel count,
// for streams that carry a channel count but no mask (e.g. WAV files without
// an extensible fmt chunk).
func FromCount(channels int) (Mask, error) {
	switch channels {
	case 1:
		return Mono, nil
	case 2:
		return Stereo, nil
	case 3:
		return Stereo | FrontCenter, nil
	case 4:
		return QuadBack, nil
	case 5:
		return QuadBack | FrontCenter, nil
	case 6:
		return Surround5Point1Back, nil
	case 7:
		return Surround5Point1Back | BackCenter, nil
	case 8:
		return Surround7Point1, nil
	default:
		return None, fmt.Errorf("channel: no default layout for %d channels", channels)
	}
}
