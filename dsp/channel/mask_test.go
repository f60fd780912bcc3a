package channel

import "testing"

func TestLayoutCounts(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want int
	}{
		{"mono", Mono, 1},
		{"stereo", Stereo, 2},
		{"quad back", QuadBack, 4},
		{"quad side", QuadSide, 4},
		{"5.1 back", Surround5Point1Back, 6},
		{"5.1 side", Surround5Point1Side, 6},
		{"7.1", Surround7Point1, 8},
		{"all", All, MaxPositions},
		{"none", None, 0},
	}

	for _, tt := range tests {
		if got := tt.mask.Count(); got != tt.want {
			t.Errorf("%s: Count() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPositional(t *testing.T) {
	if None.Positional() {
		t.Error("None.Positional() = true, want false")
	}

	if !Surround7Point1.Positional() {
		t.Error("Surround7Point1.Positional() = false, want true")
	}

	if !All.Positional() {
		t.Error("All.Positional() = false, want true")
	}

	out := Mask(1 << MaxPositions)
	if out.Positional() {
		t.Errorf("Mask(1<<%d).Positional() = true, want false", MaxPositions)
	}

	if (Stereo | out).Positional() {
		t.Error("mask with out-of-range bit reported positional")
	}
}

func TestContains(t *testing.T) {
	if !Surround5Point1Back.Contains(QuadBack) {
		t.Error("5.1 back should contain quad back")
	}

	if Surround5Point1Side.Contains(BackLeft) {
		t.Error("5.1 side should not contain BackLeft")
	}

	if !QuadSide.Contains(None) {
		t.Error("every mask contains None")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		mask Mask
		want string
	}{
		{None, "none"},
		{Mono, "FL"},
		{Stereo, "FL|FR"},
		{Surround5Point1Back, "FL|FR|FC|LFE|BL|BR"},
		{QuadSide, "FL|FR|SL|SR"},
		{LowFrequency2, "LFE2"},
		{Stereo | 1<<25, "FL|FR|0x2000000"},
	}

	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("Mask(%#x).String() = %q, want %q", uint32(tt.mask), got, tt.want)
		}
	}
}

func TestFromCount(t *testing.T) {
	tests := []struct {
		channels int
		want     Mask
	}{
		{1, Mono},
		{2, Stereo},
		{3, Stereo | FrontCenter},
		{4, QuadBack},
		{5, QuadBack | FrontCenter},
		{6, Surround5Point1Back},
		{7, Surround5Point1Back | BackCenter},
		{8, Surround7Point1},
	}

	for _, tt := range tests {
		got, err := FromCount(tt.channels)
		if err != nil {
			t.Fatalf("FromCount(%d) error = %v", tt.channels, err)
		}

		if got != tt.want {
			t.Errorf("FromCount(%d) = %v, want %v", tt.channels, got, tt.want)
		}

		if got.Count() != tt.channels {
			t.Errorf("FromCount(%d).Count() = %d", tt.channels, got.Count())
		}

		if !got.Positional() {
			t.Errorf("FromCount(%d) not positional", tt.channels)
		}
	}

	for _, channels := range []int{0, -1, 9, 24} {
		if _, err := FromCount(channels); err == nil {
			t.Errorf("FromCount(%d) error = nil, want error", channels)
		}
	}
}
