package protocol

import "testing"

func TestModeRoundTrip(t *testing.T) {
	modes := []AcMode{ModeAuto, ModeHeat, ModeDry, ModeFan, ModeCool}
	brands := []int{BrandUnclassified, 1, BrandFanOffset, BrandModeRemapA, BrandModeRemapB}

	for _, brand := range brands {
		for _, mode := range modes {
			encoded := EncodeMode(mode, brand)
			decoded := DecodeMode(encoded, brand)
			if decoded != mode {
				t.Errorf("brand %d: decode(encode(%s)) = %s (wire 0x%02x)", brand, mode, decoded, encoded)
			}
		}
	}
}

func TestModeEncodeTables(t *testing.T) {
	tests := []struct {
		brand int
		mode  AcMode
		want  byte
	}{
		{BrandModeRemapA, ModeAuto, 0},
		{BrandModeRemapA, ModeHeat, 2},
		{BrandModeRemapA, ModeDry, 3},
		{BrandModeRemapA, ModeFan, 4},
		{BrandModeRemapA, ModeCool, 1},
		{BrandModeRemapB, ModeAuto, 5}, // auto sits past the normal range
		{BrandModeRemapB, ModeHeat, 2},
		{BrandModeRemapB, ModeCool, 1},
		{BrandUnclassified, ModeCool, 4}, // identity
		{BrandUnclassified, ModeHeat, 1},
	}
	for _, tt := range tests {
		if got := EncodeMode(tt.mode, tt.brand); got != tt.want {
			t.Errorf("EncodeMode(%s, brand %d) = %d, want %d", tt.mode, tt.brand, got, tt.want)
		}
	}
}

func TestDecodeModeBoundaries(t *testing.T) {
	// Brand B's encoded 5 must decode back to auto, not fall through.
	if got := DecodeMode(5, BrandModeRemapB); got != ModeAuto {
		t.Errorf("brand B wire 5 = %s, want auto", got)
	}
	// Out-of-range values decode to auto for unclassified brands.
	if got := DecodeMode(9, BrandUnclassified); got != ModeAuto {
		t.Errorf("wire 9 = %s, want auto", got)
	}
}

func TestFanSpeedRoundTrip(t *testing.T) {
	tests := []struct {
		name            string
		brand           int
		supportedBitmap int
		speeds          []FanSpeed
	}{
		{
			name:            "unclassified brand",
			brand:           BrandUnclassified,
			supportedBitmap: 3,
			speeds:          []FanSpeed{FanAuto, FanLow, FanMedium, FanHigh, FanPowerful},
		},
		{
			// Powerful is excluded: its offset wire value (5) reads back as
			// auto, matching the reference client.
			name:            "fan-offset brand with full range",
			brand:           BrandFanOffset,
			supportedBitmap: 4,
			speeds:          []FanSpeed{FanAuto, FanLow, FanMedium, FanHigh},
		},
		{
			name:            "fan-offset brand without full range behaves standard",
			brand:           BrandFanOffset,
			supportedBitmap: 3,
			speeds:          []FanSpeed{FanAuto, FanLow, FanMedium, FanHigh, FanPowerful},
		},
		{
			name:            "brand B auto encoded as 4",
			brand:           BrandModeRemapB,
			supportedBitmap: 3,
			speeds:          []FanSpeed{FanAuto, FanLow, FanMedium, FanHigh},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, speed := range tt.speeds {
				encoded := EncodeFanSpeed(speed, tt.brand, tt.supportedBitmap)
				decoded := DecodeFanSpeed(encoded, tt.brand, tt.supportedBitmap)
				if decoded != speed {
					t.Errorf("decode(encode(%s)) = %s (wire %d)", speed, decoded, encoded)
				}
			}
		})
	}
}

func TestFanSpeedBrandRules(t *testing.T) {
	// Brand B: auto is wire value 4 in both directions.
	if got := EncodeFanSpeed(FanAuto, BrandModeRemapB, 3); got != 4 {
		t.Errorf("brand B auto encodes to %d, want 4", got)
	}
	if got := DecodeFanSpeed(4, BrandModeRemapB, 3); got != FanAuto {
		t.Errorf("brand B wire 4 decodes to %s, want auto", got)
	}
	// Everyone else: auto is 0, and 0 or >=5 decode to auto.
	if got := EncodeFanSpeed(FanAuto, BrandUnclassified, 3); got != 0 {
		t.Errorf("auto encodes to %d, want 0", got)
	}
	for _, wire := range []byte{0, 5, 6, 15} {
		if got := DecodeFanSpeed(wire, BrandUnclassified, 3); got != FanAuto {
			t.Errorf("wire %d decodes to %s, want auto", wire, got)
		}
	}
	// Fan-offset brand with full range: stored values are shifted by one.
	if got := EncodeFanSpeed(FanLow, BrandFanOffset, 4); got != 2 {
		t.Errorf("offset brand low encodes to %d, want 2", got)
	}
	if got := DecodeFanSpeed(2, BrandFanOffset, 4); got != FanLow {
		t.Errorf("offset brand wire 2 decodes to %s, want low", got)
	}
	// Quiet collapses to low's wire value for brands without a quiet step.
	if got := EncodeFanSpeed(FanQuiet, BrandUnclassified, 3); got != 1 {
		t.Errorf("quiet encodes to %d, want 1", got)
	}
}

func TestResolveBrand(t *testing.T) {
	tests := []struct {
		name    string
		raw     int
		gateway int
		want    int
	}{
		{"direct brand wins", 7, 224, 7},
		{"gateway fallback", 0, 224, 11},
		{"gateway fallback remap B", 0, 226, 15},
		{"gateway 255", 0, 255, 2},
		{"unknown gateway is unclassified", 0, 99, BrandUnclassified},
		{"all zero", 0, 0, BrandUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBrand(tt.raw, tt.gateway); got != tt.want {
				t.Errorf("ResolveBrand(%d, %d) = %d, want %d", tt.raw, tt.gateway, got, tt.want)
			}
		})
	}
}

func TestSupportedFanSpeedsAndBitmap(t *testing.T) {
	for _, bitmap := range []int{0, 2, 3, 4, 5} {
		speeds := SupportedFanSpeeds(bitmap)
		if len(speeds) == 0 || speeds[0] != FanAuto {
			t.Errorf("bitmap %d: supported set must start with auto", bitmap)
		}
	}
	if got := FanBitmap(SupportedFanSpeeds(4)); got != 4 {
		t.Errorf("full set round-trips to bitmap %d, want 4", got)
	}
	if got := FanBitmap(SupportedFanSpeeds(3)); got != 3 {
		t.Errorf("three-speed set round-trips to bitmap %d, want 3", got)
	}
	if got := FanBitmap(SupportedFanSpeeds(2)); got != 2 {
		t.Errorf("two-speed set round-trips to bitmap %d, want 2", got)
	}
}
