package protocol

// Brand-specific wire quirks. Most brands use the identity mode/fan
// mapping; the handful that deviate are driven by the tables below, keyed
// by brand id. Derived from the vendor touchpad application's per-brand
// formatting code.
const (
	BrandUnclassified = 0

	// BrandModeRemapA (11) and BrandModeRemapB (15) store modes remapped;
	// B additionally encodes auto as 5 and fan-auto as 4.
	BrandModeRemapA = 11
	BrandModeRemapB = 15

	// BrandFanOffset (2) stores fan speeds off by one when the unit
	// supports the full speed range (supported bitmap >= 4).
	BrandFanOffset = 2
)

// Brand A/B mode encode tables, auto/heat/dry/fan/cool -> wire value.
var (
	modeEncodeA = map[AcMode]byte{ModeAuto: 0, ModeHeat: 2, ModeDry: 3, ModeFan: 4, ModeCool: 1}
	modeEncodeB = map[AcMode]byte{ModeAuto: 5, ModeHeat: 2, ModeDry: 3, ModeFan: 4, ModeCool: 1}

	// Shared decode table, the exact inverse of both encode tables: value 0
	// only occurs for brand A (auto) and value 5 only for brand B (auto).
	modeDecodeRemap = map[byte]AcMode{0: ModeAuto, 1: ModeCool, 2: ModeHeat, 3: ModeDry, 4: ModeFan, 5: ModeAuto}
)

// gatewayBrandMap resolves a gateway id to a brand id when the direct brand
// byte in the state frame is zero.
var gatewayBrandMap = map[int]int{
	0:   0,
	5:   5,
	8:   1,
	13:  2,
	15:  6,
	16:  4,
	18:  14,
	20:  12,
	21:  7,
	31:  10,
	34:  2,
	224: 11,
	225: 13,
	226: 15,
	255: 2,
}

// ResolveBrand returns the effective brand id for an AC unit. The direct
// brand byte wins when non-zero; otherwise the gateway id is looked up in
// the fixed table. Unknown combinations resolve to BrandUnclassified.
func ResolveBrand(rawBrand, gatewayID int) int {
	if rawBrand != 0 {
		return rawBrand
	}
	if brand, ok := gatewayBrandMap[gatewayID]; ok {
		return brand
	}
	return BrandUnclassified
}

// EncodeMode converts an AcMode to its wire value for the given brand.
func EncodeMode(mode AcMode, brand int) byte {
	switch brand {
	case BrandModeRemapA:
		if v, ok := modeEncodeA[mode]; ok {
			return v
		}
	case BrandModeRemapB:
		if v, ok := modeEncodeB[mode]; ok {
			return v
		}
	default:
		return byte(mode)
	}
	return byte(mode)
}

// DecodeMode converts a wire mode value back to an AcMode, reversing the
// brand remap where one applies. Out-of-range values decode to auto.
func DecodeMode(value byte, brand int) AcMode {
	if brand == BrandModeRemapA || brand == BrandModeRemapB {
		if m, ok := modeDecodeRemap[value]; ok {
			return m
		}
		return ModeAuto
	}
	if value > byte(ModeCool) {
		return ModeAuto
	}
	return AcMode(value)
}

// EncodeFanSpeed converts a FanSpeed to its wire value.
//
// Standard mapping is low=1..powerful=4 with auto=0; quiet shares low's
// value for brands without a distinct quiet step. Brand B encodes auto
// as 4. Brand 2 with the full supported range stores values offset by +1.
func EncodeFanSpeed(speed FanSpeed, brand, supportedBitmap int) byte {
	if speed == FanAuto {
		if brand == BrandModeRemapB {
			return 4
		}
		return 0
	}
	var value byte
	switch speed {
	case FanQuiet, FanLow:
		value = 1
	case FanMedium:
		value = 2
	case FanHigh:
		value = 3
	case FanPowerful:
		value = 4
	default:
		value = 0
	}
	if brand == BrandFanOffset && supportedBitmap >= 4 {
		value++
	}
	return value
}

// DecodeFanSpeed converts a wire fan value back to a FanSpeed, applying the
// same brand rules in reverse. Values of 0 or >= 5 decode to auto except
// where a brand rule overrides.
func DecodeFanSpeed(value byte, brand, supportedBitmap int) FanSpeed {
	if brand == BrandModeRemapB && value == 4 {
		return FanAuto
	}
	if value == 0 || value >= 5 {
		return FanAuto
	}
	if brand == BrandFanOffset && supportedBitmap >= 4 {
		if value > 1 {
			value--
		}
	}
	switch value {
	case 1:
		return FanLow
	case 2:
		return FanMedium
	case 3:
		return FanHigh
	case 4:
		return FanPowerful
	}
	return FanAuto
}

// SupportedFanSpeeds expands the supported-fan bitmap from the state frame
// into the concrete speed set the unit accepts.
func SupportedFanSpeeds(supportedBitmap int) []FanSpeed {
	switch {
	case supportedBitmap >= 4:
		return []FanSpeed{FanAuto, FanQuiet, FanLow, FanMedium, FanHigh, FanPowerful}
	case supportedBitmap == 3:
		return []FanSpeed{FanAuto, FanLow, FanMedium, FanHigh}
	case supportedBitmap == 2:
		return []FanSpeed{FanAuto, FanLow, FanHigh}
	default:
		return []FanSpeed{FanAuto, FanLow, FanMedium, FanHigh}
	}
}

// FanBitmap re-derives the supported bitmap from a decoded speed set, used
// when encoding a fan command from a previously decoded snapshot.
func FanBitmap(supported []FanSpeed) int {
	var hasPowerful, hasMedium, hasHigh bool
	for _, s := range supported {
		switch s {
		case FanPowerful:
			hasPowerful = true
		case FanMedium:
			hasMedium = true
		case FanHigh:
			hasHigh = true
		}
	}
	switch {
	case hasPowerful:
		return 4
	case hasMedium && hasHigh:
		return 3
	case hasHigh:
		return 2
	default:
		return 0
	}
}
