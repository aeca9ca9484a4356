package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// State frame byte map (0-based offsets). The layout was reverse-engineered
// from the vendor touchpad application; every offset here has been verified
// against live captures.
const (
	offsetZoneNames   = 104 // 16 names x 8 ASCII chars
	offsetZoneStatus  = 232 // bit7 on/off, bit6 spill, program bits
	offsetZoneDamper  = 248 // bit7 temp-control mode, bits6-0 percent/5
	offsetGroupData   = 264 // high nibble: index into status/damper arrays
	offsetZoneFeedbck = 296 // bits7-5 sensor source, bits4-0 setpoint-1
	offsetZoneCount   = 352
	offsetSystemFlags = 353 // bit0 dual duct, bits7-1 AC1 group count
	offsetSystemName  = 383 // 16 ASCII chars
	offsetAcNames     = 399 // 2 names x 8 ASCII chars
	offsetAcStatus    = 423 // bit7 power, bit1 error, bits4-2 program
	offsetAcBrand     = 425
	offsetAcMode      = 427 // bits6-0
	offsetAcFan       = 429 // high nibble supported bitmap, low nibble value
	offsetAcSetpoint  = 431 // bits6-0, °C
	offsetAcRoomTemp  = 433 // signed: subtract 256 when > 127
	offsetAcError     = 435 // 2 x low,high byte pairs
	offsetAcGateway   = 439
	offsetTouchpad    = 443 // 2 x zone assignment (1-based), then 2 x temp
	offsetTouchpadTmp = 445
	offsetSensors     = 451 // 32 x bit7 available, bit6 low battery, bits5-0 temp
	offsetDeviceID    = 483 // 8 x low nibble, decimal digits

	systemNameLength = 16
	acNameLength     = 8
	zoneNameLength   = 8
)

// Brand A misreports gateway-internal error codes in this range; the vendor
// app suppresses them and so do we.
const (
	brandAErrorLow  = 109
	brandAErrorHigh = 116
)

// DecodeState turns one 492-byte state frame into a SystemSnapshot. The
// input is not retained. A frame of the wrong size is the only hard error;
// field-level oddities decode to conservative values instead of failing,
// so a single strange byte never costs the caller a whole snapshot.
func DecodeState(data []byte) (*SystemSnapshot, error) {
	if len(data) != StateFrameSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrShortState, len(data), StateFrameSize)
	}

	snap := &SystemSnapshot{
		DeviceID:      decodeDeviceID(data),
		SystemName:    decodeName(data[offsetSystemName:offsetSystemName+systemNameLength], "AirTouch 3"),
		ZoneCount:     int(data[offsetZoneCount]),
		DualDucted:    data[offsetSystemFlags]&0x01 != 0,
		Ac1GroupCount: int(data[offsetSystemFlags] >> 1),
	}
	if snap.ZoneCount > MaxZones {
		snap.ZoneCount = MaxZones
	}

	for acNum := 0; acNum < AcUnitCount; acNum++ {
		snap.AcUnits = append(snap.AcUnits, decodeAcUnit(data, acNum))
	}
	for tp := 0; tp < TouchpadsMax; tp++ {
		snap.Touchpads = append(snap.Touchpads, decodeTouchpad(data, tp))
	}
	for slot := 0; slot < SensorSlots; slot++ {
		raw := data[offsetSensors+slot]
		snap.Sensors = append(snap.Sensors, WirelessSensor{
			Number:      slot,
			Available:   raw&0x80 != 0,
			LowBattery:  raw&0x40 != 0,
			Temperature: int(raw & 0x3F),
		})
	}
	for zoneNum := 0; zoneNum < snap.ZoneCount; zoneNum++ {
		snap.Zones = append(snap.Zones, decodeZone(data, zoneNum, snap.Touchpads))
	}
	return snap, nil
}

func decodeAcUnit(data []byte, acNum int) AcUnit {
	status := data[offsetAcStatus+acNum]

	// Power lives in bit 7, not bit 0: the status byte is read MSB-first.
	powerOn := status&0x80 != 0
	hasError := status&0x02 != 0
	program := int(status>>2) & 0x07

	gatewayID := int(data[offsetAcGateway+acNum])
	brand := ResolveBrand(int(data[offsetAcBrand+acNum]), gatewayID)

	mode := DecodeMode(data[offsetAcMode+acNum]&0x7F, brand)

	fanByte := data[offsetAcFan+acNum]
	supportedBitmap := int(fanByte>>4) & 0x0F
	fan := DecodeFanSpeed(fanByte&0x0F, brand, supportedBitmap)

	setpoint := int(data[offsetAcSetpoint+acNum] & 0x7F)
	roomTemp := int(data[offsetAcRoomTemp+acNum])
	if roomTemp > 127 {
		roomTemp -= 256
	}

	errorCode := int(data[offsetAcError+acNum*2]) | int(data[offsetAcError+acNum*2+1])<<8
	if brand == BrandModeRemapA && errorCode >= brandAErrorLow && errorCode <= brandAErrorHigh {
		errorCode = 0
	}

	nameStart := offsetAcNames + acNum*acNameLength
	name := decodeName(data[nameStart:nameStart+acNameLength], fmt.Sprintf("AC %d", acNum+1))

	return AcUnit{
		Number:        acNum,
		Name:          name,
		PowerOn:       powerOn,
		Mode:          mode,
		Fan:           fan,
		Setpoint:      setpoint,
		RoomTemp:      roomTemp,
		BrandID:       brand,
		HasError:      hasError,
		ErrorCode:     errorCode,
		SupportedFans: SupportedFanSpeeds(supportedBitmap),
		Control:       controlLevel(gatewayID, brand),
		ActiveProgram: program,
	}
}

// decodeZone reads one zone using its two index schemes. The group-derived
// index (GroupIndex) addresses the status and damper-percent bytes; the
// sequential index addresses the control-mode bit and the feedback byte.
// For grouped/dual-ducted installs the two routinely differ.
func decodeZone(data []byte, zoneNum int, touchpads []Touchpad) Zone {
	dataIndex := GroupIndex(data, zoneNum)

	status := data[offsetZoneStatus+dataIndex]
	damperByte := data[offsetZoneDamper+dataIndex]
	damperPercent := int(damperByte&0x7F) * 5
	if damperPercent > 100 {
		damperPercent = 100
	}

	// Control-mode bit and feedback are stored sequentially by zone number
	// even when the damper data is not.
	tempControl := data[offsetZoneDamper+zoneNum]&0x80 != 0
	feedback := data[offsetZoneFeedbck+zoneNum]
	sensorSource := int(feedback>>5) & 0x07
	setpoint := int(feedback&0x1F) + 1 // stored as value-1

	nameStart := offsetZoneNames + zoneNum*zoneNameLength
	name := decodeName(data[nameStart:nameStart+zoneNameLength], fmt.Sprintf("Zone %d", zoneNum+1))

	zone := Zone{
		Number:        zoneNum,
		DataIndex:     dataIndex,
		Name:          name,
		IsOn:          status&0x80 != 0, // bit 7, same MSB-first trap as AC power
		IsSpill:       status&0x40 != 0,
		DamperPercent: damperPercent,
		ActiveProgram: int(status>>2) & 0x07,
		SensorSource:  sensorSource,
		TempControl:   tempControl,
		HasSensor:     zoneHasSensor(data, zoneNum, touchpads),
	}
	if sensorSource > 0 {
		zone.Setpoint = setpoint
		zone.HasSetpoint = true
	}
	return zone
}

// GroupIndex computes the group-derived index for a zone: the high nibble
// of the zone's group byte. Out-of-range values fall back to the
// sequential index rather than failing the decode.
func GroupIndex(data []byte, zoneNum int) int {
	idx := int(data[offsetGroupData+zoneNum]>>4) & 0x0F
	if idx < 0 || idx >= MaxZones {
		return zoneNum
	}
	return idx
}

func decodeTouchpad(data []byte, tp int) Touchpad {
	assigned := int(data[offsetTouchpad+tp]) - 1 // 1-based on the wire
	if assigned < 0 {
		assigned = -1
	}
	temp := int(data[offsetTouchpadTmp+tp] & 0x7F)
	return Touchpad{
		Number:       tp,
		AssignedZone: assigned,
		Temperature:  temp,
		HasTemp:      temp > 0,
	}
}

// zoneHasSensor reports whether any temperature source covers the zone: an
// assigned touchpad, or either of the zone's two wireless sensor slots.
func zoneHasSensor(data []byte, zoneNum int, touchpads []Touchpad) bool {
	for _, tp := range touchpads {
		if tp.AssignedZone == zoneNum {
			return true
		}
	}
	for _, slot := range []int{zoneNum * 2, zoneNum*2 + 1} {
		if slot < SensorSlots && data[offsetSensors+slot]&0x80 != 0 {
			return true
		}
	}
	return false
}

func decodeDeviceID(data []byte) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteString(strconv.Itoa(int(data[offsetDeviceID+i] & 0x0F)))
	}
	return sb.String()
}

func controlLevel(gatewayID, brand int) ControlLevel {
	switch {
	case gatewayID == 0 && brand == 0:
		return ControlNone
	case gatewayID == 0:
		return ControlBasic
	default:
		return ControlFull
	}
}

// decodeName trims a fixed-width ASCII name field, dropping non-printable
// bytes, and substitutes a fallback when the field is blank.
func decodeName(raw []byte, fallback string) string {
	var sb strings.Builder
	for _, b := range raw {
		if b >= 0x20 && b <= 0x7E {
			sb.WriteByte(b)
		}
	}
	name := strings.TrimSpace(sb.String())
	if name == "" {
		return fallback
	}
	return name
}
