package protocol

import (
	"fmt"
	"time"
)

// Command frame layout constants.
const (
	MsgHeader = 0x55 // first byte of every outbound frame

	// Length field values: number of frame bytes before the checksum.
	MsgLength      = 0x0C // standard 13-byte frame
	MsgLengthOwner = 0x14 // 21-byte owner-name frame

	CommandSize      = 13
	OwnerCommandSize = 21
)

// Command ids.
const (
	CmdInit        = 0x01
	CmdZone        = 0x81
	CmdProgramTime = 0x82
	CmdAcTimer     = 0x84
	CmdZoneName    = 0x85
	CmdAc          = 0x86
	CmdOwnerName   = 0x87
	CmdFavActivate = 0x88
	CmdFavZones    = 0x89
	CmdFavName     = 0x8A
	CmdTimeSync    = 0x8B
)

// AC sub-operations, sent as byte 4 of a CmdAc frame. Mode and fan values
// (byte 5) must already be brand-remapped by the caller.
const (
	AcPowerToggle = 0x80
	AcModeSet     = 0x81
	AcFanSet      = 0x82
	AcTempDown    = 0x93
	AcTempUp      = 0xA3
)

// Zone sub-operations under CmdZone. Byte 4 selects toggle/up/down, byte 5
// selects what is being adjusted.
const (
	ZoneToggle    = 0x80
	ZoneValueUp   = 0x02
	ZoneValueDown = 0x01

	ZonePowerSelect = 0x00 // with ZoneToggle: zone on/off
	ZoneModeSelect  = 0x01 // with ZoneToggle: control mode; with up/down: value adjust
)

// Name field widths inside command frames.
const (
	ZoneNameLength  = 8
	OwnerNameLength = 16
)

// BuildCommand produces a standard 13-byte command frame:
//
//	[0x55, cmd, 0x0C, p1, p2, p3, 0 x6, checksum]
//
// where checksum is the sum of bytes 0..11 modulo 256.
func BuildCommand(cmd, p1, p2, p3 byte) []byte {
	frame := make([]byte, CommandSize)
	frame[0] = MsgHeader
	frame[1] = cmd
	frame[2] = MsgLength
	frame[3] = p1
	frame[4] = p2
	frame[5] = p3
	frame[CommandSize-1] = checksum(frame[:CommandSize-1])
	return frame
}

// BuildInit produces the init command sent right after connecting. The
// device answers it with a full state frame.
func BuildInit() []byte {
	return BuildCommand(CmdInit, 0, 0, 0)
}

// BuildZoneName produces a zone naming command. The zone index occupies
// byte 3 and the space-padded 8-character ASCII name bytes 4..11.
func BuildZoneName(zone int, name string) ([]byte, error) {
	if zone < 0 || zone >= MaxZones {
		return nil, fmt.Errorf("zone index %d out of range", zone)
	}
	padded, err := padName(name, ZoneNameLength)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, CommandSize)
	frame[0] = MsgHeader
	frame[1] = CmdZoneName
	frame[2] = MsgLength
	frame[3] = byte(zone)
	copy(frame[4:12], padded)
	frame[CommandSize-1] = checksum(frame[:CommandSize-1])
	return frame, nil
}

// BuildOwnerName produces the 21-byte owner/system naming command, the one
// oversized frame in the command family. Length field is 0x14 and the
// 16-byte space-padded name sits in bytes 3..18; the checksum covers
// bytes 0..19.
func BuildOwnerName(name string) ([]byte, error) {
	padded, err := padName(name, OwnerNameLength)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, OwnerCommandSize)
	frame[0] = MsgHeader
	frame[1] = CmdOwnerName
	frame[2] = MsgLengthOwner
	copy(frame[3:19], padded)
	frame[OwnerCommandSize-1] = checksum(frame[:OwnerCommandSize-1])
	return frame, nil
}

// BuildTimeSync produces a 0x8B time synchronisation command for the given
// wall-clock time. Month, day and minute are stored off-by-one, matching
// the touchpad firmware's internal representation.
func BuildTimeSync(when time.Time) []byte {
	year := byte(when.Year() % 100)
	month := clampByte(int(when.Month())-1, 0, 11)
	day := clampByte(when.Day()-1, 0, 30)
	hour := clampByte(when.Hour(), 0, 23)
	minute := clampByte(when.Minute()-1, 0, 58)

	frame := make([]byte, CommandSize)
	frame[0] = MsgHeader
	frame[1] = CmdTimeSync
	frame[2] = MsgLength
	frame[3] = year
	frame[4] = month
	frame[5] = day
	frame[6] = hour
	frame[7] = minute
	frame[CommandSize-1] = checksum(frame[:CommandSize-1])
	return frame
}

// ValidateCommand checks the framing and trailing checksum of an outbound
// command frame. Used by tests and diagnostic tooling; the builders above
// always produce valid frames.
func ValidateCommand(frame []byte) error {
	switch len(frame) {
	case CommandSize:
		if frame[2] != MsgLength {
			return fmt.Errorf("%w: length field 0x%02x, want 0x%02x", ErrBadFrame, frame[2], MsgLength)
		}
	case OwnerCommandSize:
		if frame[2] != MsgLengthOwner {
			return fmt.Errorf("%w: length field 0x%02x, want 0x%02x", ErrBadFrame, frame[2], MsgLengthOwner)
		}
	default:
		return fmt.Errorf("%w: %d bytes", ErrBadFrame, len(frame))
	}
	if frame[0] != MsgHeader {
		return fmt.Errorf("%w: header 0x%02x, want 0x%02x", ErrBadFrame, frame[0], MsgHeader)
	}
	if got, want := frame[len(frame)-1], checksum(frame[:len(frame)-1]); got != want {
		return fmt.Errorf("%w: 0x%02x, want 0x%02x", ErrChecksumMismatch, got, want)
	}
	return nil
}

// checksum is the sum of all bytes modulo 256.
func checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

func padName(name string, width int) ([]byte, error) {
	if len(name) > width {
		return nil, fmt.Errorf("name %q longer than %d characters", name, width)
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7E {
			return nil, fmt.Errorf("name %q contains non-ASCII character at %d", name, i)
		}
	}
	padded := make([]byte, width)
	for i := range padded {
		padded[i] = ' '
	}
	copy(padded, name)
	return padded, nil
}

func clampByte(v, lo, hi int) byte {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return byte(v)
}
