package protocol

import "fmt"

// System limits fixed by the wire format.
const (
	MaxZones     = 16
	AcUnitCount  = 2
	SensorSlots  = 32
	TouchpadsMax = 2
)

// AcMode is an AC operating mode as used on the wire for unclassified brands.
type AcMode int

const (
	ModeAuto AcMode = 0
	ModeHeat AcMode = 1
	ModeDry  AcMode = 2
	ModeFan  AcMode = 3
	ModeCool AcMode = 4
)

func (m AcMode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeHeat:
		return "heat"
	case ModeDry:
		return "dry"
	case ModeFan:
		return "fan"
	case ModeCool:
		return "cool"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// FanSpeed is a fan speed level. The wire encoding is brand-dependent,
// see EncodeFanSpeed/DecodeFanSpeed.
type FanSpeed int

const (
	FanAuto     FanSpeed = 0
	FanQuiet    FanSpeed = 1
	FanLow      FanSpeed = 2
	FanMedium   FanSpeed = 3
	FanHigh     FanSpeed = 4
	FanPowerful FanSpeed = 5
)

func (f FanSpeed) String() string {
	switch f {
	case FanAuto:
		return "auto"
	case FanQuiet:
		return "quiet"
	case FanLow:
		return "low"
	case FanMedium:
		return "medium"
	case FanHigh:
		return "high"
	case FanPowerful:
		return "powerful"
	default:
		return fmt.Sprintf("fan(%d)", int(f))
	}
}

// ControlLevel describes how much of an AC unit the gateway can drive.
type ControlLevel int

const (
	ControlNone  ControlLevel = 0 // no gateway attached
	ControlBasic ControlLevel = 1 // power/setpoint only
	ControlFull  ControlLevel = 2 // mode and fan control available
)

func (c ControlLevel) String() string {
	switch c {
	case ControlNone:
		return "none"
	case ControlBasic:
		return "basic"
	case ControlFull:
		return "full"
	default:
		return fmt.Sprintf("control(%d)", int(c))
	}
}

// AcUnit is the decoded state of one of the two AC units.
type AcUnit struct {
	Number        int
	Name          string
	PowerOn       bool
	Mode          AcMode
	Fan           FanSpeed
	Setpoint      int // °C
	RoomTemp      int // °C, signed
	BrandID       int
	HasError      bool
	ErrorCode     int
	SupportedFans []FanSpeed
	Control       ControlLevel
	ActiveProgram int
}

// Zone is the decoded state of one zone.
//
// Number is the sequential zone index. DataIndex is the group-derived index
// (high nibble of the group byte) that addresses this zone's status/damper
// bytes; the two frequently differ and must not be conflated.
type Zone struct {
	Number        int
	DataIndex     int
	Name          string
	IsOn          bool
	IsSpill       bool
	DamperPercent int
	ActiveProgram int
	Setpoint      int  // °C, valid only when SensorSource > 0
	HasSetpoint   bool // false when SensorSource == 0
	SensorSource  int
	TempControl   bool // true: setpoint tracking, false: fixed damper
	HasSensor     bool
}

// WirelessSensor is one of the 32 wireless sensor slots.
type WirelessSensor struct {
	Number      int // 0-based slot index, like every other Number field
	Available   bool
	LowBattery  bool
	Temperature int // °C
}

// Touchpad is one of the two wall touchpads.
type Touchpad struct {
	Number       int // 0-based, like every other Number field
	AssignedZone int // 0-based zone index, -1 when unassigned
	Temperature  int // °C, valid only when HasTemp
	HasTemp      bool
}

// SystemSnapshot is one fully decoded state frame. Snapshots are immutable;
// the client replaces its current snapshot wholesale on each decode.
type SystemSnapshot struct {
	DeviceID      string
	SystemName    string
	ZoneCount     int
	DualDucted    bool
	Ac1GroupCount int
	AcUnits       []AcUnit
	Zones         []Zone
	Sensors       []WirelessSensor
	Touchpads     []Touchpad
}
