package protocol

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestBuildCommandChecksum(t *testing.T) {
	tests := []struct {
		name         string
		cmd          byte
		p1, p2, p3   byte
		wantChecksum byte
	}{
		{
			name:         "init frame",
			cmd:          CmdInit,
			wantChecksum: 0x62, // 0x55 + 0x01 + 0x0C
		},
		{
			name:         "ac power toggle unit 0",
			cmd:          CmdAc,
			p1:           0,
			p2:           AcPowerToggle,
			wantChecksum: 0x67, // 0x55 + 0x86 + 0x0C + 0x80 mod 256
		},
		{
			name:         "zone value up",
			cmd:          CmdZone,
			p1:           3,
			p2:           ZoneValueUp,
			p3:           ZoneModeSelect,
			wantChecksum: 0x55 + 0x81 + 0x0C + 3 + 0x02 + 0x01,
		},
		{
			name:         "parameter overflow wraps",
			cmd:          CmdAc,
			p1:           0xFF,
			p2:           0xFF,
			p3:           0xFF,
			wantChecksum: 0xE4, // 0x55 + 0x86 + 0x0C + 3*0xFF mod 256
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := BuildCommand(tt.cmd, tt.p1, tt.p2, tt.p3)
			if len(frame) != CommandSize {
				t.Fatalf("frame size = %d, want %d", len(frame), CommandSize)
			}
			if frame[0] != MsgHeader {
				t.Errorf("header = 0x%02x, want 0x%02x", frame[0], MsgHeader)
			}
			if frame[2] != MsgLength {
				t.Errorf("length field = 0x%02x, want 0x%02x", frame[2], MsgLength)
			}
			var sum byte
			for _, b := range frame[:CommandSize-1] {
				sum += b
			}
			if frame[CommandSize-1] != sum {
				t.Errorf("checksum = 0x%02x, want computed 0x%02x", frame[CommandSize-1], sum)
			}
			if frame[CommandSize-1] != tt.wantChecksum {
				t.Errorf("checksum = 0x%02x, want 0x%02x", frame[CommandSize-1], tt.wantChecksum)
			}
		})
	}
}

func TestBuildInit(t *testing.T) {
	want := []byte{0x55, 0x01, 0x0C, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x62}
	got := BuildInit()
	if !bytes.Equal(got, want) {
		t.Errorf("init frame = % 02x, want % 02x", got, want)
	}
}

func TestBuildZoneName(t *testing.T) {
	frame, err := BuildZoneName(2, "Lounge")
	if err != nil {
		t.Fatalf("BuildZoneName: %v", err)
	}
	if len(frame) != CommandSize {
		t.Fatalf("frame size = %d, want %d", len(frame), CommandSize)
	}
	if frame[1] != CmdZoneName {
		t.Errorf("cmd = 0x%02x, want 0x%02x", frame[1], CmdZoneName)
	}
	if frame[3] != 2 {
		t.Errorf("zone byte = %d, want 2", frame[3])
	}
	if got := string(frame[4:12]); got != "Lounge  " {
		t.Errorf("name field = %q, want %q", got, "Lounge  ")
	}
	if err := ValidateCommand(frame); err != nil {
		t.Errorf("ValidateCommand: %v", err)
	}

	if _, err := BuildZoneName(16, "x"); err == nil {
		t.Error("zone 16 should be rejected")
	}
	if _, err := BuildZoneName(0, "too long name"); err == nil {
		t.Error("9+ character name should be rejected")
	}
	if _, err := BuildZoneName(0, "caf\xe9"); err == nil {
		t.Error("non-ASCII name should be rejected")
	}
}

func TestBuildOwnerName(t *testing.T) {
	frame, err := BuildOwnerName("Beach House")
	if err != nil {
		t.Fatalf("BuildOwnerName: %v", err)
	}
	if len(frame) != OwnerCommandSize {
		t.Fatalf("frame size = %d, want %d", len(frame), OwnerCommandSize)
	}
	if frame[1] != CmdOwnerName {
		t.Errorf("cmd = 0x%02x, want 0x%02x", frame[1], CmdOwnerName)
	}
	if frame[2] != MsgLengthOwner {
		t.Errorf("length field = 0x%02x, want 0x%02x", frame[2], MsgLengthOwner)
	}
	if got := string(frame[3:19]); got != "Beach House     " {
		t.Errorf("name field = %q", got)
	}
	var sum byte
	for _, b := range frame[:OwnerCommandSize-1] {
		sum += b
	}
	if frame[OwnerCommandSize-1] != sum {
		t.Errorf("checksum = 0x%02x, want 0x%02x", frame[OwnerCommandSize-1], sum)
	}
	if err := ValidateCommand(frame); err != nil {
		t.Errorf("ValidateCommand: %v", err)
	}
}

func TestBuildTimeSync(t *testing.T) {
	when := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	frame := BuildTimeSync(when)

	if frame[1] != CmdTimeSync {
		t.Errorf("cmd = 0x%02x, want 0x%02x", frame[1], CmdTimeSync)
	}
	// Month, day and minute are stored off by one.
	wantFields := []byte{24, 2, 14, 14, 29}
	if !bytes.Equal(frame[3:8], wantFields) {
		t.Errorf("time fields = %v, want %v", frame[3:8], wantFields)
	}
	if err := ValidateCommand(frame); err != nil {
		t.Errorf("ValidateCommand: %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:   "valid frame",
			mutate: func(f []byte) []byte { return f },
		},
		{
			name: "corrupted checksum",
			mutate: func(f []byte) []byte {
				f[CommandSize-1] ^= 0xFF
				return f
			},
			wantErr: ErrChecksumMismatch,
		},
		{
			name: "corrupted payload",
			mutate: func(f []byte) []byte {
				f[4] ^= 0x01
				return f
			},
			wantErr: ErrChecksumMismatch,
		},
		{
			name:    "truncated frame",
			mutate:  func(f []byte) []byte { return f[:12] },
			wantErr: ErrBadFrame,
		},
		{
			name: "wrong header",
			mutate: func(f []byte) []byte {
				f[0] = 0x54
				return f
			},
			wantErr: ErrBadFrame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := tt.mutate(BuildCommand(CmdAc, 1, AcTempUp, 0))
			err := ValidateCommand(frame)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCommand: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCommand = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
