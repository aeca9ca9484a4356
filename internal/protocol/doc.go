// Package protocol implements the AirTouch 3 zone controller binary protocol.
//
// This package handles framing, command construction, brand policy, and
// state decoding for the proprietary TCP protocol spoken by AirTouch 3
// touchpads. The protocol was reverse-engineered from the vendor's Android
// application and verified against live packet captures.
//
// # Protocol Overview
//
// The device exposes a single stateful TCP connection. The client sends
// small fixed-size command frames; the device answers every command (and
// the initial handshake) with a full state frame describing the entire
// installation.
//
// Command frames are 13 bytes:
//   - Header byte: 0x55
//   - Command id: 1 byte (init 0x01, zone control 0x81, AC control 0x86, ...)
//   - Length field: 0x0C (frame bytes before the checksum)
//   - Parameters: up to 3 bytes, zero-padded to byte 11
//   - Checksum: sum of bytes 0..11 modulo 256
//
// The owner-name command (0x87) is the one oversized variant: 21 bytes with
// length field 0x14 and a 16-byte ASCII payload.
//
// State frames are exactly 492 bytes with fixed field offsets covering two
// AC units, up to 16 zones, 32 wireless sensor slots, and two touchpads.
// A reduced 395-byte "remote mode" frame (recognizable by zero bytes where
// zone name text normally sits) is discarded without decoding.
//
// # Framing
//
// TCP gives no message boundaries, so Framer accumulates raw reads and
// carves complete frames out of the stream:
//
//	var framer protocol.Framer
//	for _, frame := range framer.Feed(chunk) {
//	    snap, err := protocol.DecodeState(frame)
//	    ...
//	}
//
// Buffer state persists across Feed calls; frames split or coalesced by the
// network are reassembled exactly once.
//
// # Brand Policy
//
// Mode and fan-speed wire values vary by AC manufacturer. The deviations
// form a small closed set driven by lookup tables keyed by brand id
// (EncodeMode, DecodeMode, EncodeFanSpeed, DecodeFanSpeed). When the state
// frame carries no direct brand byte, ResolveBrand falls back to a fixed
// gateway-id table.
//
// # Two Zone Index Schemes
//
// Zones are addressed by two independent indices that must never be
// conflated: the group-derived index (high nibble of the zone's group byte)
// selects the status/damper bytes, while the plain sequential index selects
// the control-mode bit and the setpoint feedback byte. GroupIndex computes
// the former; decode keeps the two paths explicit.
//
// # Thread Safety
//
// Command builders and DecodeState are stateless and safe for concurrent
// use. Framer is single-owner state and belongs to the client's receive
// goroutine.
package protocol
