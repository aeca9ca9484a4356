package protocol

import "errors"

// Sentinel errors for frame validation and decoding. Callers match with
// errors.Is; the wrapping error carries the detail.
var (
	// ErrBadFrame reports a frame whose size or framing fields are wrong.
	ErrBadFrame = errors.New("malformed frame")

	// ErrChecksumMismatch reports a frame whose trailing checksum does not
	// match its contents. Such frames are discarded, never decoded.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrShortState reports a state frame shorter than the fixed 492 bytes.
	ErrShortState = errors.New("short state frame")
)
