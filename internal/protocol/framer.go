package protocol

import "bytes"

// Inbound frame sizes.
const (
	// StateFrameSize is the full periodic state frame.
	StateFrameSize = 492

	// ReducedFrameSize is the "remote mode" response the device emits when
	// it believes it is talking to the vendor cloud. Recognized and
	// discarded, never decoded.
	ReducedFrameSize = 395
)

// reducedMarker: bytes [100,108) of a reduced frame are always zero, where a
// full frame carries zone name text.
var reducedMarker [8]byte

// Framer accumulates a raw TCP byte stream and carves complete state frames
// out of it. Buffer state persists across Feed calls, so frames split or
// coalesced arbitrarily by the network are reassembled exactly once.
//
// A Framer is not safe for concurrent use; the client's single receive
// goroutine owns it.
type Framer struct {
	buf []byte
}

// Feed appends data to the internal buffer and returns every complete
// 492-byte state frame now available, in arrival order. Reduced 395-byte
// remote-mode frames are consumed from the buffer but not returned.
//
// Returned frames are copies; the caller may retain them.
func (f *Framer) Feed(data []byte) [][]byte {
	f.buf = append(f.buf, data...)

	var frames [][]byte
	for {
		if len(f.buf) >= StateFrameSize {
			frame := make([]byte, StateFrameSize)
			copy(frame, f.buf[:StateFrameSize])
			f.buf = f.buf[StateFrameSize:]
			frames = append(frames, frame)
			continue
		}
		if len(f.buf) >= ReducedFrameSize && bytes.Equal(f.buf[100:108], reducedMarker[:]) {
			f.buf = f.buf[ReducedFrameSize:]
			continue
		}
		break
	}

	// Reclaim the backing array once everything buffered has been consumed.
	if len(f.buf) == 0 {
		f.buf = nil
	}
	return frames
}

// Pending returns the number of buffered bytes not yet forming a frame.
func (f *Framer) Pending() int {
	return len(f.buf)
}

// Reset discards any partially buffered frame. Called on reconnect so a
// stale partial frame from the previous connection cannot corrupt framing.
func (f *Framer) Reset() {
	f.buf = nil
}
