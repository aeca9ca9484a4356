// Package client manages the TCP connection to an AirTouch 3 device and
// exposes the public operation surface: connect/disconnect, snapshot
// access, per-unit and per-zone commands, and the convergence loops that
// reach absolute targets over a protocol that only offers relative steps.
//
// # Lifecycle
//
// A Client moves through Disconnected -> Connecting -> Connected ->
// Disconnecting -> Disconnected, with an error edge from any state back to
// Disconnected. Connect performs the init handshake (one init command, one
// full state frame back); Disconnect is idempotent from any state.
//
// # Concurrency Model
//
// Exactly one goroutine, started by Connect, reads the socket: it feeds a
// protocol.Framer, decodes complete frames, and atomically replaces the
// current snapshot. Commands from any goroutine are serialized through a
// gate because the protocol has no correlation ids: the next state frame
// after a write is, by definition, that command's response. A lost
// connection fails the in-flight command immediately instead of leaving it
// blocked.
//
// # Convergence
//
// The device has no absolute-set commands, so ACSetTemperature,
// ZoneSetDamper and ZoneSetSetpoint step toward their targets and re-read
// state after every step. A wall touchpad may be fighting the loop, so each
// carries a hard bound of MaxConvergeSteps and surfaces *ConvergenceError
// when the bound runs out. Steps already sent stay applied; there is no
// rollback.
package client
