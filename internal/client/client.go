package client

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/krobar/airtouch3/internal/logging"
	"github.com/krobar/airtouch3/internal/protocol"
)

// Connection parameters. The device accepts exactly one control connection
// on a fixed port; reads idle out after a second and are simply retried.
const (
	DefaultPort           = 8899
	DefaultDialTimeout    = 5 * time.Second
	DefaultReadTimeout    = 1 * time.Second
	DefaultCommandTimeout = 10 * time.Second

	readChunkSize = 1024
)

// ConnState is the client's connection lifecycle state.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// DialFunc opens the transport connection. Overridable for tests.
type DialFunc func(ctx context.Context, addr string) (net.Conn, error)

// Option configures a Client.
type Option func(*Client)

// WithPort overrides the default TCP port.
func WithPort(port int) Option {
	return func(c *Client) { c.port = port }
}

// WithLogger attaches a zap logger. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeouts overrides the dial, idle-read and command-response timeouts.
// Zero values keep the defaults.
func WithTimeouts(dial, read, command time.Duration) Option {
	return func(c *Client) {
		if dial > 0 {
			c.dialTimeout = dial
		}
		if read > 0 {
			c.readTimeout = read
		}
		if command > 0 {
			c.commandTimeout = command
		}
	}
}

// WithDialFunc replaces the TCP dialer, letting tests wire the client to an
// in-process fake device.
func WithDialFunc(dial DialFunc) Option {
	return func(c *Client) { c.dial = dial }
}

// Client owns one TCP connection to one AirTouch 3 device. A single receive
// goroutine reads and decodes state frames; outbound commands are strictly
// serialized because the protocol has no correlation ids and responses can
// only be attributed positionally.
//
// Multiple devices are multiple independent Client instances; nothing is
// shared between them.
type Client struct {
	host           string
	port           int
	dialTimeout    time.Duration
	readTimeout    time.Duration
	commandTimeout time.Duration
	log            *zap.Logger
	dial           DialFunc

	// cmdGate is the command gate: one request/response cycle at a time.
	// A buffered channel rather than a mutex so acquisition can respect
	// context cancellation.
	cmdGate chan struct{}

	// mu guards conn, state and waiters.
	mu      sync.Mutex
	conn    net.Conn
	state   ConnState
	waiters []chan *protocol.SystemSnapshot

	snapMu   sync.RWMutex
	snapshot *protocol.SystemSnapshot
}

// New creates a client for the device at host. The connection is not opened
// until Connect.
func New(host string, opts ...Option) *Client {
	c := &Client{
		host:           host,
		port:           DefaultPort,
		dialTimeout:    DefaultDialTimeout,
		readTimeout:    DefaultReadTimeout,
		commandTimeout: DefaultCommandTimeout,
		log:            zap.NewNop(),
		cmdGate:        make(chan struct{}, 1),
	}
	c.dial = func(ctx context.Context, addr string) (net.Conn, error) {
		d := net.Dialer{Timeout: c.dialTimeout}
		return d.DialContext(ctx, "tcp", addr)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Addr returns the host:port the client dials.
func (c *Client) Addr() string {
	return net.JoinHostPort(c.host, fmt.Sprintf("%d", c.port))
}

// State returns the current connection lifecycle state.
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the most recently decoded system state, or nil before
// the first state frame has arrived. Snapshots are immutable.
func (c *Client) Snapshot() *protocol.SystemSnapshot {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.snapshot
}

// Connect dials the device, starts the receive loop, and performs the init
// handshake: success requires one well-formed state frame in response to
// the init command. On any failure the client ends up Disconnected.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("connect from state %s: %w", state, ErrNotConnected)
	}
	c.state = StateConnecting
	c.mu.Unlock()

	dialCtx, cancel := context.WithTimeout(ctx, c.dialTimeout)
	defer cancel()
	conn, err := c.dial(dialCtx, c.Addr())
	if err != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
		return fmt.Errorf("dial %s: %w", c.Addr(), err)
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()

	logging.LogConnection(c.log, c.Addr(), "connected")
	go c.receiveLoop(conn)

	if _, err := c.SendCommand(ctx, protocol.BuildInit()); err != nil {
		c.Disconnect()
		return fmt.Errorf("init handshake: %w", err)
	}
	return nil
}

// Disconnect closes the connection and transitions to Disconnected from any
// prior state. Idempotent; any in-flight command fails rather than blocking.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.state = StateDisconnecting
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.Close() // receive loop observes the close and finishes teardown
	} else {
		c.connectionLost(nil)
	}
}

// receiveLoop is the single socket consumer: it reads raw bytes, reassembles
// frames, decodes them, and publishes snapshots. Idle read timeouts are
// expected and retried. The loop ends only on peer close or socket failure,
// including the local close performed by Disconnect.
func (c *Client) receiveLoop(conn net.Conn) {
	var framer protocol.Framer
	buf := make([]byte, readChunkSize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			c.connectionLost(err)
			return
		}
		n, err := conn.Read(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue // idle, not an error
			}
			c.connectionLost(err)
			return
		}
		if n == 0 {
			continue
		}
		logging.LogRawBytes(c.log, "rx chunk", buf[:n])

		for _, frame := range framer.Feed(buf[:n]) {
			snapshot, err := protocol.DecodeState(frame)
			if err != nil {
				// Previous snapshot stays current; a bad frame is logged
				// and skipped, never fatal to the loop.
				c.log.Warn("state decode failed", zap.Error(err))
				continue
			}
			logging.LogStateFrame(c.log, c.Addr(), snapshot.DeviceID, len(frame))
			c.publish(snapshot)
		}
		if pending := framer.Pending(); pending > 0 {
			c.log.Debug("partial frame buffered", zap.Int("bytes", pending))
		}
	}
}

// publish installs a new snapshot and hands it to every waiting command.
func (c *Client) publish(snapshot *protocol.SystemSnapshot) {
	c.snapMu.Lock()
	c.snapshot = snapshot
	c.snapMu.Unlock()

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- snapshot // buffered, never blocks
	}
	c.log.Debug("snapshot updated",
		zap.String("device", snapshot.DeviceID),
		zap.Int("zones", snapshot.ZoneCount))
}

// connectionLost finishes teardown after the receive loop exits: it closes
// the socket, fails all pending waiters, and lands in Disconnected.
func (c *Client) connectionLost(cause error) {
	c.mu.Lock()
	wasDisconnecting := c.state == StateDisconnecting
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	for _, ch := range waiters {
		close(ch) // a closed waiter channel means the command failed
	}

	if wasDisconnecting {
		logging.LogConnection(c.log, c.Addr(), "disconnected")
	} else {
		c.log.Warn("connection lost", zap.String("addr", c.Addr()), zap.Error(cause))
	}
}

// SendCommand writes one command frame and waits for the next decoded state
// frame, which the protocol defines as that command's response. Commands
// are serialized by the command gate; the wait is bounded by ctx and the
// command timeout, and fails immediately on connection loss.
func (c *Client) SendCommand(ctx context.Context, frame []byte) (*protocol.SystemSnapshot, error) {
	select {
	case c.cmdGate <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-c.cmdGate }()

	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	conn := c.conn
	wait := make(chan *protocol.SystemSnapshot, 1)
	c.waiters = append(c.waiters, wait)
	c.mu.Unlock()

	if _, err := conn.Write(frame); err != nil {
		c.removeWaiter(wait)
		return nil, fmt.Errorf("write command 0x%02x: %w", frame[1], err)
	}
	logging.LogCommand(c.log, c.Addr(), frame[1], frame)

	timer := time.NewTimer(c.commandTimeout)
	defer timer.Stop()
	select {
	case snapshot, ok := <-wait:
		if !ok {
			return nil, ErrConnectionLost
		}
		return snapshot, nil
	case <-ctx.Done():
		c.removeWaiter(wait)
		return nil, ctx.Err()
	case <-timer.C:
		c.removeWaiter(wait)
		return nil, ErrCommandTimeout
	}
}

// sendFireAndForget writes a frame without waiting for a state response.
// Used for time sync, which the device does not acknowledge.
func (c *Client) sendFireAndForget(ctx context.Context, frame []byte) error {
	select {
	case c.cmdGate <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-c.cmdGate }()

	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return ErrNotConnected
	}
	conn := c.conn
	c.mu.Unlock()

	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("write command 0x%02x: %w", frame[1], err)
	}
	logging.LogCommand(c.log, c.Addr(), frame[1], frame)
	return nil
}

func (c *Client) removeWaiter(wait chan *protocol.SystemSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ch := range c.waiters {
		if ch == wait {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}

// Refresh forces a fresh state frame by re-sending the init command.
func (c *Client) Refresh(ctx context.Context) (*protocol.SystemSnapshot, error) {
	return c.SendCommand(ctx, protocol.BuildInit())
}

// ACPowerToggle toggles power on an AC unit. The protocol has no absolute
// power set; callers wanting a specific state check the snapshot first.
func (c *Client) ACPowerToggle(ctx context.Context, acNum int) error {
	if err := checkAcNum(acNum); err != nil {
		return err
	}
	_, err := c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdAc, byte(acNum), protocol.AcPowerToggle, 0))
	return err
}

// ACSetMode sets an AC unit's operating mode, applying the unit's brand
// remap from the current snapshot.
func (c *Client) ACSetMode(ctx context.Context, acNum int, mode protocol.AcMode) error {
	if err := checkAcNum(acNum); err != nil {
		return err
	}
	wire := protocol.EncodeMode(mode, c.acBrand(acNum))
	_, err := c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdAc, byte(acNum), protocol.AcModeSet, wire))
	return err
}

// ACSetFanSpeed sets an AC unit's fan speed with brand handling.
func (c *Client) ACSetFanSpeed(ctx context.Context, acNum int, speed protocol.FanSpeed) error {
	if err := checkAcNum(acNum); err != nil {
		return err
	}
	brand := c.acBrand(acNum)
	bitmap := c.acFanBitmap(acNum)
	wire := protocol.EncodeFanSpeed(speed, brand, bitmap)
	_, err := c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdAc, byte(acNum), protocol.AcFanSet, wire))
	return err
}

// ACTempUp raises an AC unit's setpoint by one degree.
func (c *Client) ACTempUp(ctx context.Context, acNum int) (*protocol.SystemSnapshot, error) {
	if err := checkAcNum(acNum); err != nil {
		return nil, err
	}
	return c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdAc, byte(acNum), protocol.AcTempUp, 0))
}

// ACTempDown lowers an AC unit's setpoint by one degree.
func (c *Client) ACTempDown(ctx context.Context, acNum int) (*protocol.SystemSnapshot, error) {
	if err := checkAcNum(acNum); err != nil {
		return nil, err
	}
	return c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdAc, byte(acNum), protocol.AcTempDown, 0))
}

// ZoneToggle toggles a zone on or off.
func (c *Client) ZoneToggle(ctx context.Context, zone int) error {
	if err := checkZone(zone); err != nil {
		return err
	}
	_, err := c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdZone, byte(zone), protocol.ZoneToggle, protocol.ZonePowerSelect))
	return err
}

// ZoneToggleMode flips a zone between setpoint-tracking and fixed-damper
// control.
func (c *Client) ZoneToggleMode(ctx context.Context, zone int) error {
	if err := checkZone(zone); err != nil {
		return err
	}
	_, err := c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdZone, byte(zone), protocol.ZoneToggle, protocol.ZoneModeSelect))
	return err
}

// ZoneValueUp steps a zone's controlled value up: setpoint by 1°C in
// temperature-control mode, damper by 5% otherwise.
func (c *Client) ZoneValueUp(ctx context.Context, zone int) (*protocol.SystemSnapshot, error) {
	if err := checkZone(zone); err != nil {
		return nil, err
	}
	return c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdZone, byte(zone), protocol.ZoneValueUp, protocol.ZoneModeSelect))
}

// ZoneValueDown steps a zone's controlled value down.
func (c *Client) ZoneValueDown(ctx context.Context, zone int) (*protocol.SystemSnapshot, error) {
	if err := checkZone(zone); err != nil {
		return nil, err
	}
	return c.SendCommand(ctx, protocol.BuildCommand(protocol.CmdZone, byte(zone), protocol.ZoneValueDown, protocol.ZoneModeSelect))
}

// SetZoneName renames a zone (8 ASCII characters max).
func (c *Client) SetZoneName(ctx context.Context, zone int, name string) error {
	frame, err := protocol.BuildZoneName(zone, name)
	if err != nil {
		return err
	}
	_, err = c.SendCommand(ctx, frame)
	return err
}

// SetOwnerName renames the installation (16 ASCII characters max).
func (c *Client) SetOwnerName(ctx context.Context, name string) error {
	frame, err := protocol.BuildOwnerName(name)
	if err != nil {
		return err
	}
	_, err = c.SendCommand(ctx, frame)
	return err
}

// SyncTime pushes the given wall-clock time to the device. Fire-and-forget:
// the device sends no response frame for it.
func (c *Client) SyncTime(ctx context.Context, when time.Time) error {
	return c.sendFireAndForget(ctx, protocol.BuildTimeSync(when))
}

func (c *Client) acBrand(acNum int) int {
	if snap := c.Snapshot(); snap != nil && acNum < len(snap.AcUnits) {
		return snap.AcUnits[acNum].BrandID
	}
	return protocol.BrandUnclassified
}

func (c *Client) acFanBitmap(acNum int) int {
	if snap := c.Snapshot(); snap != nil && acNum < len(snap.AcUnits) {
		return protocol.FanBitmap(snap.AcUnits[acNum].SupportedFans)
	}
	return 0
}

func checkAcNum(acNum int) error {
	if acNum < 0 || acNum >= protocol.AcUnitCount {
		return fmt.Errorf("ac unit %d out of range", acNum)
	}
	return nil
}

func checkZone(zone int) error {
	if zone < 0 || zone >= protocol.MaxZones {
		return fmt.Errorf("zone %d out of range", zone)
	}
	return nil
}
