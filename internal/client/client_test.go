package client

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krobar/airtouch3/internal/protocol"
)

// fakeDevice simulates an AirTouch 3 touchpad on the far end of a net.Pipe:
// it answers every command frame with a full state frame reflecting its
// current values, the same request/response shape as the real device.
type fakeDevice struct {
	conn net.Conn

	mu          sync.Mutex
	acSetpoint  int
	zoneDamper  int // percent
	zoneSetp    int
	tempControl bool // zone 0 in setpoint-tracking mode
	frozen      bool // ignore step commands, as if another controller fights back
	silent      bool // swallow commands without responding

	cmds [][]byte
}

func newFakeDevice(conn net.Conn) *fakeDevice {
	return &fakeDevice{
		conn:       conn,
		acSetpoint: 24,
		zoneDamper: 50,
		zoneSetp:   24,
	}
}

func (d *fakeDevice) run() {
	buf := make([]byte, 64)
	for {
		n, err := d.conn.Read(buf)
		if err != nil {
			return
		}
		frame := make([]byte, n)
		copy(frame, buf[:n])

		d.mu.Lock()
		d.cmds = append(d.cmds, frame)
		d.apply(frame)
		silent := d.silent
		state := d.stateFrame()
		d.mu.Unlock()

		if silent {
			continue
		}
		if _, err := d.conn.Write(state); err != nil {
			return
		}
	}
}

func (d *fakeDevice) apply(frame []byte) {
	if len(frame) < protocol.CommandSize || d.frozen {
		return
	}
	switch frame[1] {
	case protocol.CmdAc:
		switch frame[4] {
		case protocol.AcTempUp:
			d.acSetpoint++
		case protocol.AcTempDown:
			d.acSetpoint--
		}
	case protocol.CmdZone:
		switch frame[4] {
		case protocol.ZoneValueUp:
			if d.tempControl {
				d.zoneSetp++
			} else {
				d.zoneDamper += 5
			}
		case protocol.ZoneValueDown:
			if d.tempControl {
				d.zoneSetp--
			} else {
				d.zoneDamper -= 5
			}
		}
	}
}

// stateFrame encodes the device's values at the documented state frame
// offsets: zone count 352, zone damper 248, zone feedback 296, AC setpoint
// 431, device id 483.
func (d *fakeDevice) stateFrame() []byte {
	data := make([]byte, 492)
	data[352] = 1
	copy(data[104:], "ZONE 1  ")
	copy(data[399:], "AC 1    AC 2    ")

	data[248] = byte(d.zoneDamper / 5)
	if d.tempControl {
		data[248] |= 0x80
	}
	data[296] = 0x20 | byte(d.zoneSetp-1) // sensor source 1

	data[431] = byte(d.acSetpoint)
	data[432] = byte(d.acSetpoint)
	data[433] = 22
	data[434] = 22
	copy(data[483:], []byte{0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38})
	return data
}

// stepCommands returns how many step (non-init) commands arrived.
func (d *fakeDevice) stepCommands() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, cmd := range d.cmds {
		if len(cmd) > 1 && cmd[1] != protocol.CmdInit {
			n++
		}
	}
	return n
}

func (d *fakeDevice) setFrozen(v bool) {
	d.mu.Lock()
	d.frozen = v
	d.mu.Unlock()
}

func (d *fakeDevice) setTempControl(v bool) {
	d.mu.Lock()
	d.tempControl = v
	d.mu.Unlock()
}

func (d *fakeDevice) setSilent(v bool) {
	d.mu.Lock()
	d.silent = v
	d.mu.Unlock()
}

// newTestPair wires a Client to a running fakeDevice over net.Pipe.
func newTestPair(t *testing.T) (*Client, *fakeDevice) {
	t.Helper()
	clientEnd, deviceEnd := net.Pipe()
	device := newFakeDevice(deviceEnd)
	go device.run()
	t.Cleanup(func() { deviceEnd.Close() })

	c := New("test-device",
		WithDialFunc(func(ctx context.Context, addr string) (net.Conn, error) {
			return clientEnd, nil
		}),
		WithTimeouts(time.Second, 20*time.Millisecond, 500*time.Millisecond),
	)
	t.Cleanup(c.Disconnect)
	return c, device
}

func TestConnectHandshake(t *testing.T) {
	c, _ := newTestPair(t)

	require.Equal(t, StateDisconnected, c.State())
	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, StateConnected, c.State())

	snap := c.Snapshot()
	require.NotNil(t, snap, "handshake must install a snapshot")
	assert.Equal(t, "12345678", snap.DeviceID)
	assert.Equal(t, 1, snap.ZoneCount)
	assert.Equal(t, 24, snap.AcUnits[0].Setpoint)
}

func TestConnectFailsWithoutResponse(t *testing.T) {
	c, device := newTestPair(t)
	device.setSilent(true)

	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.Eventually(t, func() bool { return c.State() == StateDisconnected },
		time.Second, 10*time.Millisecond)
}

func TestDisconnectIdempotent(t *testing.T) {
	c, _ := newTestPair(t)
	require.NoError(t, c.Connect(context.Background()))

	c.Disconnect()
	assert.Eventually(t, func() bool { return c.State() == StateDisconnected },
		time.Second, 10*time.Millisecond)
	c.Disconnect() // second call is a no-op
	assert.Equal(t, StateDisconnected, c.State())
}

func TestCommandRefreshesSnapshot(t *testing.T) {
	c, device := newTestPair(t)
	require.NoError(t, c.Connect(context.Background()))

	snap, err := c.ACTempUp(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 25, snap.AcUnits[0].Setpoint)
	assert.Equal(t, 25, c.Snapshot().AcUnits[0].Setpoint, "client snapshot must follow")
	assert.Equal(t, 1, device.stepCommands())
}

func TestCommandsWhileDisconnected(t *testing.T) {
	c := New("nowhere", WithDialFunc(func(ctx context.Context, addr string) (net.Conn, error) {
		return nil, ErrNotConnected
	}))

	_, err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
	err = c.ZoneToggle(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestInFlightCommandFailsOnConnectionLoss(t *testing.T) {
	c, device := newTestPair(t)
	require.NoError(t, c.Connect(context.Background()))

	device.setSilent(true)
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Refresh(context.Background())
		errCh <- err
	}()

	// Give the command time to get in flight, then drop the connection.
	time.Sleep(50 * time.Millisecond)
	device.conn.Close()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConnectionLost)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight command hung after connection loss")
	}
	assert.Eventually(t, func() bool { return c.State() == StateDisconnected },
		time.Second, 10*time.Millisecond)
}

func TestCommandSerialization(t *testing.T) {
	c, device := newTestPair(t)
	require.NoError(t, c.Connect(context.Background()))

	const parallel = 5
	var wg sync.WaitGroup
	errs := make([]error, parallel)
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.ZoneToggle(context.Background(), 0)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoErrorf(t, err, "command %d", i)
	}
	assert.Equal(t, parallel, device.stepCommands())
}

func TestCommandContextCancellation(t *testing.T) {
	c, device := newTestPair(t)
	require.NoError(t, c.Connect(context.Background()))

	device.setSilent(true)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Refresh(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCommandValidation(t *testing.T) {
	c, _ := newTestPair(t)
	require.NoError(t, c.Connect(context.Background()))
	ctx := context.Background()

	assert.Error(t, c.ACPowerToggle(ctx, 2))
	assert.Error(t, c.ACPowerToggle(ctx, -1))
	assert.Error(t, c.ZoneToggle(ctx, 16))
	assert.Error(t, c.SetZoneName(ctx, 0, "way too long name"))
}

func TestSyncTimeFireAndForget(t *testing.T) {
	c, device := newTestPair(t)
	require.NoError(t, c.Connect(context.Background()))

	// No response is expected, so sync must succeed against a silent device.
	device.setSilent(true)
	require.NoError(t, c.SyncTime(context.Background(), time.Now()))
	assert.Eventually(t, func() bool { return device.stepCommands() == 1 },
		time.Second, 10*time.Millisecond)
}
