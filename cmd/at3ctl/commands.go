package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/krobar/airtouch3/internal/client"
	"github.com/krobar/airtouch3/internal/config"
	"github.com/krobar/airtouch3/internal/logging"
	"github.com/krobar/airtouch3/internal/protocol"
)

// Command flags
var (
	deviceSelector  string
	deviceHost      string
	devicePort      int
	commandTimeout  int
	monitorInterval int
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&deviceSelector, "device", "", "Configured device id or nickname")
	rootCmd.PersistentFlags().StringVar(&deviceHost, "host", "", "Console IP address (bypasses the device registry)")
	rootCmd.PersistentFlags().IntVar(&devicePort, "port", client.DefaultPort, "Console TCP port")
	rootCmd.PersistentFlags().IntVar(&commandTimeout, "timeout", 0, "Per-command timeout in seconds (0 uses the configured default)")

	// Add subcommands directly to root
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(acCmd)
	rootCmd.AddCommand(zoneCmd)
	rootCmd.AddCommand(ownerNameCmd)
	rootCmd.AddCommand(syncTimeCmd)
	rootCmd.AddCommand(devicesCmd)
}

// resolveTarget determines the console address from flags and the registry.
func resolveTarget() (host string, port int, err error) {
	if deviceHost != "" {
		return deviceHost, devicePort, nil
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return "", 0, err
	}

	id, device := registry.ResolveDevice(deviceSelector)
	if device == nil || device.Host == "" {
		if deviceSelector != "" {
			return "", 0, fmt.Errorf("unknown device %q. Use --host to specify an address, or 'at3ctl devices' to list configured consoles", deviceSelector)
		}
		return "", 0, fmt.Errorf("no device specified. Use --host <ip>, or connect once with --host to register the console")
	}

	port = device.Port
	if port == 0 {
		port = client.DefaultPort
	}
	logging.Debug("resolved device " + id + " from registry")
	return device.Host, port, nil
}

// commandContext returns a context bounded by the effective per-command timeout.
func commandContext() (context.Context, context.CancelFunc) {
	timeout := commandTimeout
	if timeout <= 0 {
		timeout = 30
		if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil && registry.Preferences.CommandTimeout > 0 {
			timeout = registry.Preferences.CommandTimeout
		}
	}
	return context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
}

// openClient connects to the resolved console and records it in the registry
// so later invocations can address it by id or nickname.
func openClient(ctx context.Context) (*client.Client, error) {
	host, port, err := resolveTarget()
	if err != nil {
		return nil, err
	}

	c := client.New(host,
		client.WithPort(port),
		client.WithLogger(logging.GetLogger()),
	)
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}

	// Registry bookkeeping is best effort; control still works without it.
	if snap := c.Snapshot(); snap != nil && snap.DeviceID != "" {
		if registry, err := config.LoadRegistry(); err == nil {
			registry.UpdateDeviceLastSeen(snap.DeviceID, host, port)
			if err := registry.Save(); err != nil {
				logging.Warn("failed to save device registry")
			}
		}
	}
	return c, nil
}

// statusCmd prints a full system status snapshot
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current system status",
	Long: `Connect to the console and display the full system state: AC units,
zones, touchpads, and wireless sensors.`,
	Example: `  # Status of the default configured console
  at3ctl status

  # Status of a specific console by address
  at3ctl status --host 192.168.1.50`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	c, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer c.Disconnect()

	snap := c.Snapshot()
	if snap == nil {
		return fmt.Errorf("no state received from console")
	}
	printSnapshot(snap)
	return nil
}

func printSnapshot(snap *protocol.SystemSnapshot) {
	writeSnapshot(os.Stdout, snap)
}

// writeSnapshot renders a snapshot for display. Every Number field in the
// snapshot is 0-based, so presentation adds one exactly once here.
func writeSnapshot(w io.Writer, snap *protocol.SystemSnapshot) {
	fmt.Fprintf(w, "%s (device %s)\n", snap.SystemName, snap.DeviceID)
	if snap.DualDucted {
		fmt.Fprintf(w, "Dual ducted, %d zone(s) on AC 1\n", snap.Ac1GroupCount)
	}
	fmt.Fprintln(w)

	for _, ac := range snap.AcUnits {
		power := "off"
		if ac.PowerOn {
			power = "on"
		}
		fmt.Fprintf(w, "AC %d  %-8s  %s\n", ac.Number+1, ac.Name, power)
		fmt.Fprintf(w, "      mode %-6s fan %-8s set %d°C  room %d°C  control %s\n",
			ac.Mode, ac.Fan, ac.Setpoint, ac.RoomTemp, ac.Control)
		if ac.HasError {
			fmt.Fprintf(w, "      ERROR code %d\n", ac.ErrorCode)
		}
	}
	fmt.Fprintln(w)

	for _, zone := range snap.Zones {
		state := "off"
		if zone.IsOn {
			state = "on"
		}
		if zone.IsSpill {
			state += " (spill)"
		}
		fmt.Fprintf(w, "Zone %-2d %-8s  %-10s damper %3d%%", zone.Number+1, zone.Name, state, zone.DamperPercent)
		if zone.TempControl && zone.HasSetpoint {
			fmt.Fprintf(w, "  setpoint %d°C", zone.Setpoint)
		}
		fmt.Fprintln(w)
	}

	for _, pad := range snap.Touchpads {
		if pad.AssignedZone < 0 {
			continue
		}
		line := fmt.Sprintf("Touchpad %d: zone %d", pad.Number+1, pad.AssignedZone+1)
		if pad.HasTemp {
			line += fmt.Sprintf(", %d°C", pad.Temperature)
		}
		fmt.Fprintln(w, line)
	}

	for _, sensor := range snap.Sensors {
		if !sensor.Available {
			continue
		}
		battery := ""
		if sensor.LowBattery {
			battery = " (low battery)"
		}
		fmt.Fprintf(w, "Sensor %d: %d°C%s\n", sensor.Number+1, sensor.Temperature, battery)
	}
}

// monitorCmd keeps a connection open and reports state periodically
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously monitor system state",
	Long: `Keep a connection to the console open and print the system state at a
fixed interval. Reconnects automatically with exponential backoff when
the connection drops. Stop with Ctrl-C.`,
	Example: `  # Poll every 30 seconds (default)
  at3ctl monitor

  # Faster polling
  at3ctl monitor --interval 5`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().IntVar(&monitorInterval, "interval", 0, "Poll interval in seconds (0 uses the configured default)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := monitorInterval
	if interval <= 0 {
		interval = 30
		if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil && registry.Preferences.MonitorRefresh > 0 {
			interval = registry.Preferences.MonitorRefresh
		}
	}

	for {
		// Reconnect with exponential backoff until the context is cancelled.
		var c *client.Client
		connect := func() error {
			var err error
			c, err = openClient(ctx)
			return err
		}
		policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
		if err := backoff.Retry(connect, policy); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connect failed: %w", err)
		}

		if snap := c.Snapshot(); snap != nil {
			fmt.Printf("--- %s\n", time.Now().Format(time.RFC3339))
			printSnapshot(snap)
		}

		if err := pollLoop(ctx, c, time.Duration(interval)*time.Second); err == nil {
			c.Disconnect()
			return nil // context cancelled, clean exit
		}
		c.Disconnect()
		fmt.Fprintln(os.Stderr, "Connection lost, reconnecting...")
	}
}

// pollLoop refreshes state on a ticker until cancellation (nil) or a
// connection failure (error).
func pollLoop(ctx context.Context, c *client.Client, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snap, err := c.Refresh(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			fmt.Printf("--- %s\n", time.Now().Format(time.RFC3339))
			printSnapshot(snap)
		}
	}
}

// acCmd groups AC unit control commands
var acCmd = &cobra.Command{
	Use:   "ac",
	Short: "Control AC units",
	Long:  `Control power, operating mode, fan speed, and temperature of the AC units.`,
}

func init() {
	acCmd.AddCommand(acPowerCmd)
	acCmd.AddCommand(acModeCmd)
	acCmd.AddCommand(acFanCmd)
	acCmd.AddCommand(acTempCmd)
}

var acPowerCmd = &cobra.Command{
	Use:   "power <unit>",
	Short: "Toggle AC unit power",
	Long: `Toggle an AC unit on or off. The protocol only supports toggling;
check 'at3ctl status' first if you need a specific state.`,
	Example: `  at3ctl ac power 1`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := parseAcUnit(args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ACPowerToggle(ctx, unit); err != nil {
				return err
			}
			reportAc(c, unit)
			return nil
		})
	},
}

var acModeCmd = &cobra.Command{
	Use:   "mode <unit> <auto|heat|dry|fan|cool>",
	Short: "Set AC operating mode",
	Example: `  at3ctl ac mode 1 cool
  at3ctl ac mode 1 heat`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := parseAcUnit(args[0])
		if err != nil {
			return err
		}
		mode, err := parseMode(args[1])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ACSetMode(ctx, unit, mode); err != nil {
				return err
			}
			reportAc(c, unit)
			return nil
		})
	},
}

var acFanCmd = &cobra.Command{
	Use:   "fan <unit> <auto|quiet|low|medium|high|powerful>",
	Short: "Set AC fan speed",
	Example: `  at3ctl ac fan 1 low
  at3ctl ac fan 1 auto`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := parseAcUnit(args[0])
		if err != nil {
			return err
		}
		speed, err := parseFanSpeed(args[1])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ACSetFanSpeed(ctx, unit, speed); err != nil {
				return err
			}
			reportAc(c, unit)
			return nil
		})
	},
}

var acTempCmd = &cobra.Command{
	Use:   "temp <unit> <celsius>",
	Short: "Set AC target temperature",
	Long: `Drive an AC unit's setpoint to a target temperature (16-30°C). The
protocol only supports one-degree steps, so the command steps and
verifies until the target is reached.`,
	Example: `  at3ctl ac temp 1 24`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := parseAcUnit(args[0])
		if err != nil {
			return err
		}
		target, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid temperature %q", args[1])
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ACSetTemperature(ctx, unit, target); err != nil {
				return err
			}
			fmt.Printf("AC %d setpoint now %d°C\n", unit+1, target)
			return nil
		})
	},
}

// zoneCmd groups zone control commands
var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Control zones",
	Long:  `Toggle zones, switch control modes, and drive dampers and setpoints.`,
}

func init() {
	zoneCmd.AddCommand(zoneToggleCmd)
	zoneCmd.AddCommand(zoneModeCmd)
	zoneCmd.AddCommand(zoneDamperCmd)
	zoneCmd.AddCommand(zoneSetpointCmd)
	zoneCmd.AddCommand(zoneNameCmd)
}

var zoneToggleCmd = &cobra.Command{
	Use:     "toggle <zone>",
	Short:   "Toggle a zone on or off",
	Example: `  at3ctl zone toggle 3`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ZoneToggle(ctx, zone); err != nil {
				return err
			}
			reportZone(c, zone)
			return nil
		})
	},
}

var zoneModeCmd = &cobra.Command{
	Use:   "mode <zone>",
	Short: "Toggle zone control mode",
	Long: `Flip a zone between temperature control (setpoint tracking) and fixed
damper control. Only meaningful for zones with a temperature sensor.`,
	Example: `  at3ctl zone mode 3`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ZoneToggleMode(ctx, zone); err != nil {
				return err
			}
			reportZone(c, zone)
			return nil
		})
	},
}

var zoneDamperCmd = &cobra.Command{
	Use:   "damper <zone> <percent>",
	Short: "Set zone damper position",
	Long: `Drive a zone's damper to a target percentage. The damper moves in 5%
steps, so the target must be a multiple of 5 between 0 and 100.`,
	Example: `  at3ctl zone damper 3 75`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(args[0])
		if err != nil {
			return err
		}
		target, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid percentage %q", args[1])
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ZoneSetDamper(ctx, zone, target); err != nil {
				return err
			}
			fmt.Printf("Zone %d damper now %d%%\n", zone+1, target)
			return nil
		})
	},
}

var zoneSetpointCmd = &cobra.Command{
	Use:   "setpoint <zone> <celsius>",
	Short: "Set zone target temperature",
	Long: `Drive a zone's setpoint to a target temperature (16-30°C). Requires a
zone with a temperature sensor in temperature-control mode.`,
	Example: `  at3ctl zone setpoint 3 22`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(args[0])
		if err != nil {
			return err
		}
		target, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid temperature %q", args[1])
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.ZoneSetSetpoint(ctx, zone, target); err != nil {
				return err
			}
			fmt.Printf("Zone %d setpoint now %d°C\n", zone+1, target)
			return nil
		})
	},
}

var zoneNameCmd = &cobra.Command{
	Use:   "name <zone> <name>",
	Short: "Rename a zone on the console",
	Long: `Set a zone's name as shown on the wall display. Names are limited to
8 ASCII characters by the console.`,
	Example: `  at3ctl zone name 3 "Bed 2"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.SetZoneName(ctx, zone, args[1]); err != nil {
				return err
			}
			fmt.Printf("Zone %d renamed to %q\n", zone+1, args[1])
			return nil
		})
	},
}

// ownerNameCmd renames the installation
var ownerNameCmd = &cobra.Command{
	Use:   "owner-name <name>",
	Short: "Rename the installation",
	Long: `Set the installation (owner) name shown on the console. Names are
limited to 16 ASCII characters.`,
	Example: `  at3ctl owner-name "Smith Family"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.SetOwnerName(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Installation renamed to %q\n", args[0])
			return nil
		})
	},
}

// syncTimeCmd pushes the local clock to the console
var syncTimeCmd = &cobra.Command{
	Use:   "sync-time",
	Short: "Sync the console clock to this machine",
	Long: `Push the local wall-clock time to the console. The console does not
acknowledge the update, so success only means the command was sent.`,
	Example: `  at3ctl sync-time`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			now := time.Now()
			if err := c.SyncTime(ctx, now); err != nil {
				return err
			}
			fmt.Printf("Console clock set to %s\n", now.Format("2006-01-02 15:04"))
			return nil
		})
	},
}

// devicesCmd lists and manages the configured console registry
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List configured consoles",
	Long: `List the consoles recorded in the local registry. Consoles are added
automatically the first time you connect with --host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if len(registry.Devices) == 0 {
			fmt.Println("No consoles configured. Connect once with --host <ip> to register one.")
			return nil
		}
		for id, device := range registry.Devices {
			name := device.Nickname
			if name == "" {
				name = "-"
			}
			port := device.Port
			if port == 0 {
				port = client.DefaultPort
			}
			fmt.Printf("%s  %-16s %s:%d", id, name, device.Host, port)
			if !device.LastSeen.IsZero() {
				fmt.Printf("  last seen %s", device.LastSeen.Format("2006-01-02 15:04"))
			}
			fmt.Println()
		}
		return nil
	},
}

var devicesNicknameCmd = &cobra.Command{
	Use:     "nickname <device-id> <name>",
	Short:   "Set a nickname for a configured console",
	Example: `  at3ctl devices nickname 12345678 Home`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if registry.GetDevice(args[0]) == nil {
			return fmt.Errorf("unknown device id %q", args[0])
		}
		registry.SetDeviceNickname(args[0], args[1])
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("Device %s nicknamed %q\n", args[0], args[1])
		return nil
	},
}

var zoneLabelIcon string

var devicesZoneLabelCmd = &cobra.Command{
	Use:   "zone-label <device-id> <zone> <label>",
	Short: "Set a local label for a zone",
	Long: `Attach a label to a zone in the local registry. The console itself only
stores 8-character zone names ('at3ctl zone name'); labels here can be
longer and never touch the device.`,
	Example: `  at3ctl devices zone-label 12345678 3 "Master Bedroom"`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if registry.GetDevice(args[0]) == nil {
			return fmt.Errorf("unknown device id %q", args[0])
		}
		zone, err := parseZone(args[1])
		if err != nil {
			return err
		}
		registry.SetZoneLabel(args[0], zone, args[2], zoneLabelIcon)
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("Zone %d on %s labelled %q\n", zone+1, args[0], args[2])
		return nil
	},
}

func init() {
	devicesZoneLabelCmd.Flags().StringVar(&zoneLabelIcon, "icon", "", "Optional icon shown alongside the label")

	devicesCmd.AddCommand(devicesNicknameCmd)
	devicesCmd.AddCommand(devicesZoneLabelCmd)
}

// withClient runs fn against a connected client with the standard timeout.
func withClient(fn func(context.Context, *client.Client) error) error {
	ctx, cancel := commandContext()
	defer cancel()

	c, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer c.Disconnect()
	return fn(ctx, c)
}

// reportAc prints a one-line summary of an AC unit from the latest snapshot.
func reportAc(c *client.Client, unit int) {
	snap := c.Snapshot()
	if snap == nil || unit >= len(snap.AcUnits) {
		return
	}
	ac := snap.AcUnits[unit]
	power := "off"
	if ac.PowerOn {
		power = "on"
	}
	fmt.Printf("AC %d: %s, mode %s, fan %s, set %d°C, room %d°C\n",
		unit+1, power, ac.Mode, ac.Fan, ac.Setpoint, ac.RoomTemp)
}

// reportZone prints a one-line summary of a zone from the latest snapshot.
func reportZone(c *client.Client, zone int) {
	snap := c.Snapshot()
	if snap == nil {
		return
	}
	for _, z := range snap.Zones {
		if z.Number != zone {
			continue
		}
		state := "off"
		if z.IsOn {
			state = "on"
		}
		line := fmt.Sprintf("Zone %d (%s): %s, damper %d%%", zone+1, z.Name, state, z.DamperPercent)
		if z.TempControl && z.HasSetpoint {
			line += fmt.Sprintf(", setpoint %d°C", z.Setpoint)
		}
		fmt.Println(line)
		return
	}
}

// parseAcUnit parses a 1-based AC unit argument into the 0-based unit index.
func parseAcUnit(arg string) (int, error) {
	unit, err := strconv.Atoi(arg)
	if err != nil || unit < 1 || unit > protocol.AcUnitCount {
		return 0, fmt.Errorf("invalid AC unit %q (expected 1-%d)", arg, protocol.AcUnitCount)
	}
	return unit - 1, nil
}

// parseZone parses a 1-based zone argument into the 0-based zone index.
func parseZone(arg string) (int, error) {
	zone, err := strconv.Atoi(arg)
	if err != nil || zone < 1 || zone > protocol.MaxZones {
		return 0, fmt.Errorf("invalid zone %q (expected 1-%d)", arg, protocol.MaxZones)
	}
	return zone - 1, nil
}

func parseMode(arg string) (protocol.AcMode, error) {
	switch strings.ToLower(arg) {
	case "auto":
		return protocol.ModeAuto, nil
	case "heat":
		return protocol.ModeHeat, nil
	case "dry":
		return protocol.ModeDry, nil
	case "fan":
		return protocol.ModeFan, nil
	case "cool":
		return protocol.ModeCool, nil
	default:
		return 0, fmt.Errorf("invalid mode %q (expected auto, heat, dry, fan, or cool)", arg)
	}
}

func parseFanSpeed(arg string) (protocol.FanSpeed, error) {
	switch strings.ToLower(arg) {
	case "auto":
		return protocol.FanAuto, nil
	case "quiet":
		return protocol.FanQuiet, nil
	case "low":
		return protocol.FanLow, nil
	case "medium":
		return protocol.FanMedium, nil
	case "high":
		return protocol.FanHigh, nil
	case "powerful":
		return protocol.FanPowerful, nil
	default:
		return 0, fmt.Errorf("invalid fan speed %q (expected auto, quiet, low, medium, high, or powerful)", arg)
	}
}
