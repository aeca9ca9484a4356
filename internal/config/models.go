package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for devices and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by 8-digit device id
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single AirTouch 3 console.
// This is keyed by the console's 8-digit device id in the Registry.
type Device struct {
	Nickname string            `yaml:"nickname,omitempty"`  // User-friendly name
	Host     string            `yaml:"host,omitempty"`      // Hostname or IP address of the console
	Port     int               `yaml:"port,omitempty"`      // TCP port (0 means the default 8899)
	LastSeen time.Time         `yaml:"last_seen,omitempty"` // Last successful connection time
	Zones    map[int]*ZoneMeta `yaml:"zones,omitempty"`     // Zone metadata (keyed by zone number 0-15)
}

// ZoneMeta represents user-defined metadata for a single zone.
// The console itself only stores an 8-character name, so longer labels and
// display hints live client-side.
type ZoneMeta struct {
	Label string `yaml:"label"`          // User-defined label (e.g., "Master Bedroom")
	Icon  string `yaml:"icon,omitempty"` // Optional emoji/icon for display
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultDevice  string `yaml:"default_device,omitempty"` // Device id used when --device is omitted
	CommandTimeout int    `yaml:"command_timeout"`          // Per-command timeout in seconds
	MonitorRefresh int    `yaml:"monitor_refresh"`          // Monitor poll interval in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			CommandTimeout: 10,
			MonitorRefresh: 30,
		},
	}
}

// GetDevice retrieves device metadata by device id.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(deviceID string) *Device {
	return r.Devices[deviceID]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(deviceID string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[deviceID]; exists {
		return device
	}

	// Create new device entry
	device := &Device{
		Zones: make(map[int]*ZoneMeta),
	}
	r.Devices[deviceID] = device
	return device
}

// UpdateDeviceLastSeen updates the last seen timestamp and address for a device.
func (r *Registry) UpdateDeviceLastSeen(deviceID, host string, port int) {
	device := r.EnsureDevice(deviceID)
	device.LastSeen = time.Now()
	device.Host = host
	device.Port = port
}

// SetZoneLabel sets or updates the zone metadata for a device.
func (r *Registry) SetZoneLabel(deviceID string, zoneNum int, label, icon string) {
	device := r.EnsureDevice(deviceID)

	if device.Zones == nil {
		device.Zones = make(map[int]*ZoneMeta)
	}

	device.Zones[zoneNum] = &ZoneMeta{
		Label: label,
		Icon:  icon,
	}
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(deviceID, nickname string) {
	device := r.EnsureDevice(deviceID)
	device.Nickname = nickname
}

// ResolveDevice finds a device entry by device id or nickname.
// An empty selector falls back to the preferences' default device.
// Returns the device id and entry, or empty values when nothing matches.
func (r *Registry) ResolveDevice(selector string) (string, *Device) {
	if selector == "" && r.Preferences != nil {
		selector = r.Preferences.DefaultDevice
	}
	if selector == "" {
		return "", nil
	}

	if device, exists := r.Devices[selector]; exists {
		return selector, device
	}
	for id, device := range r.Devices {
		if device.Nickname == selector {
			return id, device
		}
	}
	return "", nil
}
