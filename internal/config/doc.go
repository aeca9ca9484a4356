// Package config provides user configuration management for the AirTouch 3 client.
//
// This package manages a YAML-based configuration file that stores addresses
// and user-defined metadata for AirTouch 3 consoles, including nicknames, zone
// labels, and application preferences. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/airtouch3/config.yaml or $HOME/.config/airtouch3/config.yaml
//   - macOS: $HOME/.config/airtouch3/config.yaml
//   - Windows: %LOCALAPPDATA%\airtouch3\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add or update device metadata
//	registry.SetDeviceNickname("12345678", "Home")
//	registry.UpdateDeviceLastSeen("12345678", "192.168.1.50", 8899)
//	registry.SetZoneLabel("12345678", 0, "Master Bedroom", "")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
