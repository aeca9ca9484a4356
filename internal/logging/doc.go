// Package logging provides structured logging for the AirTouch 3 client.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the client. It provides both general logging
// functions and specialized functions for protocol-specific logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, frame reassembly, retries)
//   - Info: Normal operations (connections, snapshot updates, state changes)
//   - Warn: Non-fatal issues (connection drops, discarded frames)
//   - Error: Fatal issues (handshake failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device connected",
//	    zap.String("addr", "192.168.1.50:8899"),
//	    zap.String("device_id", "12345678"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
// These take an explicit *zap.Logger so components with an injected logger
// keep their configured sink.
//
// Connection Logging:
//
//	logging.LogConnection(log, addr, "connected")
//	logging.LogConnection(log, addr, "disconnected")
//
// Frame Logging:
//
//	logging.LogCommand(log, addr, cmd, frame)
//	logging.LogStateFrame(log, addr, deviceID, length)
//	logging.LogRawBytes(log, "rx chunk", data)
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set AT3_LOG_LEVEL
// (or call Initialize with an explicit level) to enable it:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
