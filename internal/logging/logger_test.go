package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestLogConnection(t *testing.T) {
	log, logs := observedLogger()

	LogConnection(log, "192.168.1.50:8899", "connected")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.InfoLevel {
		t.Errorf("level = %v, want info", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["addr"] != "192.168.1.50:8899" || fields["event"] != "connected" {
		t.Errorf("fields = %v", fields)
	}
}

func TestLogCommand(t *testing.T) {
	log, logs := observedLogger()
	frame := []byte{0x55, 0x86, 0x0C, 0, 0x80, 0, 0, 0, 0, 0, 0, 0, 0x67}

	LogCommand(log, "192.168.1.50:8899", frame[1], frame)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["cmd"] != "0x86" {
		t.Errorf("cmd field = %v, want 0x86", fields["cmd"])
	}
	if fields["length"] != int64(13) {
		t.Errorf("length field = %v, want 13", fields["length"])
	}
	if hex, _ := fields["hex"].(string); !strings.HasPrefix(hex, "55860c") {
		t.Errorf("hex field = %v, want 55860c prefix", fields["hex"])
	}
}

func TestLogStateFrame(t *testing.T) {
	log, logs := observedLogger()

	LogStateFrame(log, "192.168.1.50:8899", "12345678", 492)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["device_id"] != "12345678" || fields["length"] != int64(492) {
		t.Errorf("fields = %v", fields)
	}
}

func TestLogRawBytes(t *testing.T) {
	log, logs := observedLogger()

	LogRawBytes(log, "rx chunk", []byte{'O', 'K', 0x00, 0xFF})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["ascii"] != "OK.." {
		t.Errorf("ascii field = %v, want OK..", fields["ascii"])
	}
	if fields["hex"] != "4f4b00ff" {
		t.Errorf("hex field = %v, want 4f4b00ff", fields["hex"])
	}
}

func TestDumpsTruncateLongPayloads(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = 'A'
	}

	hex := hexDump(data)
	if !strings.HasSuffix(hex, "...") {
		t.Error("hexDump should mark truncation with ...")
	}
	if len(hex) != 256*2+3 {
		t.Errorf("hexDump length = %d, want %d", len(hex), 256*2+3)
	}

	if got := asciiDump(data); len(got) != 256 {
		t.Errorf("asciiDump length = %d, want 256", len(got))
	}
}

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
	// Silent mode must swallow output without panicking.
	Info("should go nowhere")
}
