package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_LoadFromFile(t *testing.T) {
	testConfig := `# ftx1chm test configuration
[Radio]
Port=/dev/ttyACM1
Speed=115200
Timeout=500
ExpectedID=761
StrictReplies=1

[Memory]
First=10
Last=20
File=memories.csv

[Database]
Enabled=1
Path=/tmp/snapshots.db
Debug=yes

[Log]
Debug=true`

	path := filepath.Join(t.TempDir(), "ftx1chm.ini")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	config := NewConfig(path)
	if err := config.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Radio section
	if config.GetPort() != "/dev/ttyACM1" {
		t.Errorf("GetPort() = %q, want %q", config.GetPort(), "/dev/ttyACM1")
	}
	if config.GetSpeed() != 115200 {
		t.Errorf("GetSpeed() = %d, want 115200", config.GetSpeed())
	}
	if config.GetTimeout() != 500*time.Millisecond {
		t.Errorf("GetTimeout() = %v, want 500ms", config.GetTimeout())
	}
	if config.GetExpectedID() != 761 {
		t.Errorf("GetExpectedID() = %d, want 761", config.GetExpectedID())
	}
	if !config.GetStrictReplies() {
		t.Error("GetStrictReplies() = false, want true")
	}

	// Memory section
	if config.GetFirstChannel() != 10 || config.GetLastChannel() != 20 {
		t.Errorf("channel range = %d-%d, want 10-20", config.GetFirstChannel(), config.GetLastChannel())
	}
	if config.GetFile() != "memories.csv" {
		t.Errorf("GetFile() = %q, want %q", config.GetFile(), "memories.csv")
	}

	// Database section
	if !config.GetDatabaseEnabled() {
		t.Error("GetDatabaseEnabled() = false, want true")
	}
	if config.GetDatabasePath() != "/tmp/snapshots.db" {
		t.Errorf("GetDatabasePath() = %q, want %q", config.GetDatabasePath(), "/tmp/snapshots.db")
	}
	if !config.GetDatabaseDebug() {
		t.Error("GetDatabaseDebug() = false, want true")
	}

	// Log section
	if !config.GetLogDebug() {
		t.Error("GetLogDebug() = false, want true")
	}
}

func TestConfig_Defaults(t *testing.T) {
	config := NewConfig("unused.ini")
	if err := config.LoadFromString(""); err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"port", config.GetPort(), "/dev/ttyUSB0"},
		{"speed", config.GetSpeed(), uint32(38400)},
		{"timeout", config.GetTimeout(), 200 * time.Millisecond},
		{"expected id", config.GetExpectedID(), uint16(840)},
		{"strict", config.GetStrictReplies(), false},
		{"first", config.GetFirstChannel(), uint16(1)},
		{"last", config.GetLastChannel(), uint16(100)},
		{"file", config.GetFile(), "output.csv"},
		{"database enabled", config.GetDatabaseEnabled(), false},
		{"database path", config.GetDatabasePath(), "data/ftx1chm.db"},
		{"debug", config.GetLogDebug(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestConfig_ParseBool(t *testing.T) {
	config := NewConfig("")

	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"Yes", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"", false},
		{"invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := config.parseBool(tt.input); got != tt.want {
				t.Errorf("parseBool(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfig_IgnoresUnknownAndMalformed(t *testing.T) {
	config := NewConfig("")
	data := `[Radio]
Speed=fast
NoEquals
Unknown=1
; semicolon comment
[Other]
Port=/dev/null`

	if err := config.LoadFromString(data); err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	if config.GetSpeed() != 38400 {
		t.Errorf("GetSpeed() = %d, want default 38400", config.GetSpeed())
	}
	if config.GetPort() != "/dev/ttyUSB0" {
		t.Errorf("GetPort() = %q, want default", config.GetPort())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty port", "[Radio]\nPort=\n"},
		{"zero speed", "[Radio]\nSpeed=0\n"},
		{"first zero", "[Memory]\nFirst=0\n"},
		{"last past 999", "[Memory]\nLast=1000\n"},
		{"reversed range", "[Memory]\nFirst=50\nLast=10\n"},
		{"empty file", "[Memory]\nFile=\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewConfig("").LoadFromString(tt.data); err == nil {
				t.Errorf("LoadFromString(%q) expected error", tt.data)
			}
		})
	}
}

func TestConfig_Overrides(t *testing.T) {
	config := NewConfig("")
	config.SetPort("COM3")
	config.SetSpeed(9600)
	config.SetFile("other.csv")
	config.SetLogDebug(true)

	if config.GetPort() != "COM3" || config.GetSpeed() != 9600 || config.GetFile() != "other.csv" || !config.GetLogDebug() {
		t.Errorf("overrides not applied: %s %d %s %v",
			config.GetPort(), config.GetSpeed(), config.GetFile(), config.GetLogDebug())
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	config := NewConfig(filepath.Join(t.TempDir(), "missing.ini"))
	if err := config.Load(); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestConfig_SpacingQuotesAndRanges(t *testing.T) {
	config := NewConfig("")
	data := `[Radio]
Port = "/dev/ttyS0"
Speed = 9600
ExpectedID = 70000

[Memory]
Last = 65536
File = "my channels.csv"`

	if err := config.LoadFromString(data); err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	if config.GetPort() != "/dev/ttyS0" {
		t.Errorf("GetPort() = %q, want %q", config.GetPort(), "/dev/ttyS0")
	}
	if config.GetSpeed() != 9600 {
		t.Errorf("GetSpeed() = %d, want 9600", config.GetSpeed())
	}
	if config.GetExpectedID() != 840 {
		t.Errorf("GetExpectedID() = %d, want default 840 for out-of-range value", config.GetExpectedID())
	}
	if config.GetLastChannel() != 100 {
		t.Errorf("GetLastChannel() = %d, want default 100 for out-of-range value", config.GetLastChannel())
	}
	if config.GetFile() != "my channels.csv" {
		t.Errorf("GetFile() = %q, want %q", config.GetFile(), "my channels.csv")
	}
}
