package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Config represents the ftx1chm configuration
type Config struct {
	filename string

	// Radio section
	port          string
	speed         uint32
	timeoutMs     uint32
	expectedID    uint16
	strictReplies bool

	// Memory section
	firstChannel uint16
	lastChannel  uint16
	file         string

	// Database section (optional snapshot store for radio reads)
	databaseEnabled bool
	databasePath    string
	databaseDebug   bool

	// Log section
	logDebug bool
}

// NewConfig creates a new configuration instance
func NewConfig(filename string) *Config {
	return &Config{
		filename: filename,
		// Set reasonable defaults
		port:         "/dev/ttyUSB0",
		speed:        38400,
		timeoutMs:    200,
		expectedID:   840,
		firstChannel: 1,
		lastChannel:  100,
		file:         "output.csv",

		databaseEnabled: false,
		databasePath:    "data/ftx1chm.db",
	}
}

// iniOptions match the hand-edited files the radio tools ship with: lines
// that are neither sections, comments nor key=value pairs are skipped.
var iniOptions = ini.LoadOptions{
	AllowBooleanKeys:        true,
	SkipUnrecognizableLines: true,
}

// Load loads configuration from the specified file
func (c *Config) Load() error {
	file, err := ini.LoadSources(iniOptions, c.filename)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %v", c.filename, err)
	}
	return c.apply(file)
}

// LoadFromString loads configuration from a string (useful for testing)
func (c *Config) LoadFromString(data string) error {
	file, err := ini.LoadSources(iniOptions, []byte(data))
	if err != nil {
		return fmt.Errorf("failed to parse config: %v", err)
	}
	return c.apply(file)
}

func (c *Config) apply(file *ini.File) error {
	if sec, err := file.GetSection("Radio"); err == nil {
		c.parseRadioSection(sec)
	}
	if sec, err := file.GetSection("Memory"); err == nil {
		c.parseMemorySection(sec)
	}
	if sec, err := file.GetSection("Database"); err == nil {
		c.parseDatabaseSection(sec)
	}
	if sec, err := file.GetSection("Log"); err == nil {
		c.parseLogSection(sec)
	}
	return c.Validate()
}

// uintKey returns the value of name when it is present and fits in bits.
func uintKey(sec *ini.Section, name string, bits int) (uint64, bool) {
	if !sec.HasKey(name) {
		return 0, false
	}
	v, err := sec.Key(name).Uint64()
	if err != nil || v > 1<<bits-1 {
		return 0, false
	}
	return v, true
}

func (c *Config) parseRadioSection(sec *ini.Section) {
	if sec.HasKey("Port") {
		c.port = sec.Key("Port").String()
	}
	if v, ok := uintKey(sec, "Speed", 32); ok {
		c.speed = uint32(v)
	}
	if v, ok := uintKey(sec, "Timeout", 32); ok {
		c.timeoutMs = uint32(v)
	}
	if v, ok := uintKey(sec, "ExpectedID", 16); ok {
		c.expectedID = uint16(v)
	}
	if sec.HasKey("StrictReplies") {
		c.strictReplies = c.parseBool(sec.Key("StrictReplies").String())
	}
}

func (c *Config) parseMemorySection(sec *ini.Section) {
	if v, ok := uintKey(sec, "First", 16); ok {
		c.firstChannel = uint16(v)
	}
	if v, ok := uintKey(sec, "Last", 16); ok {
		c.lastChannel = uint16(v)
	}
	if sec.HasKey("File") {
		c.file = sec.Key("File").String()
	}
}

func (c *Config) parseDatabaseSection(sec *ini.Section) {
	if sec.HasKey("Enabled") {
		c.databaseEnabled = c.parseBool(sec.Key("Enabled").String())
	}
	if sec.HasKey("Path") {
		c.databasePath = sec.Key("Path").String()
	}
	if sec.HasKey("Debug") {
		c.databaseDebug = c.parseBool(sec.Key("Debug").String())
	}
}

func (c *Config) parseLogSection(sec *ini.Section) {
	if sec.HasKey("Debug") {
		c.logDebug = c.parseBool(sec.Key("Debug").String())
	}
}

func (c *Config) parseBool(value string) bool {
	return value == "1" || strings.ToLower(value) == "true" || strings.ToLower(value) == "yes"
}

// Validate checks the values that cannot be silently defaulted.
func (c *Config) Validate() error {
	if c.port == "" {
		return fmt.Errorf("radio port must not be empty")
	}
	if c.speed == 0 {
		return fmt.Errorf("radio speed must be greater than zero")
	}
	if c.firstChannel < 1 || c.lastChannel > 999 || c.firstChannel > c.lastChannel {
		return fmt.Errorf("invalid memory range %d-%d (must be within 1-999)", c.firstChannel, c.lastChannel)
	}
	if c.file == "" {
		return fmt.Errorf("memory file must not be empty")
	}
	return nil
}

// Setters used for command-line overrides
func (c *Config) SetPort(port string)   { c.port = port }
func (c *Config) SetSpeed(speed uint32) { c.speed = speed }
func (c *Config) SetFile(file string)   { c.file = file }
func (c *Config) SetLogDebug(on bool)   { c.logDebug = on }

// Getter methods for Radio section
func (c *Config) GetPort() string        { return c.port }
func (c *Config) GetSpeed() uint32       { return c.speed }
func (c *Config) GetTimeoutMs() uint32   { return c.timeoutMs }
func (c *Config) GetExpectedID() uint16  { return c.expectedID }
func (c *Config) GetStrictReplies() bool { return c.strictReplies }

// GetTimeout returns the serial read timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.timeoutMs) * time.Millisecond
}

// Getter methods for Memory section
func (c *Config) GetFirstChannel() uint16 { return c.firstChannel }
func (c *Config) GetLastChannel() uint16  { return c.lastChannel }
func (c *Config) GetFile() string         { return c.file }

// Getter methods for Database section
func (c *Config) GetDatabaseEnabled() bool { return c.databaseEnabled }
func (c *Config) GetDatabasePath() string  { return c.databasePath }
func (c *Config) GetDatabaseDebug() bool   { return c.databaseDebug }

// Getter methods for Log section
func (c *Config) GetLogDebug() bool { return c.logDebug }
