// Package config loads the owdiscover configuration file.
//
// Files ending in ".toml" are read as TOML, everything else as YAML. Keys are
// the same in both formats:
//
//	log_level: debug
//	event_log: /var/log/owdiscover.owlog
//	discovery:
//	  background: true
//	  interval: 60s
//	  max_concurrent: 4
//	bridges:
//	  - id: cellar
//	    address: 192.168.1.20:4304
//	    timeout: 5s
//	  - id: lab
//	    fixture: testdata/lab.yaml
//	mdns:
//	  enabled: true
//	  interface: eth0
//	  browse_timeout: 3s
//	inbox:
//	  listen: 127.0.0.1:8089
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultLogLevel      = "info"
	DefaultInterval      = 60 * time.Second
	DefaultMaxConcurrent = 4
	DefaultBridgeTimeout = 5 * time.Second
	DefaultBrowseTimeout = 3 * time.Second
	DefaultInboxListen   = "127.0.0.1:8089"

	minimumScanInterval = time.Second
)

var bridgeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validation errors.
var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidInterval = errors.New("invalid scan interval")
	ErrInvalidBridge   = errors.New("invalid bridge")
	ErrDuplicateBridge = errors.New("duplicate bridge id")
)

// Duration is a time.Duration written as a string such as "90s" or "2m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML accepts duration strings and plain seconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var secs int64
	if err := node.Decode(&secs); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	return d.UnmarshalText([]byte(node.Value))
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the complete configuration.
type Config struct {
	LogLevel  string    `yaml:"log_level" toml:"log_level"`
	EventLog  string    `yaml:"event_log" toml:"event_log"`
	Discovery Discovery `yaml:"discovery" toml:"discovery"`
	Bridges   []Bridge  `yaml:"bridges" toml:"bridges"`
	MDNS      MDNS      `yaml:"mdns" toml:"mdns"`
	Inbox     Inbox     `yaml:"inbox" toml:"inbox"`
}

// Discovery configures background scanning.
type Discovery struct {
	Background    bool     `yaml:"background" toml:"background"`
	Interval      Duration `yaml:"interval" toml:"interval"`
	MaxConcurrent int64    `yaml:"max_concurrent" toml:"max_concurrent"`
}

// Bridge is one owserver bridge. Exactly one of Address and Fixture is set.
type Bridge struct {
	ID      string   `yaml:"id" toml:"id"`
	Address string   `yaml:"address,omitempty" toml:"address"`
	Timeout Duration `yaml:"timeout,omitempty" toml:"timeout"`

	// Fixture is the path of a simulated bus topology.
	Fixture string `yaml:"fixture,omitempty" toml:"fixture"`
}

// Simulated reports whether the bridge is backed by a fixture.
func (b Bridge) Simulated() bool {
	return b.Fixture != ""
}

// MDNS configures automatic bridge discovery.
type MDNS struct {
	Enabled       bool     `yaml:"enabled" toml:"enabled"`
	Interface     string   `yaml:"interface,omitempty" toml:"interface"`
	BrowseTimeout Duration `yaml:"browse_timeout,omitempty" toml:"browse_timeout"`
}

// Inbox configures the live result feed.
type Inbox struct {
	Listen string `yaml:"listen" toml:"listen"`

	// StateFile keeps the inbox across restarts of watch. Empty disables it.
	StateFile string `yaml:"state_file,omitempty" toml:"state_file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Discovery: Discovery{
			Interval:      Duration(DefaultInterval),
			MaxConcurrent: DefaultMaxConcurrent,
		},
		MDNS: MDNS{
			BrowseTimeout: Duration(DefaultBrowseTimeout),
		},
		Inbox: Inbox{
			Listen: DefaultInboxListen,
		},
	}
}

// Load reads and validates a configuration file. Unset values keep their
// defaults. Relative fixture and state file paths are resolved against the
// file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	base := filepath.Dir(path)
	for i := range cfg.Bridges {
		f := cfg.Bridges[i].Fixture
		if f != "" && !filepath.IsAbs(f) {
			cfg.Bridges[i].Fixture = filepath.Join(base, f)
		}
	}
	if sf := cfg.Inbox.StateFile; sf != "" && !filepath.IsAbs(sf) {
		cfg.Inbox.StateFile = filepath.Join(base, sf)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Discovery.Interval == 0 {
		c.Discovery.Interval = Duration(DefaultInterval)
	}
	if c.Discovery.MaxConcurrent <= 0 {
		c.Discovery.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.MDNS.BrowseTimeout == 0 {
		c.MDNS.BrowseTimeout = Duration(DefaultBrowseTimeout)
	}
	for i := range c.Bridges {
		if c.Bridges[i].Timeout == 0 {
			c.Bridges[i].Timeout = Duration(DefaultBridgeTimeout)
		}
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Discovery.Interval.Std() < minimumScanInterval {
		return fmt.Errorf("%w: %s (minimum %s)", ErrInvalidInterval, c.Discovery.Interval.Std(), minimumScanInterval)
	}

	seen := make(map[string]bool, len(c.Bridges))
	for i, b := range c.Bridges {
		if !bridgeIDPattern.MatchString(b.ID) {
			return fmt.Errorf("%w: bridge %d: id %q must match %s", ErrInvalidBridge, i, b.ID, bridgeIDPattern)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateBridge, b.ID)
		}
		seen[b.ID] = true

		if (b.Address == "") == (b.Fixture == "") {
			return fmt.Errorf("%w: %s: exactly one of address and fixture must be set", ErrInvalidBridge, b.ID)
		}
	}
	return nil
}
