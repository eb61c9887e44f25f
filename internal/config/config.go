package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
)

// storageGroupNameRegex validates storage group names.
// naviseccli accepts up to 64 characters; spaces are rejected here so names
// can be used as file names and passed unquoted.
var storageGroupNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,63}$`)

// ValidateStorageGroupName checks if a storage group name is valid.
// Valid names:
//   - Start with a letter or digit
//   - Contain only letters, digits, dots, colons, underscores, or hyphens
//   - Are between 1 and 64 characters long
func ValidateStorageGroupName(name string) error {
	if name == "" {
		return fmt.Errorf("storage group name cannot be empty")
	}

	if !storageGroupNameRegex.MatchString(name) {
		return fmt.Errorf("invalid storage group name %q: must start with a letter or digit, contain only letters, digits, '.', ':', '_' or '-', and be at most 64 characters", name)
	}

	return nil
}

const (
	DefaultConfigDir        = "/etc/vnxctl"
	DefaultConfigFile       = "config.toml"
	DefaultStateDir         = "/var/lib/vnxctl"
	DefaultAttachRetryLimit = 5
	DefaultMaxLUNsPerGroup  = 255
	DefaultTimeout          = 60 * time.Second

	// ConfigEnv overrides the configuration file path
	ConfigEnv = "VNXCTL_CONFIG"
)

// Duration is a time.Duration read from a TOML string such as "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Array holds the naviseccli connection settings
type Array struct {
	Naviseccli   string   `toml:"naviseccli"`
	SPA          string   `toml:"sp_a"`
	SPB          string   `toml:"sp_b"`
	Username     string   `toml:"username"`
	Password     string   `toml:"password"`
	Scope        string   `toml:"scope"`
	SecurityFile string   `toml:"security_file"` // Relative paths resolve inside the config dir
	Timeout      Duration `toml:"timeout"`
	ExtraArgs    string   `toml:"extra_args"`
	NoPoll       bool     `toml:"no_poll"`
}

// StorageGroup holds HLU allocation settings
type StorageGroup struct {
	MaxLUNsPerGroup  int    `toml:"max_luns_per_group"`
	AttachRetryLimit int    `toml:"attach_retry_limit"` // <= 0 retries until interrupted
	HLUPolicy        string `toml:"hlu_policy"`
}

// State holds local state locations
type State struct {
	Dir             string `toml:"dir"`
	MetricsTextfile string `toml:"metrics_textfile,omitempty"`
}

// Config is the vnxctl configuration file
type Config struct {
	Array        Array        `toml:"array"`
	StorageGroup StorageGroup `toml:"storage_group"`
	State        State        `toml:"state"`

	// path is the file the config was loaded from, empty for defaults
	path string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Array: Array{
			Naviseccli: "naviseccli",
			Scope:      "0",
			Timeout:    Duration{DefaultTimeout},
		},
		StorageGroup: StorageGroup{
			MaxLUNsPerGroup:  DefaultMaxLUNsPerGroup,
			AttachRetryLimit: DefaultAttachRetryLimit,
			HLUPolicy:        "lowest",
		},
		State: State{
			Dir: DefaultStateDir,
		},
	}
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory of the config file, or DefaultConfigDir.
func (c *Config) Dir() string {
	if c.path == "" {
		return DefaultConfigDir
	}
	return filepath.Dir(c.path)
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if c.Array.Naviseccli == "" {
		return fmt.Errorf("array.naviseccli is required")
	}
	if c.Array.Timeout.Duration < 0 {
		return fmt.Errorf("array.timeout must not be negative (got %s)", c.Array.Timeout)
	}
	if c.Array.Username != "" && c.Array.Password == "" && c.Array.SecurityFile == "" {
		return fmt.Errorf("array.password is required when array.username is set")
	}
	if c.StorageGroup.MaxLUNsPerGroup < 0 {
		return fmt.Errorf("storage_group.max_luns_per_group must not be negative (got %d)", c.StorageGroup.MaxLUNsPerGroup)
	}

	validPolicies := map[string]bool{"lowest": true, "random": true, "": true}
	if !validPolicies[c.StorageGroup.HLUPolicy] {
		return fmt.Errorf("invalid storage_group.hlu_policy: %s (must be lowest or random)", c.StorageGroup.HLUPolicy)
	}

	if c.State.Dir != "" && !filepath.IsAbs(c.State.Dir) {
		return fmt.Errorf("state.dir must be an absolute path (got %q)", c.State.Dir)
	}

	return nil
}

// ValidateArray checks the settings needed to reach the array.
func (c *Config) ValidateArray() error {
	if c.Array.SPA == "" && c.Array.SPB == "" {
		return fmt.Errorf("array.sp_a or array.sp_b is required")
	}
	if c.Array.SecurityFile == "" && c.Array.Username == "" {
		return fmt.Errorf("either array.security_file or array.username/password is required")
	}
	return nil
}

// SecurityFilePath resolves the security file. Relative paths are joined
// with the config directory and cannot escape it.
func (c *Config) SecurityFilePath() (string, error) {
	p := c.Array.SecurityFile
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	return securejoin.SecureJoin(c.Dir(), p)
}

// ResolvePath returns the config file to use: explicit wins, then the
// VNXCTL_CONFIG environment variable, then the default location.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigEnv); env != "" {
		return env
	}
	return filepath.Join(DefaultConfigDir, DefaultConfigFile)
}

// Load reads and validates the configuration at path. A missing file
// yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes and validates TOML config data. name is used in errors.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", name, err)
	}

	return cfg, nil
}

// Paths holds the state locations derived from a Config
type Paths struct {
	StateDir         string
	StorageGroupsDir string
}

// Paths returns the configured state locations.
func (c *Config) Paths() *Paths {
	stateDir := c.State.Dir
	if stateDir == "" {
		stateDir = DefaultStateDir
	}
	return &Paths{
		StateDir:         stateDir,
		StorageGroupsDir: filepath.Join(stateDir, "storagegroups"),
	}
}
