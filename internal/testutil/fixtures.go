package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/vnx-tools/vnxctl/internal/config"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadConfigFixture parses a TOML config fixture.
func LoadConfigFixture(name string) (*config.Config, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.Parse(data, name)
}

// ValidConfig returns the valid config fixture.
func ValidConfig() (*config.Config, error) {
	return LoadConfigFixture("valid_config.toml")
}

// InvalidConfig returns the raw invalid config fixture. It cannot be parsed
// into a Config because validation rejects it.
func InvalidConfig() ([]byte, error) {
	return LoadFixture("invalid_config.toml")
}

// StorageGroupListOutput returns sample `storagegroup -list` output.
func StorageGroupListOutput() string {
	data, err := LoadFixture("storagegroup_list.txt")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// WriteConfig writes a config file for a test array into dir and returns
// its path. stateDir and extra TOML lines are appended to a minimal
// array section.
func WriteConfig(t *testing.T, dir, stateDir string, extra string) string {
	t.Helper()

	data := "[array]\n" +
		"sp_a = \"10.0.0.1\"\n" +
		"security_file = \"/etc/vnxctl/secfile\"\n\n" +
		"[state]\n" +
		"dir = \"" + stateDir + "\"\n"
	if extra != "" {
		data += "\n" + extra + "\n"
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}
