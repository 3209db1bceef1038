// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads.
const EnvironmentVariable = "RPMLIB_CONFIG"

// Backend selects the package database reader.
type Backend string

const (
	// BackendAuto uses librpm when compiled in and the pure-Go reader
	// otherwise.
	BackendAuto Backend = "auto"
	// BackendNative requires the cgo librpm binding.
	BackendNative Backend = "native"
	// BackendRPMDB reads database files directly, without librpm.
	BackendRPMDB Backend = "rpmdb"
)

// Config is the master configuration for rpmlib.
type Config struct {
	// Backend selects the database reader: auto, native, or rpmdb.
	Backend Backend `yaml:"backend"`

	// Root is the installation root whose database is read.
	Root string `yaml:"root"`

	// RPM configures librpm and database location.
	RPM RPMConfig `yaml:"rpm"`

	// Snapshot configures inventory snapshots.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Output configures CLI output.
	Output OutputConfig `yaml:"output"`
}

// RPMConfig configures librpm and database location.
type RPMConfig struct {
	// ConfigFile is the rpmrc list passed to rpmReadConfigFiles.
	// Empty reads librpm's default locations. Native backend only.
	ConfigFile string `yaml:"config_file"`

	// DBPath overrides the database location. For the native backend
	// it sets the _dbpath macro (a directory). For the rpmdb backend it
	// names the database file directly, bypassing discovery under Root.
	DBPath string `yaml:"db_path"`

	// Macros are defined in librpm's global context before the
	// database is opened. Native backend only.
	Macros map[string]string `yaml:"macros"`

	// IncludeDir is where `rpmlib headers --check` looks for the
	// librpm development headers.
	// Default: /usr/include
	IncludeDir string `yaml:"include_dir"`
}

// SnapshotConfig configures inventory snapshots.
type SnapshotConfig struct {
	// Directory is where snapshots named without a directory are
	// written and read.
	// Default: ${HOME}/.local/state/rpmlib/snapshots
	Directory string `yaml:"directory"`

	// Compression is none, lz4, or zstd.
	// Default: zstd
	Compression string `yaml:"compression"`
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	// Format is text, json, or yaml.
	// Default: text
	Format string `yaml:"format"`

	// Color is auto (only on a terminal), always, or never.
	// Default: auto
	Color string `yaml:"color"`
}

var (
	backendValues     = []Backend{BackendAuto, BackendNative, BackendRPMDB}
	compressionValues = []string{"none", "lz4", "zstd"}
	formatValues      = []string{"text", "json", "yaml"}
	colorValues       = []string{"auto", "always", "never"}
)

// Default returns the default configuration: read the host database at
// "/" with whichever backend is available.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Backend: BackendAuto,
		Root:    "/",
		RPM: RPMConfig{
			IncludeDir: "/usr/include",
		},
		Snapshot: SnapshotConfig{
			Directory:   filepath.Join(homeDir, ".local", "state", "rpmlib", "snapshots"),
			Compression: "zstd",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
	}
}

// Load loads configuration from the RPMLIB_CONFIG environment variable.
// It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your rpmlib.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path over the
// defaults, then expands variables in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a YAML file into the current config. Unknown keys
// are rejected so a misspelled option is not silently ignored.
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Root = expandVars(c.Root, vars)
	vars["RPMLIB_ROOT"] = strings.TrimSuffix(c.Root, "/") // Update for dependent paths.

	c.RPM.ConfigFile = expandVars(c.RPM.ConfigFile, vars)
	c.RPM.DBPath = expandVars(c.RPM.DBPath, vars)
	c.RPM.IncludeDir = expandVars(c.RPM.IncludeDir, vars)
	c.Snapshot.Directory = expandVars(c.Snapshot.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Provided vars
// win over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(backendValues, c.Backend) {
		errs = append(errs, fmt.Errorf("backend must be one of: %v", backendValues))
	}

	if c.Root == "" {
		errs = append(errs, fmt.Errorf("root is required"))
	} else if !filepath.IsAbs(c.Root) {
		errs = append(errs, fmt.Errorf("root must be an absolute path, got %q", c.Root))
	}

	for name := range c.RPM.Macros {
		if name == "" || strings.ContainsAny(name, " \t\n\x00") {
			errs = append(errs, fmt.Errorf("rpm.macros: invalid macro name %q", name))
		}
	}
	if c.Backend == BackendRPMDB && (c.RPM.ConfigFile != "" || len(c.RPM.Macros) > 0) {
		errs = append(errs, fmt.Errorf("rpm.config_file and rpm.macros require the native backend"))
	}

	if c.Snapshot.Directory == "" {
		errs = append(errs, fmt.Errorf("snapshot.directory is required"))
	}
	if !slices.Contains(compressionValues, c.Snapshot.Compression) {
		errs = append(errs, fmt.Errorf("snapshot.compression must be one of: %v", compressionValues))
	}

	if !slices.Contains(formatValues, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", formatValues))
	}
	if !slices.Contains(colorValues, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// MacroDefinitions returns the configured macros as "name body"
// definitions, sorted by name so they are applied in a stable order.
func (c *Config) MacroDefinitions() []string {
	names := make([]string, 0, len(c.RPM.Macros))
	for name := range c.RPM.Macros {
		names = append(names, name)
	}
	slices.Sort(names)

	definitions := make([]string, len(names))
	for index, name := range names {
		definitions[index] = name + " " + c.RPM.Macros[name]
	}
	return definitions
}

// SnapshotPath resolves a snapshot name: paths containing a separator
// are used as given, bare names are placed in Snapshot.Directory.
func (c *Config) SnapshotPath(name string) string {
	if strings.ContainsRune(name, filepath.Separator) || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Snapshot.Directory, name)
}

// EnsureSnapshotDirectory creates Snapshot.Directory if it does not
// exist.
func (c *Config) EnsureSnapshotDirectory() error {
	if err := os.MkdirAll(c.Snapshot.Directory, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Snapshot.Directory, err)
	}
	return nil
}
