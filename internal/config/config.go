package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "pecan.toml"

// Language server log levels accepted by lsp.verbosity.
const (
	MinVerbosity     = -1
	MaxVerbosity     = 2
	defaultVerbosity = 1
)

// Config holds the settings shared by the CLI and the language server
type Config struct {
	Output OutputConfig `toml:"output"`
	LSP    LSPConfig    `toml:"lsp"`
}

// OutputConfig controls terminal output
type OutputConfig struct {
	Color      string `toml:"color"` // auto, always or never
	ShowTiming *bool  `toml:"show_timing"`
}

// LSPConfig controls the language server
type LSPConfig struct {
	Verbosity int    `toml:"verbosity"`
	LogFile   string `toml:"log_file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{LSP: LSPConfig{Verbosity: defaultVerbosity}}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a TOML file. An empty path means DefaultFile;
// a missing DefaultFile yields the defaults, while a missing explicit path is
// an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return Default(), nil
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// 0 is a valid level, so only an absent key takes the default.
	if !md.IsDefined("lsp", "verbosity") {
		cfg.LSP.Verbosity = defaultVerbosity
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.LSP.LogFile = os.ExpandEnv(cfg.LSP.LogFile)
	if cfg.LSP.LogFile != "" && !filepath.IsAbs(cfg.LSP.LogFile) {
		cfg.LSP.LogFile = filepath.Join(filepath.Dir(path), cfg.LSP.LogFile)
	}

	return &cfg, nil
}

// LoadFromEnv loads the file named by PECAN_CONFIG, falling back to Load("").
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv("PECAN_CONFIG"))
}

func (c *Config) applyDefaults() {
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.ShowTiming == nil {
		show := true
		c.Output.ShowTiming = &show
	}
}

func (c *Config) validate() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	if c.LSP.Verbosity < MinVerbosity || c.LSP.Verbosity > MaxVerbosity {
		return fmt.Errorf("lsp.verbosity must be between %d and %d, got %d",
			MinVerbosity, MaxVerbosity, c.LSP.Verbosity)
	}
	return nil
}

// ColorDisabled reports whether colored output should be turned off. With
// "auto" the terminal check is left to the color library.
func (c *Config) ColorDisabled() (disabled, decided bool) {
	switch c.Output.Color {
	case "always":
		return false, true
	case "never":
		return true, true
	}
	return false, false
}

// Timing reports whether commands print how long they took.
func (c *Config) Timing() bool {
	return c.Output.ShowTiming == nil || *c.Output.ShowTiming
}
