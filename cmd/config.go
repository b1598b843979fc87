package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
)

const (
	transportMemory = "memory"
	transportHTTP   = "http"
)

// Config is read from a TOML file. Keys missing from the file keep their
// default value.
type Config struct {
	Transport string        `toml:"transport"`
	Rows      int           `toml:"rows"`
	Cols      int           `toml:"cols"`
	Timeout   time.Duration `toml:"timeout"`
	LogLevel  string        `toml:"log_level"`
	Root      int           `toml:"root"`
	Host      string        `toml:"host"`
	TLS       bool          `toml:"tls"`
}

func defaultConfig() Config {
	return Config{
		Transport: transportMemory,
		Rows:      3,
		Cols:      3,
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		Root:      0,
		Host:      "127.0.0.1",
	}
}

// loadConfig reads path over the defaults. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Transport != transportMemory && c.Transport != transportHTTP {
		errs = append(errs, fmt.Errorf("transport must be %q or %q, got %q", transportMemory, transportHTTP, c.Transport))
	}
	if c.Rows < 1 || c.Cols < 1 {
		errs = append(errs, fmt.Errorf("torus must be at least 1x1, got %dx%d", c.Rows, c.Cols))
	} else if c.Root < 0 || c.Root >= c.Rows*c.Cols {
		errs = append(errs, fmt.Errorf("root %d is not a rank of %d", c.Root, c.Rows*c.Cols))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("negative timeout %s", c.Timeout))
	}
	if _, err := c.logLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) logLevel() (pterm.LogLevel, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return pterm.LogLevelDebug, nil
	case "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	}
	return pterm.LogLevelDisabled, fmt.Errorf("unknown log level %q", c.LogLevel)
}
