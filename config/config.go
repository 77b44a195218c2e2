// Package config loads interpreter settings from config files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rami3l/loxvm/utils"
	"gopkg.in/yaml.v3"
)

// Config holds the interpreter settings.
type Config struct {
	// Print the operand stack and the next instruction before each step.
	TraceExecution bool `toml:"trace_execution" yaml:"trace_execution"`
	// Log the disassembly of every compiled chunk.
	PrintCode bool `toml:"print_code" yaml:"print_code"`
	// Logging level, as understood by logrus.ParseLevel.
	Verbosity string `toml:"verbosity" yaml:"verbosity"`
	// Colored output; nil means "only when writing to a terminal".
	Color *bool `toml:"color" yaml:"color"`
}

const DefaultVerbosity = "INFO"

func Default() Config { return Config{Verbosity: DefaultVerbosity} }

// Load reads the config file at path on top of the defaults. The format is
// picked by the file extension.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return cfg, nil
}

// Environment variables recognized by ApplyEnv.
const (
	EnvTraceExecution = "LOX_TRACE_EXECUTION"
	EnvPrintCode      = "LOX_PRINT_CODE"
	EnvVerbosity      = "LOX_VERBOSITY"
	EnvNoColor        = "NO_COLOR"
)

// ApplyEnv overrides cfg with the variables found by lookup, usually
// os.LookupEnv.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for name, dst := range map[string]*bool{
		EnvTraceExecution: &cfg.TraceExecution,
		EnvPrintCode:      &cfg.PrintCode,
	} {
		val, ok := lookup(name)
		if !ok || val == "" {
			continue
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		*dst = b
	}
	if val, ok := lookup(EnvVerbosity); ok && val != "" {
		cfg.Verbosity = val
	}
	// https://no-color.org: any non-empty value disables colors.
	if val, ok := lookup(EnvNoColor); ok && val != "" {
		cfg.Color = utils.Ref(false)
	}
	return nil
}
