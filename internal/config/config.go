// Package config holds the command-line settings, unmarshalled from viper.
// Sources, highest first: command flags, BPRNA_* environment variables, an
// optional YAML config file, defaults.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"bprna/internal/logging"
	"bprna/internal/output"
)

// EnvPrefix namespaces environment overrides: BPRNA_LENIENT, BPRNA_LOG_LEVEL, ...
const EnvPrefix = "BPRNA"

// Config is the root-level settings struct.
type Config struct {
	// YAML parameter tables; empty uses the embedded defaults
	Params string `mapstructure:"params"`

	// substitute zero for missing table entries instead of failing
	Lenient bool `mapstructure:"lenient"`

	// add the duplex initiation term to stem energies
	Intermolecular bool `mapstructure:"intermolecular"`

	Output  string `mapstructure:"output"`
	Threads int    `mapstructure:"threads"` // 0 = all CPUs
	Sort    bool   `mapstructure:"sort"`
	Header  bool   `mapstructure:"header"`

	LogLevel string `mapstructure:"log-level"`
	Quiet    bool   `mapstructure:"quiet"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("params", "")
	v.SetDefault("lenient", false)
	v.SetDefault("intermolecular", false)
	v.SetDefault("output", output.FormatText)
	v.SetDefault("threads", 0)
	v.SetDefault("sort", false)
	v.SetDefault("header", true)
	v.SetDefault("log-level", "info")
	v.SetDefault("quiet", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (if non-empty) into v and decodes the merged settings.
func Load(v *viper.Viper, file string) (Config, error) {
	var c Config
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("config %s: %w", file, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("config: unable to decode: %w", err)
	}
	return c, c.Validate()
}

// Validate rejects settings no command could honor.
func (c Config) Validate() error {
	if !slices.Contains(output.Formats, c.Output) {
		return fmt.Errorf("config: output %q: want one of %s", c.Output, strings.Join(output.Formats, ", "))
	}
	if c.Threads < 0 {
		return fmt.Errorf("config: threads must be >= 0, got %d", c.Threads)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
