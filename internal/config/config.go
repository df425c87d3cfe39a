// Package config loads shelfkey settings from defaults, a YAML file and
// SHELFKEY_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nainya/shelfkey/pkg/callnumber"
	"github.com/nainya/shelfkey/pkg/shelfindex"
)

// EnvPrefix is prepended to every environment override, e.g.
// SHELFKEY_SERVER_GRPC_PORT.
const EnvPrefix = "SHELFKEY"

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds shelfkey configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Keys   KeysConfig   `mapstructure:"keys" yaml:"keys"`
}

// ServerConfig configures the gRPC and observability listeners.
type ServerConfig struct {
	GRPCPort        int           `mapstructure:"grpc_port" yaml:"grpc_port"`
	MetricsPort     int           `mapstructure:"metrics_port" yaml:"metrics_port"`
	MaxMessageBytes int           `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	Reflection      bool          `mapstructure:"reflection" yaml:"reflection"`
	// JournalPath enables the record journal; empty keeps the index in memory only.
	JournalPath     string        `mapstructure:"journal_path" yaml:"journal_path"`
	JournalSync     bool          `mapstructure:"journal_sync" yaml:"journal_sync"`
}

// LogConfig configures the zerolog output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
	Caller bool   `mapstructure:"caller" yaml:"caller"`
}

// KeysConfig carries the tunables of the call number engine.
type KeysConfig struct {
	ReverseWidth    int         `mapstructure:"reverse_width" yaml:"reverse_width"`
	SudocYears      YearsConfig `mapstructure:"sudoc_years" yaml:"sudoc_years"`
	PrefixBlocklist []string    `mapstructure:"prefix_blocklist" yaml:"prefix_blocklist"`
	SeriesLocations []string    `mapstructure:"series_locations" yaml:"series_locations"`
	// MemoSize bounds the number of call numbers whose keys are cached.
	MemoSize int `mapstructure:"memo_size" yaml:"memo_size"`
}

// YearsConfig is the SUDOC year window. A zero Max means the current year.
type YearsConfig struct {
	ShortMin int `mapstructure:"short_min" yaml:"short_min"`
	ShortMax int `mapstructure:"short_max" yaml:"short_max"`
	Min      int `mapstructure:"min" yaml:"min"`
	Max      int `mapstructure:"max" yaml:"max"`
}

// Default returns configuration with the engine's default tunables.
func Default() *Config {
	opts := callnumber.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			GRPCPort:        50051,
			MetricsPort:     9090,
			MaxMessageBytes: 16 << 20,
			ShutdownTimeout: 10 * time.Second,
			Reflection:      true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Keys: KeysConfig{
			ReverseWidth: opts.ReverseWidth,
			SudocYears: YearsConfig{
				ShortMin: opts.SudocYears.ShortMin,
				ShortMax: opts.SudocYears.ShortMax,
				Min:      opts.SudocYears.Min,
				Max:      opts.SudocYears.Max,
			},
			PrefixBlocklist: opts.PrefixBlocklist,
			SeriesLocations: opts.SeriesLocations,
			MemoSize:        shelfindex.DefaultMemoSize,
		},
	}
}

// Load reads cfgFile, or config.yaml from the working directory or
// $HOME/.shelfkey when cfgFile is empty. A missing default file is not an
// error. Environment variables override both.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.shelfkey")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every leaf key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.grpc_port", d.Server.GRPCPort)
	v.SetDefault("server.metrics_port", d.Server.MetricsPort)
	v.SetDefault("server.max_message_bytes", d.Server.MaxMessageBytes)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.reflection", d.Server.Reflection)
	v.SetDefault("server.journal_path", d.Server.JournalPath)
	v.SetDefault("server.journal_sync", d.Server.JournalSync)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("log.caller", d.Log.Caller)

	v.SetDefault("keys.reverse_width", d.Keys.ReverseWidth)
	v.SetDefault("keys.sudoc_years.short_min", d.Keys.SudocYears.ShortMin)
	v.SetDefault("keys.sudoc_years.short_max", d.Keys.SudocYears.ShortMax)
	v.SetDefault("keys.sudoc_years.min", d.Keys.SudocYears.Min)
	v.SetDefault("keys.sudoc_years.max", d.Keys.SudocYears.Max)
	v.SetDefault("keys.prefix_blocklist", d.Keys.PrefixBlocklist)
	v.SetDefault("keys.series_locations", d.Keys.SeriesLocations)
	v.SetDefault("keys.memo_size", d.Keys.MemoSize)
}

// Validate checks ports, the log level, the year window and the memo size.
func (c *Config) Validate() error {
	for name, port := range map[string]int{
		"server.grpc_port":    c.Server.GRPCPort,
		"server.metrics_port": c.Server.MetricsPort,
	} {
		if port < 0 || port > 65535 {
			return fmt.Errorf("%w: %s %d out of range", ErrInvalid, name, port)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	if c.Keys.ReverseWidth < 0 {
		return fmt.Errorf("%w: keys.reverse_width must not be negative", ErrInvalid)
	}
	if c.Keys.MemoSize <= 0 {
		return fmt.Errorf("%w: keys.memo_size must be positive", ErrInvalid)
	}
	y := c.Keys.SudocYears
	if y.ShortMin > y.ShortMax || (y.Max != 0 && y.Min > y.Max) {
		return fmt.Errorf("%w: empty sudoc year window", ErrInvalid)
	}
	return nil
}

// Options converts the key settings for callnumber.New.
func (k KeysConfig) Options() callnumber.Options {
	return callnumber.Options{
		ReverseWidth: k.ReverseWidth,
		SudocYears: callnumber.YearWindow{
			ShortMin: k.SudocYears.ShortMin,
			ShortMax: k.SudocYears.ShortMax,
			Min:      k.SudocYears.Min,
			Max:      k.SudocYears.Max,
		},
		PrefixBlocklist: k.PrefixBlocklist,
		SeriesLocations: k.SeriesLocations,
	}
}
