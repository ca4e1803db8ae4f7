package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultTickInterval     = 600 * time.Millisecond
	DefaultStackCapacity    = 8
	DefaultCircularCapacity = 5
	DefaultDepthLimit       = 2
	EnvPrefix               = "STEPVIZ"
)

// Config holds user settings read from file, environment and flags
type Config struct {
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	StackCapacity    int           `mapstructure:"stack_capacity"`
	CircularCapacity int           `mapstructure:"circular_capacity"`
	DepthLimit       int           `mapstructure:"depth_limit"`
	PresetsDir       string        `mapstructure:"presets_dir"`
	DataDir          string        `mapstructure:"data_dir"`
	LogDir           string        `mapstructure:"log_dir"`
	Debug            bool          `mapstructure:"debug"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		TickInterval:     DefaultTickInterval,
		StackCapacity:    DefaultStackCapacity,
		CircularCapacity: DefaultCircularCapacity,
		DepthLimit:       DefaultDepthLimit,
		PresetsDir:       filepath.Join(configHome(), "stepviz", "presets"),
		DataDir:          filepath.Join(dataHome(), "stepviz"),
		LogDir:           filepath.Join(dataHome(), "stepviz", "log"),
	}
}

// Load reads path (or ~/.config/stepviz/config.yaml when empty) on top of
// the defaults, then applies STEPVIZ_* environment variables. A missing
// default file is not an error.
func Load(path string) (Config, error) {
	return LoadFlags(path, nil)
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"tick":        "tick_interval",
	"depth-limit": "depth_limit",
	"presets-dir": "presets_dir",
	"data-dir":    "data_dir",
	"log-dir":     "log_dir",
	"debug":       "debug",
}

// LoadFlags is Load with any of the known flags present in flags taking
// precedence over file and environment values when set
func LoadFlags(path string, flags *pflag.FlagSet) (Config, error) {
	v := New()
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(configHome(), "stepviz", "config.yaml")
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return Decode(v)
}

// New returns a viper instance with defaults and environment binding set
func New() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("tick_interval", d.TickInterval)
	v.SetDefault("stack_capacity", d.StackCapacity)
	v.SetDefault("circular_capacity", d.CircularCapacity)
	v.SetDefault("depth_limit", d.DepthLimit)
	v.SetDefault("presets_dir", d.PresetsDir)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_dir", d.LogDir)
	v.SetDefault("debug", d.Debug)
	return v
}

// Decode unmarshals v and checks the ranges the simulators accept
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.PresetsDir = expandHome(cfg.PresetsDir)
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.LogDir = expandHome(cfg.LogDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no simulator can run with
func (c Config) Validate() error {
	switch {
	case c.TickInterval < 50*time.Millisecond:
		return fmt.Errorf("tick_interval must be at least 50ms, got %s", c.TickInterval)
	case c.StackCapacity < 1 || c.StackCapacity > 32:
		return fmt.Errorf("stack_capacity must be between 1 and 32, got %d", c.StackCapacity)
	case c.CircularCapacity < 1 || c.CircularCapacity > 12:
		return fmt.Errorf("circular_capacity must be between 1 and 12, got %d", c.CircularCapacity)
	case c.DepthLimit < 0:
		return fmt.Errorf("depth_limit cannot be negative, got %d", c.DepthLimit)
	}
	return nil
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
