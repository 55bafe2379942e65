// Package config handles configuration loading for graficos.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server Server `mapstructure:"server" yaml:"server"`
	Charts Charts `mapstructure:"charts" yaml:"charts"`
	Demo   Demo   `mapstructure:"demo"   yaml:"demo"`
	Data   Data   `mapstructure:"data"   yaml:"data"`
}

// Server holds HTTP server settings.
type Server struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns the host:port listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Charts holds the default chart styling applied when a request does not
// override it.
type Charts struct {
	NPoints    int    `mapstructure:"n_points"    yaml:"n_points"`
	TickAngle  int    `mapstructure:"tick_angle"  yaml:"tick_angle"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	LineColor  string `mapstructure:"line_color"  yaml:"line_color"`
	Y1Color    string `mapstructure:"y1_color"    yaml:"y1_color"`
	Y2Color    string `mapstructure:"y2_color"    yaml:"y2_color"`
	BarColor   string `mapstructure:"bar_color"   yaml:"bar_color"`
}

// Demo holds demo-data generation settings.
type Demo struct {
	Seed            int64 `mapstructure:"seed"              yaml:"seed"`
	LiveIntervalSec int   `mapstructure:"live_interval_sec" yaml:"live_interval_sec"`
}

// Data points the dashboard at an optional CSV or XLSX table. When Path is
// empty the demo generator supplies the data.
type Data struct {
	Path  string `mapstructure:"path"  yaml:"path"`
	Sheet string `mapstructure:"sheet" yaml:"sheet"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.graficos/config.yaml (home directory)
//  3. /etc/graficos/config.yaml (system)
//
// Environment variables override config file values.
// Format: GRAFICOS_<SECTION>_<KEY>, e.g., GRAFICOS_SERVER_PORT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".graficos"))
	v.AddConfigPath("/etc/graficos")

	v.SetEnvPrefix("GRAFICOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("GRAFICOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	// Chart styling defaults (mirror chart.DefaultStyle)
	v.SetDefault("charts.n_points", 12)
	v.SetDefault("charts.tick_angle", 45)
	v.SetDefault("charts.date_format", "January 06")
	v.SetDefault("charts.line_color", "#FF6200")
	v.SetDefault("charts.y1_color", "#0131FF")
	v.SetDefault("charts.y2_color", "#C7D2FF")
	v.SetDefault("charts.bar_color", "#FF6200")

	// Demo defaults
	v.SetDefault("demo.seed", 42)
	v.SetDefault("demo.live_interval_sec", 5)

	// Data defaults: empty path means demo data
	v.SetDefault("data.path", "")
	v.SetDefault("data.sheet", "")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
