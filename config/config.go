// Package config loads the dashboard YAML configuration.
package config

import (
	"os"
	"time"

	"github.com/LilVoxy/sensor_dashboard/dataset"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure of the dashboard YAML file.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Database  DatabaseConfig  `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// DataConfig describes the CSV source.
type DataConfig struct {
	Path string `yaml:"path"`
	// Layouts tried in order when parsing recording_date.
	DateLayouts []string `yaml:"date_layouts"`
}

// DatabaseConfig switches the source to a MySQL table when DSN is set.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	Table           string        `yaml:"table"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	Title string `yaml:"title"`
}

// LoggingConfig mirrors the logging flags.
type LoggingConfig struct {
	Debug  bool   `yaml:"debug"`
	Stdout bool   `yaml:"stdout"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         "127.0.0.1:8050",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Data: DataConfig{
			Path:        "./data/task_4.csv",
			DateLayouts: append([]string(nil), dataset.DefaultDateLayouts...),
		},
		Database: DatabaseConfig{
			Table:           "sensor_readings",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Dashboard: DashboardConfig{
			Title: "Sensor Data Dashboard",
		},
	}
}

// Load reads a YAML file on top of Default. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	if len(cfg.Data.DateLayouts) == 0 {
		cfg.Data.DateLayouts = append([]string(nil), dataset.DefaultDateLayouts...)
	}
	return cfg, nil
}

// UseDatabase reports whether readings come from MySQL instead of a CSV file.
func (c Config) UseDatabase() bool {
	return c.Database.DSN != ""
}
