// Package config loads gantry.toml configuration. Settings resolve in
// three layers: built-in defaults, the global file under the user config
// directory, then a project-local gantry.toml in the working directory.
// Later layers override earlier ones field by field.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the gantry.toml configuration file.
type Config struct {
	Server  ConfigServer  `toml:"server"`
	Storage ConfigStorage `toml:"storage"`
	View    ConfigView    `toml:"view"`
}

// ConfigServer contains serve-related configuration.
type ConfigServer struct {
	// Listen is the address the HTTP server binds ("host:port").
	Listen string `toml:"listen"`

	// RedisAddr points at the Redis instance backing game rooms.
	// Empty means rooms are kept in process memory.
	RedisAddr string `toml:"redis-addr"`

	// MongoURI points at the MongoDB instance backing drafts and
	// versions in served mode. Empty means the file store is used.
	MongoURI string `toml:"mongo-uri"`

	// MongoDatabase names the database. Defaults to "gantry".
	MongoDatabase string `toml:"mongo-database"`
}

// ConfigStorage contains draft storage configuration.
type ConfigStorage struct {
	// DataDir is where the file store keeps the draft. Defaults to
	// ~/.local/share/gantry (or the platform equivalent).
	DataDir string `toml:"data-dir"`
}

// ConfigView contains timeline display configuration.
type ConfigView struct {
	// Zoom is the default zoom preset (z400, z200, z100, z75, z50).
	Zoom string `toml:"zoom"`

	// Compact trims row heights.
	Compact bool `toml:"compact"`

	// AutoRows orders tasks by start date instead of manual row order.
	AutoRows bool `toml:"auto-rows"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ConfigServer{
			Listen:        "127.0.0.1:8787",
			MongoDatabase: "gantry",
		},
		View: ConfigView{
			Zoom: "z100",
		},
	}
}

// Load resolves the layered configuration: defaults, then the global
// file, then a gantry.toml in dir (usually the working directory).
func Load(dir string) (*Config, error) {
	cfg := Default()

	if global, err := globalPath(); err == nil {
		if err := mergeFile(cfg, global); err != nil {
			return nil, err
		}
	}
	if err := mergeFile(cfg, filepath.Join(dir, "gantry.toml")); err != nil {
		return nil, err
	}

	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// mergeFile overlays a config file onto cfg. A missing file is fine.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var layer Config
	if err := toml.Unmarshal(data, &layer); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	overlay(cfg, &layer)
	return nil
}

// overlay copies set fields from layer onto cfg. Zero values in layer
// leave cfg untouched, except booleans, which a layer can only switch on.
func overlay(cfg, layer *Config) {
	if layer.Server.Listen != "" {
		cfg.Server.Listen = layer.Server.Listen
	}
	if layer.Server.RedisAddr != "" {
		cfg.Server.RedisAddr = layer.Server.RedisAddr
	}
	if layer.Server.MongoURI != "" {
		cfg.Server.MongoURI = layer.Server.MongoURI
	}
	if layer.Server.MongoDatabase != "" {
		cfg.Server.MongoDatabase = layer.Server.MongoDatabase
	}
	if layer.Storage.DataDir != "" {
		cfg.Storage.DataDir = layer.Storage.DataDir
	}
	if layer.View.Zoom != "" {
		cfg.View.Zoom = layer.View.Zoom
	}
	if layer.View.Compact {
		cfg.View.Compact = true
	}
	if layer.View.AutoRows {
		cfg.View.AutoRows = true
	}
}

// globalPath returns the path of the user-level config file.
func globalPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "gantry", "gantry.toml"), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "gantry")
}
