// ABOUTME: Healthhub configuration management with environment overrides.
// ABOUTME: Handles settings, defaults, and the storage factory function.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/logging"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment variables that override config keys,
// e.g. HEALTHHUB_DATA_DIR.
const EnvPrefix = "HEALTHHUB"

// Config stores healthhub configuration.
type Config struct {
	// DataDir is the directory holding healthhub.db.
	// Supports ~ expansion. Defaults to ~/.local/share/healthhub.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`

	// LogFile, when set, receives rotated JSON logs.
	LogFile string `json:"log_file,omitempty" mapstructure:"log_file"`

	// CupML is the size of one cup of water. Defaults to 200.
	CupML int `json:"cup_ml,omitempty" mapstructure:"cup_ml"`

	// WaterGoalML is the daily water target. Defaults to 2000.
	WaterGoalML int `json:"water_goal_ml,omitempty" mapstructure:"water_goal_ml"`

	// DefaultWeightKg is assumed for calorie estimates before any check-in.
	DefaultWeightKg float64 `json:"default_weight_kg,omitempty" mapstructure:"default_weight_kg"`

	// METTable points to a YAML list of {name, met} replacing the built-in table.
	METTable string `json:"met_table,omitempty" mapstructure:"met_table"`
}

// zeroValues registers every config key so environment overrides apply
// even when the file omits them. Defaults live in the getters.
var zeroValues = map[string]any{
	"data_dir":          "",
	"log_level":         "",
	"log_file":          "",
	"cup_ml":            0,
	"water_goal_ml":     0,
	"default_weight_kg": 0.0,
	"met_table":         "",
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the database file inside the data directory.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), "healthhub.db")
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return logging.DefaultLevel
	}
	return c.LogLevel
}

// GetCupML returns the cup size in millilitres.
func (c *Config) GetCupML() int {
	if c.CupML <= 0 {
		return fitness.DefaultCupML
	}
	return c.CupML
}

// GetWaterGoalML returns the daily water goal in millilitres.
func (c *Config) GetWaterGoalML() int {
	if c.WaterGoalML <= 0 {
		return fitness.DefaultWaterGoalML
	}
	return c.WaterGoalML
}

// GetDefaultWeightKg returns the weight assumed before any check-in.
func (c *Config) GetDefaultWeightKg() float64 {
	if c.DefaultWeightKg <= 0 {
		return fitness.DefaultWeightKg
	}
	return c.DefaultWeightKg
}

// LoadMETs returns the configured MET table, or the built-in one when
// none is configured.
func (c *Config) LoadMETs() (fitness.METTable, error) {
	if c.METTable == "" {
		return fitness.DefaultMETs, nil
	}
	return fitness.LoadMETTable(ExpandPath(c.METTable))
}

// NewLogger builds the logger described by the config.
func (c *Config) NewLogger() (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level: c.GetLogLevel(),
		File:  ExpandPath(c.LogFile),
	})
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store in the configured data directory.
func (c *Config) OpenStorage(log *zap.Logger) (storage.Repository, error) {
	mets, err := c.LoadMETs()
	if err != nil {
		return nil, err
	}

	return storage.Open(c.GetDBPath(),
		storage.WithLogger(log),
		storage.WithMETTable(mets),
		storage.WithDefaultWeight(c.GetDefaultWeightKg()),
	)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthhub", "config.json")
}

// Load reads config from disk and applies HEALTHHUB_* environment
// overrides. A missing file yields an empty config.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for k, zero := range zeroValues {
		v.SetDefault(k, zero)
	}

	path := GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
