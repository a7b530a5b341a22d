package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file Load looks for.
const FileName = "hotmech.cfg.json"

// SideConfig is the loadout requested for one seat. Empty values are picked at random.
type SideConfig struct {
	Mech     string   `json:"mech" mapstructure:"mech"`
	Pilot    string   `json:"pilot" mapstructure:"pilot"`
	Upgrades []string `json:"upgrades" mapstructure:"upgrades"`
}

// SimulationConfig holds batch settings
type SimulationConfig struct {
	Matches     int        `json:"matches" mapstructure:"matches"`
	Seed        uint64     `json:"seed" mapstructure:"seed"`
	Workers     int        `json:"workers" mapstructure:"workers"`
	MaxTurns    int        `json:"maxTurns" mapstructure:"maxTurns"`
	TurnCardCap int        `json:"turnCardCap" mapstructure:"turnCardCap"`
	Tag         string     `json:"tag" mapstructure:"tag"`
	CatalogPath string     `json:"catalogPath" mapstructure:"catalogPath"`
	White       SideConfig `json:"white" mapstructure:"white"`
	Black       SideConfig `json:"black" mapstructure:"black"`
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path     string `json:"path" mapstructure:"path"`         // empty for a shared in-memory DB
	DumpPath string `json:"dumpPath" mapstructure:"dumpPath"` // VACUUM INTO target at batch end
}

// StorageConfig selects and configures the result store
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// InfluxConfig holds InfluxDB settings
type InfluxConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Protocol   string `json:"protocol" mapstructure:"protocol"`
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Token      string `json:"token" mapstructure:"token"`
	Org        string `json:"org" mapstructure:"org"`
	Bucket     string `json:"bucket" mapstructure:"bucket"`
	BackupPath string `json:"backupPath" mapstructure:"backupPath"`
}

// URL is the server address built from protocol, host and port.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

type LoggingConfig struct {
	Level string `json:"logLevel" mapstructure:"logLevel"`
	Dir   string `json:"logsDir" mapstructure:"logsDir"`
}

type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// OTelConfig holds OpenTelemetry metric export settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	ExportInterval time.Duration `json:"exportInterval" mapstructure:"exportInterval"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "INFO")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("sim.matches", 1000)
	viper.SetDefault("sim.seed", 1)
	viper.SetDefault("sim.workers", 4)
	viper.SetDefault("sim.maxTurns", 100)
	viper.SetDefault("sim.turnCardCap", 100)
	viper.SetDefault("sim.tag", "batch")
	viper.SetDefault("sim.white.mech", "")
	viper.SetDefault("sim.white.pilot", "")
	viper.SetDefault("sim.white.upgrades", []string{})
	viper.SetDefault("sim.black.mech", "")
	viper.SetDefault("sim.black.pilot", "")
	viper.SetDefault("sim.black.upgrades", []string{})

	viper.SetDefault("catalog.path", "")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./results")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "")
	viper.SetDefault("storage.sqlite.dumpPath", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "hotmech")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "hotmech")
	viper.SetDefault("influx.bucket", "matches")
	viper.SetDefault("influx.backupPath", "./logs/influx_backup.lp.gz")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "hotmech")
	viper.SetDefault("otel.exportInterval", "10s")
}

// Load sets default values and reads hotmech.cfg.json from configDir.
// A missing file leaves the defaults in place; a malformed one is an error.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetUint64(key string) uint64 {
	return viper.GetUint64(key)
}

func getSide(prefix string) SideConfig {
	return SideConfig{
		Mech:     viper.GetString(prefix + ".mech"),
		Pilot:    viper.GetString(prefix + ".pilot"),
		Upgrades: viper.GetStringSlice(prefix + ".upgrades"),
	}
}

// GetSimulationConfig returns the batch settings.
func GetSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Matches:     viper.GetInt("sim.matches"),
		Seed:        viper.GetUint64("sim.seed"),
		Workers:     viper.GetInt("sim.workers"),
		MaxTurns:    viper.GetInt("sim.maxTurns"),
		TurnCardCap: viper.GetInt("sim.turnCardCap"),
		Tag:         viper.GetString("sim.tag"),
		CatalogPath: viper.GetString("catalog.path"),
		White:       getSide("sim.white"),
		Black:       getSide("sim.black"),
	}
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path:     viper.GetString("storage.sqlite.path"),
			DumpPath: viper.GetString("storage.sqlite.dumpPath"),
		},
	}
}

func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Protocol:   viper.GetString("influx.protocol"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

func GetLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: viper.GetString("logLevel"),
		Dir:   viper.GetString("logsDir"),
	}
}

func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		ExportInterval: viper.GetDuration("otel.exportInterval"),
	}
}
