package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Notes     NotesConfig     `yaml:"notes"`
	Programs  ProgramsConfig  `yaml:"programs"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TailscaleConfig serves the API on a tailnet instead of a local port.
type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// NotesConfig selects the training notes backend. Path is used by sqlite,
// Database by postgres.
type NotesConfig struct {
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`
	Database DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// ProgramsConfig points at a directory of extra program definitions.
type ProgramsConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultsConfig applies to plan requests that leave these fields out.
type DefaultsConfig struct {
	Preset           string  `yaml:"preset"`
	BarbellWeight    float64 `yaml:"barbell_weight"`
	TrainingMaxScale float64 `yaml:"training_max_scale"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// DSN returns the data source for the configured driver.
func (n NotesConfig) DSN() string {
	if n.Driver == "postgres" {
		return n.Database.DSN()
	}
	return n.Path
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Server: ServerConfig{Host: "127.0.0.1", Port: 8080}}
	applyDefaults(cfg)
	return cfg
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix BARBELL_ and underscore-separated paths:
//
//	BARBELL_SERVER_HOST, BARBELL_SERVER_PORT,
//	BARBELL_TAILSCALE_ENABLED, BARBELL_TAILSCALE_HOSTNAME, BARBELL_TAILSCALE_STATE_DIR,
//	BARBELL_NOTES_DRIVER, BARBELL_NOTES_PATH,
//	BARBELL_DB_HOST, BARBELL_DB_PORT, BARBELL_DB_NAME,
//	BARBELL_DB_USER, BARBELL_DB_PASSWORD, BARBELL_DB_SSLMODE,
//	BARBELL_PROGRAMS_DIR, BARBELL_DEFAULT_PRESET
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "barbell"
	}
	if cfg.Notes.Driver == "" {
		cfg.Notes.Driver = "sqlite"
	}
	if cfg.Notes.Path == "" {
		cfg.Notes.Path = "barbell-notes.db"
	}
	if cfg.Defaults.Preset == "" {
		cfg.Defaults.Preset = "wendler531"
	}
	if cfg.Defaults.BarbellWeight == 0 {
		cfg.Defaults.BarbellWeight = 45
	}
	if cfg.Defaults.TrainingMaxScale == 0 {
		cfg.Defaults.TrainingMaxScale = 0.9
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BARBELL_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("BARBELL_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BARBELL_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("BARBELL_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("BARBELL_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("BARBELL_NOTES_DRIVER"); v != "" {
		cfg.Notes.Driver = v
	}
	if v := os.Getenv("BARBELL_NOTES_PATH"); v != "" {
		cfg.Notes.Path = v
	}
	db := &cfg.Notes.Database
	if v := os.Getenv("BARBELL_DB_HOST"); v != "" {
		db.Host = v
	}
	if v := os.Getenv("BARBELL_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			db.Port = port
		}
	}
	if v := os.Getenv("BARBELL_DB_NAME"); v != "" {
		db.Name = v
	}
	if v := os.Getenv("BARBELL_DB_USER"); v != "" {
		db.User = v
	}
	if v := os.Getenv("BARBELL_DB_PASSWORD"); v != "" {
		db.Password = v
	}
	if v := os.Getenv("BARBELL_DB_SSLMODE"); v != "" {
		db.SSLMode = v
	}
	if v := os.Getenv("BARBELL_PROGRAMS_DIR"); v != "" {
		cfg.Programs.Dir = v
	}
	if v := os.Getenv("BARBELL_DEFAULT_PRESET"); v != "" {
		cfg.Defaults.Preset = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	switch c.Notes.Driver {
	case "sqlite":
	case "postgres":
		db := c.Notes.Database
		if db.Host == "" {
			return fmt.Errorf("notes.database.host is required")
		}
		if db.Port == 0 {
			return fmt.Errorf("notes.database.port is required")
		}
		if db.Name == "" {
			return fmt.Errorf("notes.database.name is required")
		}
		if db.User == "" {
			return fmt.Errorf("notes.database.user is required")
		}
	default:
		return fmt.Errorf("notes.driver must be sqlite or postgres, got %q", c.Notes.Driver)
	}
	if c.Defaults.TrainingMaxScale <= 0 || c.Defaults.TrainingMaxScale > 1 {
		return fmt.Errorf("defaults.training_max_scale must be in (0, 1]")
	}
	if c.Defaults.BarbellWeight < 0 {
		return fmt.Errorf("defaults.barbell_weight must not be negative")
	}
	return nil
}
