package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultSQLitePath     = "tasklist.db"
	DefaultYAMLPath       = "tasklist.yaml"
	DefaultLogFileName    = "tasklist.log"
	EnvConfigPath         = "TASKLIST_CONFIG"
	appDirName            = "tasklist"
)

type Config struct {
	// DataPath left empty picks DefaultDataPath for the chosen storage.
	DataPath  string `toml:"data_path" validate:"required"`
	Storage   string `toml:"storage" validate:"oneof=sqlite yaml"`
	Color     string `toml:"color" validate:"oneof=auto always never"`
	Interface string `toml:"interface" validate:"oneof=auto tui plain"`
	LogPath   string `toml:"log_path"`
	LogLevel  string `toml:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// ResolveConfigPath prefers $TASKLIST_CONFIG, then the user config dir, then
// a file in the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		cfg.DataPath = DefaultDataPath(cfg.Storage)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath(cfg.Storage)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultDataPath names the data file when data_path is left empty, so the
// extension follows the storage backend.
func DefaultDataPath(storage string) string {
	if storage == "yaml" {
		return DefaultYAMLPath
	}
	return DefaultSQLitePath
}

// DefaultLogPath puts the log file next to the config file.
func DefaultLogPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), DefaultLogFileName)
}

// LogDestination is where the logger writes. An empty log_path means stderr,
// except under the terminal UI where stderr would garble the screen.
func (c Config) LogDestination(configPath string, tui bool) string {
	if c.LogPath == "" && tui {
		return DefaultLogPath(configPath)
	}
	return c.LogPath
}

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "oneof" {
				return fmt.Errorf("config: %s must be one of [%s], got %q", tomlKey(fe.Field()), fe.Param(), fe.Value())
			}
			return fmt.Errorf("config: %s is %s", tomlKey(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func tomlKey(field string) string {
	switch field {
	case "DataPath":
		return "data_path"
	case "LogLevel":
		return "log_level"
	case "LogPath":
		return "log_path"
	case "Storage":
		return "storage"
	case "Color":
		return "color"
	case "Interface":
		return "interface"
	default:
		return field
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Storage:   "sqlite",
		Color:     "auto",
		Interface: "auto",
		LogLevel:  "warn",
	}
}
