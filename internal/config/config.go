package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log_level" env:"ETRA_LOG_LEVEL" env-default:"INFO"`
	HTTP     HTTP     `yaml:"http"`
	RPC      RPC      `yaml:"rpc"`
	Database Database `yaml:"database"`
}

type HTTP struct {
	Address string        `yaml:"address" env:"ETRA_HTTP_ADDRESS" env-default:":8000"`
	Timeout time.Duration `yaml:"timeout" env:"ETRA_HTTP_TIMEOUT" env-default:"5s"`
}

type RPC struct {
	Enabled bool   `yaml:"enabled" env:"ETRA_RPC_ENABLED"`
	Socket  string `yaml:"socket" env:"ETRA_RPC_SOCKET" env-default:"/tmp/etra.sock"`
}

type Database struct {
	Driver          string `yaml:"driver" env:"ETRA_DB_DRIVER" env-default:"sqlite"`
	DSN             string `yaml:"dsn" env:"ETRA_DB_DSN" env-default:"etra.db"`
	InitDepartments bool   `yaml:"init_departments" env:"ETRA_DB_INIT_DEPARTMENTS"`
}

// defaults holds the settings whose zero value is meaningful. env-default
// cannot express them: cleanenv treats a YAML false as unset.
func defaults() Config {
	return Config{
		RPC:      RPC{Enabled: true},
		Database: Database{InitDepartments: true},
	}
}

// Load reads the YAML file at configPath with env overrides. A missing file
// or an empty path falls back to env and defaults only.
func Load(configPath string) (Config, error) {
	cfg := defaults()

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			cfg = defaults()
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return Config{}, fmt.Errorf("read env: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %q: %w", configPath, err)
	}

	return cfg, nil
}
