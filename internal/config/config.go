package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath задает путь к конфигу, если флаг --config не указан.
const EnvPath = "WATCHLINE_CONFIG"

// Config описывает значения по умолчанию для флагов и логирования.
type Config struct {
	Defaults struct {
		Interval        float64 `yaml:"interval"`
		Interpreter     string  `yaml:"interpreter"`
		Exec            bool    `yaml:"exec"`
		Precise         bool    `yaml:"precise"`
		ContinueOnError bool    `yaml:"continue_on_error"`
	} `yaml:"defaults"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	var cfg Config
	cfg.Defaults.Interval = 1.0
	cfg.Defaults.Interpreter = "sh"
	cfg.Log.Level = "warn"
	return cfg
}

// Load читает конфиг из файла YAML, поверх значений по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- путь к конфигу задает пользователь.
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("config file is empty")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые нельзя исправить молча.
func (c Config) Validate() error {
	if math.IsNaN(c.Defaults.Interval) || math.IsInf(c.Defaults.Interval, 0) {
		return fmt.Errorf("defaults.interval: invalid value %v", c.Defaults.Interval)
	}
	if c.Defaults.Interpreter == "" {
		return errors.New("defaults.interpreter is empty")
	}
	return nil
}
