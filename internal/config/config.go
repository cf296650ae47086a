package config

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config holds application-level options. Pomodoro durations are not
// configured here; those live in the durable store and are edited through
// the update-settings command.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	LogLevel      string `yaml:"log_level"`
	Notifications bool   `yaml:"notifications"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		Notifications: true,
	}
}

// Load reads the application config from YAML. If the config file does not
// exist, defaults are returned.
func Load(appName string) (Config, error) {
	cfg := DefaultConfig()

	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return cfg, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, eris.Wrapf(err, "read config file: %s", configPath)
	}

	var fileData Config
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, eris.Wrapf(err, "parse config file: %s", configPath)
	}

	applyFile(&cfg, fileData)
	return cfg, nil
}

// ResolveDataDir returns the directory holding the store file: the
// configured data_dir when set, the user config directory otherwise.
func (cfg Config) ResolveDataDir(appName string) (string, error) {
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", eris.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(configDir, appName), nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", eris.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

func applyFile(cfg *Config, fileData Config) {
	if fileData.DataDir != "" {
		cfg.DataDir = fileData.DataDir
	}
	if fileData.LogLevel != "" {
		cfg.LogLevel = fileData.LogLevel
	}
	cfg.Notifications = fileData.Notifications
}
