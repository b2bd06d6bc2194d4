package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/portal/internal/logging"
	"github.com/mesh-intelligence/portal/internal/paths"
	"github.com/mesh-intelligence/portal/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend  = "backend"
	cfgKeyBaseURL  = "base_url"
	cfgKeyToken    = "token"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"
	cfgKeyTimeout  = "timeout"
)

// envBindings maps config keys to their environment overrides. data_dir is
// absent: its env variable sits below config.yaml and is applied by paths.
var envBindings = map[string]string{
	cfgKeyBackend:  "PORTAL_BACKEND",
	cfgKeyBaseURL:  "PORTAL_BASE_URL",
	cfgKeyToken:    "PORTAL_TOKEN",
	cfgKeyLogLevel: "PORTAL_LOG_LEVEL",
	cfgKeyTimeout:  "PORTAL_TIMEOUT",
}

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Token    string `yaml:"token,omitempty"`
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level"`
	Timeout  string `yaml:"timeout"`
}

// loadConfig reads config.yaml from configDir with Viper and applies the
// PORTAL_* environment overrides. A missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSim)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return types.Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		Backend:  v.GetString(cfgKeyBackend),
		BaseURL:  v.GetString(cfgKeyBaseURL),
		Token:    v.GetString(cfgKeyToken),
		DataDir:  v.GetString(cfgKeyDataDir),
		LogLevel: v.GetString(cfgKeyLogLevel),
		Timeout:  v.GetDuration(cfgKeyTimeout),
	}, nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left untouched.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return false, err
	}
	return true, nil
}

// configPath returns the config.yaml location inside configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, paths.ConfigFileName)
}
