package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"taskflow/internal/client/session"
)

const envPrefix = "TASKFLOW"

// Config is the merged terminal client configuration.
type Config struct {
	Server   string `mapstructure:"server" yaml:"server"`
	Language string `mapstructure:"language" yaml:"language"`
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir"`
}

// DefaultConfigPath is ~/.taskflow/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(session.DefaultDir(), "config.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("server", "http://localhost:4000")
	v.SetDefault("language", "en")
	v.SetDefault("data_dir", session.DefaultDir())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig merges defaults, the yaml file at path, TASKFLOW_* variables and
// whatever flags were bound to v. A missing file is not an error.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Server = strings.TrimRight(strings.TrimSpace(cfg.Server), "/")
	if cfg.Server == "" {
		return nil, errors.New("server address is empty")
	}
	return cfg, nil
}
