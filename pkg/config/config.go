// Package config owns the periscope config file, stored as TOML under the
// platform config directory (eg. ~/.config/periscope/config.toml).
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/code-payments/periscope/pkg/netutil"
	"github.com/code-payments/periscope/pkg/solana"
)

const (
	// DefaultRpcUrl is used when no endpoint is configured anywhere.
	DefaultRpcUrl = string(solana.EnvironmentProd)

	envPrefix  = "PERISCOPE"
	configDir  = "periscope"
	configFile = "config.toml"
)

// Config holds the persisted CLI settings.
type Config struct {
	RpcUrl string `mapstructure:"rpc_url" toml:"rpc_url"`
}

// Dir returns the periscope config directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(base, configDir), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config file, layering PERISCOPE_* environment variables over
// it. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetDefault("rpc_url", DefaultRpcUrl)

	if err := v.BindEnv("rpc_url"); err != nil {
		return nil, errors.Wrap(err, "failed to bind environment")
	}

	// A missing file falls through to defaults and environment values.
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	return &conf, nil
}

// Save validates and writes the config file, creating the directory if
// needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.saveTo(path)
}

func (c *Config) saveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	contents, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to serialize config")
	}

	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}

// Validate checks the config values.
func (c *Config) Validate() error {
	if err := netutil.ValidateHttpUrl(c.RpcUrl, false); err != nil {
		return errors.Wrap(err, "invalid rpc url")
	}
	return nil
}
