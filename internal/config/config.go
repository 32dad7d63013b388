package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Noziop/mkdf/internal/ports"
)

// Config holds settings read from mkdf.yml and MKDF_* environment variables.
type Config struct {
	Ports  ports.Config
	Web    WebConfig
	Source string // config file used, empty when none was found
}

// WebConfig configures the HTTP API.
type WebConfig struct {
	Host      string
	PortStart int
}

// Load reads the config file at path, or searches for mkdf.yml in the
// working directory and $HOME/.config/mkdf when path is empty. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("web.host", "127.0.0.1")
	v.SetDefault("web.port_start", 9500)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mkdf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mkdf"))
		}
	}

	// MKDF_PORTS_BACKEND, MKDF_NETWORK_SUBNET, ...
	v.SetEnvPrefix("MKDF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, role := range ports.Roles {
		_ = v.BindEnv("ports." + string(role))
	}
	_ = v.BindEnv("network.subnet")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Ports: ports.Config{Ports: map[ports.Role]int{}, Subnet: v.GetString("network.subnet")},
		Web: WebConfig{
			Host:      v.GetString("web.host"),
			PortStart: v.GetInt("web.port_start"),
		},
		Source: v.ConfigFileUsed(),
	}
	for _, role := range ports.Roles {
		if p := v.GetInt("ports." + string(role)); p != 0 {
			if p < 0 || p > 65535 {
				return nil, fmt.Errorf("ports.%s: %d is not a valid port", role, p)
			}
			cfg.Ports.Ports[role] = p
		}
	}
	if cfg.Web.PortStart <= 0 || cfg.Web.PortStart > 65535 {
		return nil, fmt.Errorf("web.port_start: %d is not a valid port", cfg.Web.PortStart)
	}
	return cfg, nil
}
