// Package config loads the tm-grpc TOML configuration file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// TrackConfig configures the on-disk track store.
type TrackConfig struct {
	Folder string `mapstructure:"folder"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServiceConfig configures the gRPC listener.
type ServiceConfig struct {
	Bind string `mapstructure:"bind"`
}

// APIConfig configures the optional external flight-registration client.
// When BaseURI is empty the client is disabled entirely.
type APIConfig struct {
	BaseURI string `mapstructure:"base_uri"`
}

// Config is the top-level configuration document, deserialized from a
// TOML file with the same section layout as the original service.
type Config struct {
	Track   TrackConfig   `mapstructure:"track"`
	Log     LogConfig     `mapstructure:"log"`
	Service ServiceConfig `mapstructure:"service"`
	API     APIConfig     `mapstructure:"api"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("track.folder", "tracks")
	v.SetDefault("log.level", "info")
	v.SetDefault("service.bind", "127.0.0.1:9100")
	v.SetDefault("api.base_uri", "")
}

// Load reads and parses the TOML config file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	defaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}
