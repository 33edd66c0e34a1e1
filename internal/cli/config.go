package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the user configuration loaded from
// ~/.config/flowband/config.toml. All fields are optional; zero values
// defer to built-in defaults. Command-line flags override config
// values.
//
// Example:
//
//	[defaults]
//	style = "sharp"
//	formats = ["svg", "png"]
//	aspect = 4.0
//	gap_fraction = 0.02
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Cache    CacheConfig    `toml:"cache"`
	Serve    ServeConfig    `toml:"serve"`
}

// DefaultsConfig overrides built-in render defaults.
type DefaultsConfig struct {
	Style       string   `toml:"style"`
	Formats     []string `toml:"formats"`
	ValueMode   string   `toml:"value_mode"`
	BandColor   string   `toml:"band_color"`
	Aspect      float64  `toml:"aspect"`
	GapFraction float64  `toml:"gap_fraction"`
	Alpha       float64  `toml:"alpha"`
	FontSize    float64  `toml:"font_size"`
	Width       float64  `toml:"width"`
	Height      float64  `toml:"height"`
}

// CacheConfig selects the dataset fetch cache backend.
// Backend is one of "file" (default), "redis", "mongo", or "none".
type CacheConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	MongoURI      string `toml:"mongo_uri"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads the user config file. A missing file yields a zero
// Config and no error; a malformed file yields the error.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}

	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
