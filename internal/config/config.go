package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/experiment"
)

const (
	DefaultWidth  = 120.0
	DefaultHeight = 80.0
	DefaultSeeds  = 5
	DefaultBranch = 0.1
	DefaultExpiry = 0.02
	DefaultStyle  = "ink"
)

// Config is the file form of a run: growth parameters plus the render style
// the map is drawn with. YAML and TOML are both accepted, chosen by file
// extension.
type Config struct {
	Seed     int64   `yaml:"seed" toml:"seed"`
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	Viewport string  `yaml:"viewport" toml:"viewport"`
	Seeds    int     `yaml:"seeds" toml:"seeds"`
	Branch   float64 `yaml:"branch" toml:"branch"`
	Expiry   float64 `yaml:"expiry" toml:"expiry"`
	MaxTicks int     `yaml:"max_ticks" toml:"max_ticks"`
	Style    string  `yaml:"style" toml:"style"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:     1,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Viewport: "rect",
		Seeds:    DefaultSeeds,
		Branch:   DefaultBranch,
		Expiry:   DefaultExpiry,
		MaxTicks: experiment.DefaultMaxTicks,
		Style:    DefaultStyle,
	}
}

// Load reads a config file over the defaults, so absent keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext(path))
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch ext(path) {
	case ".toml":
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	case ".yaml", ".yml", "":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported config format: %s", ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// ToRun converts the file form into the experiment form.
func (c *Config) ToRun() experiment.Config {
	return experiment.Config{
		Seed:     c.Seed,
		Width:    c.Width,
		Height:   c.Height,
		Viewport: c.Viewport,
		MaxTicks: c.MaxTicks,
		City: city.Config{
			SeedCount:       c.Seeds,
			PBifurcation:    c.Branch,
			ExpiryThreshold: c.Expiry,
		},
	}
}
