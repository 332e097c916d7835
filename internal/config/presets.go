package config

import "sort"

var Presets = map[string]*Config{
	"downtown": {
		Seed: 1, Width: 160, Height: 100, Viewport: "rect",
		Seeds: 12, Branch: 0.18, Expiry: 0.015,
		MaxTicks: 10000, Style: "ink",
	},
	"sprawl": {
		Seed: 1, Width: 200, Height: 120, Viewport: "rect",
		Seeds: 4, Branch: 0.06, Expiry: 0.01,
		MaxTicks: 10000, Style: "pencil",
	},
	"village": {
		Seed: 1, Width: 60, Height: 40, Viewport: "rect",
		Seeds: 3, Branch: 0.12, Expiry: 0.05,
		MaxTicks: 10000, Style: "pencil",
	},
	"island": {
		Seed: 1, Width: 100, Height: 100, Viewport: "disc",
		Seeds: 6, Branch: 0.12, Expiry: 0.02,
		MaxTicks: 10000, Style: "blueprint",
	},
	"gridlock": {
		Seed: 1, Width: 120, Height: 80, Viewport: "rect",
		Seeds: 8, Branch: 0.3, Expiry: 0.03,
		MaxTicks: 10000, Style: "ink",
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
