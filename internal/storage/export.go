package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/codebox/generative-city-map/internal/experiment"
)

// ExportData is the full JSON form of one run: configuration, outcome and
// every line of the forest.
type ExportData struct {
	Seed          int64              `json:"seed"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	Viewport      string             `json:"viewport"`
	Seeds         int                `json:"seeds"`
	Branch        float64            `json:"branch"`
	Expiry        float64            `json:"expiry"`
	Ticks         int                `json:"ticks"`
	Exhausted     bool               `json:"exhausted"`
	ActiveHistory []int              `json:"active_history"`
	Metrics       map[string]float64 `json:"metrics"`
	Lines         []LineRecord       `json:"lines"`
}

func buildExport(cfg experiment.Config, result *experiment.Result) ExportData {
	return ExportData{
		Seed:          cfg.Seed,
		Width:         cfg.Width,
		Height:        cfg.Height,
		Viewport:      cfg.Viewport,
		Seeds:         cfg.City.SeedCount,
		Branch:        cfg.City.PBifurcation,
		Expiry:        cfg.City.ExpiryThreshold,
		Ticks:         result.Ticks,
		Exhausted:     result.Exhausted,
		ActiveHistory: result.ActiveHistory,
		Metrics:       result.Metrics,
		Lines:         Records(result.Model),
	}
}

func ExportJSON(path string, cfg experiment.Config, result *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, cfg, result)
}

func ExportJSONStdout(cfg experiment.Config, result *experiment.Result) error {
	return writeExport(os.Stdout, cfg, result)
}

func writeExport(w io.Writer, cfg experiment.Config, result *experiment.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(cfg, result))
}
