package experiment

import (
	"fmt"
	"sort"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/metrics"
)

var viewports = map[string]func(w, h float64) city.Viewport{
	"rect": func(w, h float64) city.Viewport { return city.RectView{Width: w, Height: h} },
	"disc": func(w, h float64) city.Viewport { return city.DiscView{Width: w, Height: h} },
}

// NewViewport builds the named boundary over a w x h canvas.
func NewViewport(name string, w, h float64) (city.Viewport, error) {
	fn, ok := viewports[name]
	if !ok {
		return nil, fmt.Errorf("unknown viewport: %s", name)
	}
	return fn(w, h), nil
}

func ListViewports() []string {
	names := make([]string, 0, len(viewports))
	for name := range viewports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the observer set every batch run carries.
func DefaultMetrics(width, height float64) []metrics.Metric {
	return []metrics.Metric{
		metrics.NewStreetLength(),
		metrics.NewStreets(),
		metrics.NewDepth(),
		metrics.NewCoverage(width, height, 1),
	}
}
