package analysis

import (
	"github.com/codebox/generative-city-map/internal/city"
)

// GenerationHistogram counts lines per branch depth. Index g holds the
// number of generation-g lines; the slice is empty for an empty forest.
func GenerationHistogram(m *city.Model) []int {
	var hist []int
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		for len(hist) <= l.Generation {
			hist = append(hist, 0)
		}
		hist[l.Generation]++
		return false
	})
	return hist
}

// LengthByGeneration sums geometric street length per branch depth.
func LengthByGeneration(m *city.Model) []float64 {
	var lengths []float64
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		for len(lengths) <= l.Generation {
			lengths = append(lengths, 0)
		}
		lengths[l.Generation] += l.Origin.Distance(l.Tip)
		return false
	})
	return lengths
}

// PeakActive returns the highest active-line count in a run history and the
// tick it occurred on.
func PeakActive(history []int) (peak, tick int) {
	for i, n := range history {
		if n > peak {
			peak, tick = n, i
		}
	}
	return peak, tick
}

// GrowthRate is the average number of lines activated per tick from the
// start of a run to its active-count peak. Zero when the history never
// rises.
func GrowthRate(history []int) float64 {
	if len(history) == 0 {
		return 0
	}
	peak, tick := PeakActive(history)
	if tick == 0 {
		return 0
	}
	return float64(peak-history[0]) / float64(tick)
}

// ChildrenPerLine is the mean number of direct children across all lines.
func ChildrenPerLine(m *city.Model) float64 {
	lines := m.LineCount()
	if lines == 0 {
		return 0
	}
	return float64(lines-m.SeedCount()) / float64(lines)
}
