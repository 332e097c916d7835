package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/experiment"
)

// ErrRunNotFound is returned when a run id has no directory under the store.
var ErrRunNotFound = errors.New("storage: run not found")

// Store persists runs under a base directory, one subdirectory per run with
// a metadata.json and a lines.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Viewport  string             `json:"viewport"`
	Seeds     int                `json:"seeds"`
	Branch    float64            `json:"branch"`
	Expiry    float64            `json:"expiry"`
	Ticks     int                `json:"ticks"`
	Lines     int                `json:"lines"`
	Exhausted bool               `json:"exhausted"`
	Metrics   map[string]float64 `json:"metrics"`
}

// LineRecord is one street flattened for persistence. State is "active",
// "expired" or "collided".
type LineRecord struct {
	Seed       int     `json:"seed"`
	Line       int     `json:"line"`
	Parent     int     `json:"parent"`
	Generation int     `json:"generation"`
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	TipX       float64 `json:"tip_x"`
	TipY       float64 `json:"tip_y"`
	Angle      float64 `json:"angle"`
	Steps      int     `json:"steps"`
	Tag        float64 `json:"tag"`
	State      string  `json:"state"`
}

// Records flattens the forest in traversal order.
func Records(m *city.Model) []LineRecord {
	records := make([]LineRecord, 0, m.LineCount())
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		records = append(records, LineRecord{
			Seed:       l.Seed,
			Line:       l.Index,
			Parent:     l.Parent,
			Generation: l.Generation,
			OriginX:    l.Origin.X,
			OriginY:    l.Origin.Y,
			TipX:       l.Tip.X,
			TipY:       l.Tip.Y,
			Angle:      l.Angle,
			Steps:      l.Steps,
			Tag:        l.Tag,
			State:      lineState(l),
		})
		return false
	})
	return records
}

func lineState(l *city.Line) string {
	switch {
	case l.Active:
		return "active"
	case l.Expired:
		return "expired"
	default:
		return "collided"
	}
}

func (s *Store) Save(cfg experiment.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("map_%s", uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Viewport:  cfg.Viewport,
		Seeds:     cfg.City.SeedCount,
		Branch:    cfg.City.PBifurcation,
		Expiry:    cfg.City.ExpiryThreshold,
		Ticks:     result.Ticks,
		Lines:     result.Lines,
		Exhausted: result.Exhausted,
		Metrics:   result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "lines.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{
		"seed", "line", "parent", "generation",
		"origin_x", "origin_y", "tip_x", "tip_y",
		"angle", "steps", "tag", "state",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, r := range Records(result.Model) {
		row := []string{
			strconv.Itoa(r.Seed),
			strconv.Itoa(r.Line),
			strconv.Itoa(r.Parent),
			strconv.Itoa(r.Generation),
			strconv.FormatFloat(r.OriginX, 'f', 6, 64),
			strconv.FormatFloat(r.OriginY, 'f', 6, 64),
			strconv.FormatFloat(r.TipX, 'f', 6, 64),
			strconv.FormatFloat(r.TipY, 'f', 6, 64),
			strconv.FormatFloat(r.Angle, 'f', 6, 64),
			strconv.Itoa(r.Steps),
			strconv.FormatFloat(r.Tag, 'f', 6, 64),
			r.State,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadLines(runID string) ([]LineRecord, error) {
	csvPath := filepath.Join(s.baseDir, runID, "lines.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	lines := make([]LineRecord, 0, len(records))
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) < 12 {
			continue
		}
		lines = append(lines, LineRecord{
			Seed:       atoi(row[0]),
			Line:       atoi(row[1]),
			Parent:     atoi(row[2]),
			Generation: atoi(row[3]),
			OriginX:    atof(row[4]),
			OriginY:    atof(row[5]),
			TipX:       atof(row[6]),
			TipY:       atof(row[7]),
			Angle:      atof(row[8]),
			Steps:      atoi(row[9]),
			Tag:        atof(row[10]),
			State:      row[11],
		})
	}

	return lines, nil
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
