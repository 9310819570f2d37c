package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/equilib/internal/config"
	"github.com/san-kum/equilib/internal/elasticity"
	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/scenario"
	"github.com/san-kum/equilib/internal/solver"
)

const (
	metadataFile = "metadata.json"
	curvesFile   = "curves.csv"
)

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, logger: slog.Default()}
}

// WithLogger replaces the store's logger.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	s.logger = l
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Demand     config.CurveConfig `json:"demand"`
	Supply     config.CurveConfig `json:"supply"`
	Result     solver.Result      `json:"result"`
	Elasticity elasticity.Report  `json:"elasticity"`
	Welfare    *market.Welfare    `json:"welfare,omitempty"`
	Points     int                `json:"points"`
}

// Save writes metadata.json and curves.csv under a new run directory.
func (s *Store) Save(out *scenario.Outcome) (string, error) {
	runID := fmt.Sprintf("%s_%s", safeName(out.Name), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       out.Name,
		Timestamp:  time.Now(),
		Demand:     out.Demand,
		Supply:     out.Supply,
		Result:     out.Result,
		Elasticity: out.Elasticity,
		Welfare:    out.Welfare,
		Points:     out.Curves.Len(),
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", err
	}
	if err := writeCurves(filepath.Join(runDir, curvesFile), out.Curves); err != nil {
		return "", err
	}

	s.logger.Debug("run saved", "id", runID, "dir", runDir, "points", meta.Points)
	return runID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeCurves(path string, c market.Curves) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteCurvesCSV(w, c); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// safeName keeps run directory names to letters, digits, '-' and '_'.
func safeName(name string) string {
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

// WriteCurvesCSV writes a price,demand,supply header and one row per grid point.
func WriteCurvesCSV(w *csv.Writer, c market.Curves) error {
	if err := w.Write([]string{"price", "demand", "supply"}); err != nil {
		return err
	}
	for i := range c.Prices {
		row := []string{
			strconv.FormatFloat(c.Prices[i], 'f', 6, 64),
			strconv.FormatFloat(c.Demand[i], 'f', 6, 64),
			strconv.FormatFloat(c.Supply[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns saved runs, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run directory", "dir", entry.Name(), "error", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadCurves(runID string) (market.Curves, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, curvesFile))
	if err != nil {
		return market.Curves{}, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return market.Curves{}, err
	}

	c := market.Curves{Prices: []float64{}, Demand: []float64{}, Supply: []float64{}}
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) != 3 {
			return market.Curves{}, fmt.Errorf("%s line %d: expected 3 fields, got %d", curvesFile, i+1, len(record))
		}

		vals := make([]float64, 3)
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return market.Curves{}, fmt.Errorf("%s line %d: %w", curvesFile, i+1, err)
			}
			vals[j] = v
		}
		c.Prices = append(c.Prices, vals[0])
		c.Demand = append(c.Demand, vals[1])
		c.Supply = append(c.Supply, vals[2])
	}

	return c, nil
}
