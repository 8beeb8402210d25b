package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "metrics.csv"
	pointsFile   = "final_points.json"
)

// Store keeps one directory per run: metadata.json, a per-step metrics
// CSV and the final points.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Close() error { return nil }

func (s *Store) Save(ctx context.Context, r *Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runDir := filepath.Join(s.baseDir, r.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}

	meta := *r
	meta.Series = nil
	meta.Final = nil
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if r.Final != nil {
		if err := writeJSON(filepath.Join(runDir, pointsFile), r.Final); err != nil {
			return err
		}
	}
	return s.writeSeries(filepath.Join(runDir, seriesFile), r)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (s *Store) writeSeries(path string, r *Run) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	names := r.SeriesNames()
	if err := w.Write(append([]string{"step"}, names...)); err != nil {
		return err
	}

	rows := 0
	for _, name := range names {
		if n := len(r.Series[name]); n > rows {
			rows = n
		}
	}
	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i)}
		for _, name := range names {
			series := r.Series[name]
			if i < len(series) {
				row = append(row, strconv.FormatFloat(series[i], 'f', 6, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, err
	}

	runs := make([]Run, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			continue
		}

		var meta Run
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// Load reads a run with its metric series and final points.
func (s *Store) Load(ctx context.Context, id string) (*Run, error) {
	runDir := filepath.Join(s.baseDir, id)
	data, err := os.ReadFile(filepath.Join(runDir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, err
	}

	var r Run
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}

	series, err := loadSeries(filepath.Join(runDir, seriesFile))
	if err != nil {
		return nil, err
	}
	r.Series = series

	if data, err := os.ReadFile(filepath.Join(runDir, pointsFile)); err == nil {
		var pts Points
		if err := json.Unmarshal(data, &pts); err != nil {
			return nil, fmt.Errorf("decode final points: %w", err)
		}
		r.Final = &pts
	}

	return &r, nil
}

func loadSeries(path string) (map[string][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]float64{}, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make(map[string][]float64)
	if len(records) == 0 {
		return series, nil
	}

	header := records[0]
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		for j := 1; j < len(record) && j < len(header); j++ {
			if record[j] == "" {
				continue
			}
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}

	return series, nil
}
