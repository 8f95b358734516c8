package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/traitsim/internal/sim"
)

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
	ID             string             `json:"id"`
	Scenario       string             `json:"scenario"`
	Timestamp      time.Time          `json:"timestamp"`
	Dt             float64            `json:"dt"`
	Steps          int                `json:"steps"`
	N              int                `json:"n"`
	M              int                `json:"m"`
	Eps            float64            `json:"eps"`
	ConsumerScheme string             `json:"consumer_scheme"`
	ResourceScheme string             `json:"resource_scheme"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save persists one run: metadata plus both fields as CSV, a row per time
// index up to the last step actually taken.
func (s *Store) Save(scenario, consumerScheme, resourceScheme string, eps float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Scenario:       scenario,
		Timestamp:      time.Now(),
		Dt:             result.Mesh.Dt,
		Steps:          result.StepsTaken,
		N:              result.Mesh.N,
		M:              result.Mesh.M,
		Eps:            eps,
		ConsumerScheme: consumerScheme,
		ResourceScheme: resourceScheme,
		Metrics:        result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeField(runDir, "u.csv", "x", result.U.Cols(), result); err != nil {
		return "", err
	}
	if err := s.writeField(runDir, "r.csv", "y", result.R.Cols(), result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeField(runDir, name, axis string, cols int, result *sim.Result) error {
	file, err := os.Create(filepath.Join(runDir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < cols; i++ {
		header = append(header, fmt.Sprintf("%s%d", axis, i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	field := result.U
	if name == "r.csv" {
		field = result.R
	}

	for n := range result.Times {
		row := []string{strconv.FormatFloat(result.Times[n], 'f', 6, 64)}
		for _, val := range field.Row(n) {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadField reads one stored field back as rows over time plus the time
// column. Field name is "u" or "r".
func (s *Store) LoadField(runID, field string) ([][]float64, []float64, error) {
	name := strings.ToLower(field) + ".csv"
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		times = append(times, t)
		rows = append(rows, row)
	}

	return rows, times, nil
}
