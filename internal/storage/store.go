package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	eventsFile   = "events.csv"
)

var (
	framesHeader = []string{"frame", "count", "exiting", "mean_speed", "overlaps"}
	eventsHeader = []string{"frame", "edge", "kind", "start_unix_ms"}
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
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Frames      int                `json:"frames"`
	FPS         int                `json:"fps"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Input       string             `json:"input"`
	Broadphase  string             `json:"broadphase"`
	Params      dynamo.Params      `json:"params"`
	Transitions int                `json:"transitions"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata, the per-frame stats and
// the highlight events. ID and Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		name := meta.Name
		if name == "" {
			name = "run"
		}
		meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.UnixNano())
	}
	meta.Metrics = result.Metrics
	meta.Transitions = result.Transitions
	if meta.Frames == 0 {
		meta.Frames = result.FramesRun
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), framesHeader, len(result.Frames), func(i int) []string {
		return frameRow(result.Frames[i])
	}); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, eventsFile), eventsHeader, len(result.Events), func(i int) []string {
		return eventRow(result.Events[i])
	}); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func frameRow(f sim.FrameStat) []string {
	return []string{
		strconv.Itoa(f.Frame),
		strconv.Itoa(f.Count),
		strconv.Itoa(f.Exiting),
		strconv.FormatFloat(f.MeanSpeed, 'f', 6, 64),
		strconv.Itoa(f.Overlaps),
	}
}

func eventRow(e dynamo.EdgeHighlightEvent) []string {
	return []string{
		strconv.Itoa(e.Frame),
		e.Edge.String(),
		e.Kind.String(),
		strconv.FormatInt(e.Start.UnixMilli(), 10),
	}
}

// List returns every readable run, oldest first.
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
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) readRecords(runID, name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

// LoadFrames reads frames.csv back. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]sim.FrameStat, error) {
	records, err := s.readRecords(runID, framesFile)
	if err != nil {
		return nil, err
	}

	frames := make([]sim.FrameStat, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(framesHeader) {
			continue
		}
		frame, err1 := strconv.Atoi(rec[0])
		count, err2 := strconv.Atoi(rec[1])
		exiting, err3 := strconv.Atoi(rec[2])
		speed, err4 := strconv.ParseFloat(rec[3], 64)
		overlaps, err5 := strconv.Atoi(rec[4])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		frames = append(frames, sim.FrameStat{
			Frame:     frame,
			Count:     count,
			Exiting:   exiting,
			MeanSpeed: speed,
			Overlaps:  overlaps,
		})
	}
	return frames, nil
}

// LoadEvents reads events.csv back. Malformed rows are skipped.
func (s *Store) LoadEvents(runID string) ([]dynamo.EdgeHighlightEvent, error) {
	records, err := s.readRecords(runID, eventsFile)
	if err != nil {
		return nil, err
	}

	events := make([]dynamo.EdgeHighlightEvent, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(eventsHeader) {
			continue
		}
		frame, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		edge, err := dynamo.ParseEdge(rec[1])
		if err != nil {
			continue
		}
		ms, err := strconv.ParseInt(rec[3], 10, 64)
		if err != nil {
			continue
		}
		kind := dynamo.HighlightSpawn
		if rec[2] == dynamo.HighlightExit.String() {
			kind = dynamo.HighlightExit
		}
		events = append(events, dynamo.EdgeHighlightEvent{
			Edge:  edge,
			Kind:  kind,
			Frame: frame,
			Start: time.UnixMilli(ms).UTC(),
		})
	}
	return events, nil
}

// Series extracts one column of the frame stats as a float series.
func Series(frames []sim.FrameStat, column string) ([]float64, error) {
	out := make([]float64, len(frames))
	for i, f := range frames {
		switch column {
		case "count":
			out[i] = float64(f.Count)
		case "exiting":
			out[i] = float64(f.Exiting)
		case "mean_speed":
			out[i] = f.MeanSpeed
		case "overlaps":
			out[i] = float64(f.Overlaps)
		default:
			return nil, fmt.Errorf("unknown column %q", column)
		}
	}
	return out, nil
}
