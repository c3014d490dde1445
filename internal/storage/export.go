package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/sim"
)

type ExportData struct {
	Run    RunMetadata     `json:"run"`
	Frames []sim.FrameStat `json:"frames"`
	Events []ExportEvent   `json:"events"`
}

type ExportEvent struct {
	Frame       int    `json:"frame"`
	Edge        string `json:"edge"`
	Kind        string `json:"kind"`
	StartUnixMs int64  `json:"start_unix_ms"`
}

// Export gathers everything stored for a run.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	events, err := s.LoadEvents(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Run:    *meta,
		Frames: frames,
		Events: make([]ExportEvent, len(events)),
	}
	for i, e := range events {
		data.Events[i] = exportEvent(e)
	}
	return data, nil
}

func exportEvent(e dynamo.EdgeHighlightEvent) ExportEvent {
	return ExportEvent{
		Frame:       e.Frame,
		Edge:        e.Edge.String(),
		Kind:        e.Kind.String(),
		StartUnixMs: e.Start.UnixMilli(),
	}
}

func ExportJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes the frame stats with a header row.
func ExportCSV(w io.Writer, frames []sim.FrameStat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(framesHeader); err != nil {
		return err
	}
	for _, f := range frames {
		if err := cw.Write(frameRow(f)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
