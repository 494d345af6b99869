package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklog/internal/model"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Active: []model.Record{
			{
				UUID: "a", Title: "Write, edit", StartDate: "2024-01-01", EndDate: "2024-01-11",
				State: model.StateRunning, Tags: []string{"work", "q1"},
			},
		},
		Archived: []model.Record{
			{
				UUID: "b", Title: "Old", StartDate: "2023-12-01", EndDate: "2023-12-02",
				State: model.StateFinished, Plan: []model.PlanStep{{Detail: "x", IsFinished: true}, {Detail: "y"}},
			},
		},
		At: time.Date(2024, 1, 6, 12, 0, 0, 0, time.Local),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "UUID" || len(rows[0]) != len(csvHeader) {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	active := rows[1]
	if active[1] != "Write, edit" || active[5] != "10" || active[6] != "50%" || active[9] != "work;q1" || active[10] != "false" {
		t.Fatalf("unexpected active row: %v", active)
	}
	archived := rows[2]
	if archived[2] != "Finished" || archived[7] != "1" || archived[8] != "2" || archived[10] != "true" {
		t.Fatalf("unexpected archived row: %v", archived)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var got struct {
		Count   int `json:"count"`
		Entries []struct {
			UUID     string           `json:"uuid"`
			State    string           `json:"state"`
			Plan     []map[string]any `json:"plan"`
			Tags     []string         `json:"tags"`
			Archived bool             `json:"archived"`
			Progress float64          `json:"progress"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Count != 2 || len(got.Entries) != 2 {
		t.Fatalf("unexpected count: %+v", got)
	}
	if got.Entries[0].UUID != "a" || got.Entries[0].Plan == nil || got.Entries[0].Progress != 0.5 {
		t.Fatalf("unexpected active entry: %+v", got.Entries[0])
	}
	if !got.Entries[1].Archived || got.Entries[1].State != "Finished" || got.Entries[1].Tags == nil {
		t.Fatalf("unexpected archived entry: %+v", got.Entries[1])
	}
}

func TestToFileAndFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	f, err := FormatFromPath(path)
	if err != nil || f != FormatCSV {
		t.Fatalf("unexpected format: %q %v", f, err)
	}
	if err := ToFile(path, f, sampleSnapshot()); err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty file: %v", err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err := Write(&bytes.Buffer{}, Format("yaml"), Snapshot{}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
