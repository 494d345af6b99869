package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sandeepkv93/tasklog/internal/model"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	model.Record
	Archived bool    `json:"archived"`
	Progress float32 `json:"progress"`
}

func WriteJSON(w io.Writer, s Snapshot) error {
	rows := s.rows()
	export := jsonExport{
		ExportedAt: s.At.UTC().Format(time.RFC3339),
		Count:      len(rows),
		Entries:    make([]jsonEntry, 0, len(rows)),
	}
	for _, r := range rows {
		rec := r.record.Clone()
		if rec.Plan == nil {
			rec.Plan = []model.PlanStep{}
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		export.Entries = append(export.Entries, jsonEntry{Record: rec, Archived: r.archived, Progress: r.progress})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
