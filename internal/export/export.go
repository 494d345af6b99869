package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/progress"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("export: unknown format")

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Snapshot is everything an export writes: active and archived records
// plus the instant progress was computed at.
type Snapshot struct {
	Active   []model.Record
	Archived []model.Record
	At       time.Time
}

type row struct {
	record   model.Record
	archived bool
	progress float32
}

func (s Snapshot) rows() []row {
	out := make([]row, 0, len(s.Active)+len(s.Archived))
	for _, r := range s.Active {
		out = append(out, row{record: r, progress: progress.Fraction(r.Plan, r.StartDate, r.EndDate, s.At)})
	}
	for _, r := range s.Archived {
		out = append(out, row{record: r, archived: true, progress: progress.Fraction(r.Plan, r.StartDate, r.EndDate, s.At)})
	}
	return out
}

func Write(w io.Writer, f Format, s Snapshot) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, s)
	case FormatCSV:
		return WriteCSV(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

func ToFile(path string, f Format, s Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(file, f, s); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
