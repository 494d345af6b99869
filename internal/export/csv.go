package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tasklog/internal/progress"
)

var csvHeader = []string{"UUID", "Title", "State", "Start", "End", "Remaining Days", "Progress", "Plan Done", "Plan Total", "Tags", "Archived"}

func WriteCSV(w io.Writer, s Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range s.rows() {
		done := 0
		for _, step := range r.record.Plan {
			if step.IsFinished {
				done++
			}
		}
		out := []string{
			r.record.UUID,
			r.record.Title,
			string(r.record.State),
			r.record.StartDate,
			r.record.EndDate,
			strconv.Itoa(progress.RemainingDays(r.record.StartDate, r.record.EndDate)),
			fmt.Sprintf("%.0f%%", r.progress*100),
			strconv.Itoa(done),
			strconv.Itoa(len(r.record.Plan)),
			strings.Join(r.record.Tags, ";"),
			strconv.FormatBool(r.archived),
		}
		if err := cw.Write(out); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
