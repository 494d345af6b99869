package stats

import (
	"github.com/sandeepkv93/tasklog/internal/calendar"
	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
)

// ActiveDays counts, for every cell of the grid, the records whose date
// window covers that day. Records with unparsable dates are skipped.
func ActiveDays(records []model.Record, matrix calendar.Matrix) map[calendar.Date]int {
	type window struct{ start, end datemath.Timestamp }
	windows := make([]window, 0, len(records))
	for _, r := range records {
		start, err := datemath.ParseDate(r.StartDate)
		if err != nil {
			continue
		}
		end, err := datemath.ParseDate(r.EndDate)
		if err != nil {
			continue
		}
		windows = append(windows, window{start: start, end: end})
	}

	out := make(map[calendar.Date]int)
	for _, week := range matrix {
		for _, d := range week {
			day, err := datemath.ParseDate(d.String())
			if err != nil {
				continue
			}
			for _, w := range windows {
				if day >= w.start && day <= w.end {
					out[d]++
				}
			}
		}
	}
	return out
}
