package update

import (
	"fmt"

	"github.com/sandeepkv93/tasklog/internal/calendar"
	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/progress"
	"github.com/sandeepkv93/tasklog/internal/stats"
	"github.com/sandeepkv93/tasklog/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) recordItems(items []model.Record) []views.RecordItemData {
	now := m.clock.Now()
	out := make([]views.RecordItemData, 0, len(items))
	for _, r := range items {
		out = append(out, views.RecordItemData{
			UUID:          r.UUID,
			Title:         r.Title,
			State:         r.State,
			StartDate:     r.StartDate,
			EndDate:       r.EndDate,
			ProgressPct:   int(progress.Fraction(r.Plan, r.StartDate, r.EndDate, now) * 100),
			RemainingDays: progress.RemainingDaysDigits(r.StartDate, r.EndDate),
			Tags:          r.Tags,
		})
	}
	return out
}

func (m Model) renderRecordsView() string {
	selected := ""
	if r, ok := m.selectedRecord(); ok {
		selected = r.UUID
	}
	empty := "(no records, press " + m.Keys.New + " to create one)"
	if m.cache.Active() {
		empty = "(no matching records)"
	}
	return views.RenderRecordList(views.RecordListData{
		Title:      "records",
		Items:      m.recordItems(m.Records),
		SelectedID: selected,
		Filter:     m.cache.Keyword(),
		Empty:      empty,
	})
}

func (m Model) renderDetailView() string {
	r, ok := m.selectedRecord()
	if !ok {
		return views.RenderRecordDetail(views.RecordDetailData{})
	}
	fraction := float64(progress.Fraction(r.Plan, r.StartDate, r.EndDate, m.clock.Now()))
	stepCursor := -1
	if m.DetailOpen {
		stepCursor = m.StepCursor
	}
	return views.RenderRecordDetail(views.RecordDetailData{
		Record:       r,
		ProgressView: m.progressBar.ViewAs(fraction),
		ProgressPct:  int(fraction * 100),
		Remaining:    progress.RemainingDaysDigits(r.StartDate, r.EndDate),
		CurrentStep:  progress.CurrentPlanStep(r.Plan),
		StepCursor:   stepCursor,
	})
}

func (m Model) renderArchiveView() string {
	selected := ""
	if r, ok := m.selectedArchived(); ok {
		selected = r.UUID
	}
	return views.RenderRecordList(views.RecordListData{
		Title:      "archive",
		Items:      m.recordItems(m.Archived),
		SelectedID: selected,
		Empty:      "(archive is empty)",
	})
}

func (m Model) renderCalendarView() string {
	year, month := m.CalendarMonth.Year(), m.CalendarMonth.Month()
	matrix, err := calendar.MonthMatrix(year, int(month))
	if err != nil {
		return fmt.Sprintf("calendar: %v", err)
	}
	return views.RenderCalendar(views.CalendarData{
		Year:   year,
		Month:  month,
		Matrix: matrix,
		Today:  calendar.FromTime(m.clock.Now()),
		Active: stats.ActiveDays(m.cache.All(), matrix),
	})
}

func (m Model) renderStatsContent() string {
	return views.RenderStatsPanel(views.StatsData{
		Summary: m.Stats,
		Width:   m.statsViewport.Width,
	})
}
