package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasklog/internal/calendar"
	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/stats"
)

type RecordItemData struct {
	UUID          string
	Title         string
	State         model.RecordState
	StartDate     string
	EndDate       string
	ProgressPct   int
	RemainingDays []int
	Tags          []string
}

type RecordListData struct {
	Title      string
	Items      []RecordItemData
	SelectedID string
	Filter     string
	Empty      string
}

type RecordDetailData struct {
	Record       model.Record
	ProgressView string
	ProgressPct  int
	Remaining    []int
	CurrentStep  int
	StepCursor   int
	PlanEditor   string
}

type CalendarData struct {
	Year   int
	Month  time.Month
	Matrix calendar.Matrix
	Today  calendar.Date
	// Active counts records running on each day.
	Active map[calendar.Date]int
}

type StatsData struct {
	Summary   stats.Summary
	Width     int
	ChartView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

var (
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	todayStyle     = lipgloss.NewStyle().Bold(true).Reverse(true)
	outMonthStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	busyDayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	finishedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	sectionStyle   = lipgloss.NewStyle().Bold(true)
	weekdayHeaders = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
)

func StateBadge(s model.RecordState) string {
	return lipgloss.NewStyle().Foreground(stats.StateColor(s)).Render("[" + string(s) + "]")
}

// FormatDigits joins display digits: [0 7] -> "07".
func FormatDigits(digits []int) string {
	var b strings.Builder
	for _, d := range digits {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

func RenderRecordList(data RecordListData) string {
	var b strings.Builder
	title := data.Title
	if title == "" {
		title = "records"
	}
	b.WriteString(sectionStyle.Render(title + ":"))
	if data.Filter != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" (search: %q)", data.Filter)))
	}
	b.WriteString("\n")
	if len(data.Items) == 0 {
		empty := data.Empty
		if empty == "" {
			empty = "(no records)"
		}
		b.WriteString(mutedStyle.Render(empty))
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		line := fmt.Sprintf("%s %s %3d%% %sd %s..%s",
			StateBadge(item.State),
			item.Title,
			item.ProgressPct,
			FormatDigits(item.RemainingDays),
			item.StartDate,
			item.EndDate,
		)
		if len(item.Tags) > 0 {
			line += mutedStyle.Render(" #" + strings.Join(item.Tags, " #"))
		}
		if item.UUID == data.SelectedID {
			cursor = cursorStyle.Render(">")
		}
		b.WriteString(cursor + " " + line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderRecordDetail(data RecordDetailData) string {
	r := data.Record
	if r.UUID == "" {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render(r.Title) + " " + StateBadge(r.State) + "\n")
	b.WriteString(fmt.Sprintf("id: %s\n", r.UUID))
	b.WriteString(fmt.Sprintf("dates: %s .. %s\n", r.StartDate, r.EndDate))
	b.WriteString(fmt.Sprintf("remaining: %s days\n", FormatDigits(data.Remaining)))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	if len(r.Tags) > 0 {
		b.WriteString(fmt.Sprintf("tags: %s\n", strings.Join(r.Tags, ", ")))
	}
	b.WriteString("\nplan:\n")
	if len(r.Plan) == 0 {
		b.WriteString(mutedStyle.Render("  (empty, /plan add <step> or /plan generate)") + "\n")
	}
	for i, step := range r.Plan {
		cursor := " "
		if i == data.StepCursor {
			cursor = cursorStyle.Render(">")
		}
		box := "[ ]"
		detail := step.Detail
		if step.IsFinished {
			box = "[x]"
			detail = finishedStyle.Render(detail)
		}
		marker := ""
		if i == data.CurrentStep {
			marker = mutedStyle.Render(" <- current")
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s%s\n", cursor, i+1, box, detail, marker))
	}
	if data.PlanEditor != "" {
		b.WriteString("\n" + data.PlanEditor + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCalendar(data CalendarData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("%s %d", data.Month, data.Year)) + "\n")
	b.WriteString(strings.Join(weekdayHeaders, " ") + "\n")
	for _, week := range data.Matrix {
		cells := make([]string, len(week))
		for i, d := range week {
			cell := fmt.Sprintf("%2d", d.Day)
			switch {
			case d == data.Today:
				cell = todayStyle.Render(cell)
			case !d.InMonth(data.Year, data.Month):
				cell = outMonthStyle.Render(cell)
			case data.Active[d] > 0:
				cell = busyDayStyle.Render(cell)
			}
			cells[i] = cell
		}
		b.WriteString(strings.Join(cells, " ") + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// StatsMarkdown renders a summary as a markdown report.
func StatsMarkdown(s stats.Summary) string {
	var b strings.Builder
	b.WriteString("# Statistics\n\n")
	b.WriteString(fmt.Sprintf("Total days spent: **%d**\n\n", s.TotalDays))
	b.WriteString("| State | Records |\n|---|---|\n")
	for _, c := range s.Counts {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", c.Label, c.Value))
	}
	b.WriteString("\n| State | Days | Mean days |\n|---|---|---|\n")
	for i, d := range s.Days {
		mean := 0
		if i < len(s.MeanDays) {
			mean = s.MeanDays[i].Value
		}
		b.WriteString(fmt.Sprintf("| %s | %d | %d |\n", d.Label, d.Value, mean))
	}
	return b.String()
}

func RenderStatsPanel(data StatsData) string {
	width := data.Width
	if width <= 0 {
		width = 60
	}
	chart := data.ChartView
	if chart == "" {
		chart = RenderBars(data.Summary.Counts, width, 10)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderMarkdown(StatsMarkdown(data.Summary)),
		sectionStyle.Render("records by state"),
		chart,
	)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
