package views

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasklog/internal/stats"
)

type AppData struct {
	Header       string
	Tabs         []string
	ActiveTab    int
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
	Width        int
}

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const defaultWidth = 120

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = defaultWidth
	}
	paneWidth := max(20, width/2-4)

	var row string
	if data.RightPane == "" {
		row = panelStyle.Width(max(20, width-4)).Render(data.LeftPane)
	} else {
		left := panelStyle.Width(paneWidth).Render(data.LeftPane)
		right := panelStyle.Width(paneWidth).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	header := headerStyle.Render(data.Header)
	if len(data.Tabs) > 0 {
		header = lipgloss.JoinHorizontal(lipgloss.Bottom, header, "  ", RenderTabs(data.Tabs, data.ActiveTab))
	}

	lines := []string{
		header,
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderTabs(tabs []string, active int) string {
	rendered := make([]string, len(tabs))
	for i, tab := range tabs {
		if i == active {
			rendered[i] = activeTabStyle.Render(tab)
		} else {
			rendered[i] = inactiveTabStyle.Render(tab)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// RenderBars draws one bar per bucket, coloured by the bucket colour.
func RenderBars(buckets []stats.Bucket, width, height int) string {
	if len(buckets) == 0 {
		return mutedStyle.Render("(no data)")
	}
	chart := barchart.New(max(20, width), max(6, height))
	bars := make([]barchart.BarData, 0, len(buckets))
	for _, b := range buckets {
		bars = append(bars, barchart.BarData{
			Label: b.Label,
			Values: []barchart.BarValue{{
				Name:  b.Label,
				Value: float64(b.Value),
				Style: lipgloss.NewStyle().Foreground(b.Color),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}
