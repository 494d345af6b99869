package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/records"
	"github.com/sandeepkv93/tasklog/internal/scheduler"
	"github.com/sandeepkv93/tasklog/internal/stats"
)

// reloadCmd takes a fresh generation number before the load starts, so a
// later reload always supersedes an earlier one still in flight.
func (m Model) reloadCmd() tea.Cmd {
	if m.service == nil {
		return nil
	}
	svc := m.service
	ctx := m.ctx
	gen := svc.Generation().Next()
	return func() tea.Msg {
		archived, err := svc.LoadArchive(ctx)
		if err != nil {
			return RecordsLoadedMsg{Generation: gen, Err: err}
		}
		active, err := svc.Load(ctx)
		if err != nil {
			return RecordsLoadedMsg{Generation: gen, Err: err}
		}
		return RecordsLoadedMsg{Generation: gen, Active: active, Archived: archived}
	}
}

func (m Model) applyLoaded(msg RecordsLoadedMsg) (Model, tea.Cmd) {
	if m.service != nil && !m.service.Generation().IsCurrent(msg.Generation) {
		return m, nil
	}
	m.Loading = false
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: fmt.Sprintf("load failed: %v", msg.Err), IsError: true}
		m.notify("Error", m.Status.Text, "error")
		return m, nil
	}
	keyword := m.cache.Keyword()
	m.cache.Replace(msg.Active)
	if keyword != "" {
		m.cache.ApplyFilter(keyword)
	}
	m.Archived = msg.Archived
	m.recomputeStats()
	m.reschedule()
	m.Status = StatusBar{Text: fmt.Sprintf("loaded %d record(s), %d archived", len(msg.Active), len(msg.Archived))}
	return m, nil
}

func generatePlanCmd(ctx context.Context, svc *records.Service, id, locale string) tea.Cmd {
	return func() tea.Msg {
		r, err := svc.GeneratePlan(ctx, id, locale)
		return PlanGeneratedMsg{RecordID: id, Record: r, Err: err}
	}
}

func waitForBoundaryCmd(ch <-chan scheduler.BoundaryEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return BoundaryMsg{Event: ev}
	}
}

// recomputeStats summarizes archived records followed by active ones.
func (m *Model) recomputeStats() {
	all := make([]model.Record, 0, len(m.Archived)+len(m.Records))
	all = append(all, m.Archived...)
	all = append(all, m.cache.All()...)
	m.Stats = stats.Summarize(all, m.clock.Now())
}

func (m *Model) reschedule() {
	if m.scheduler == nil {
		return
	}
	if _, err := m.scheduler.ScheduleRecords(m.cache.All(), m.clock.Now()); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("schedule boundaries: %v", err), IsError: true}
	}
}
