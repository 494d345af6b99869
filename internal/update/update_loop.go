package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklog/internal/scheduler"
	"github.com/sandeepkv93/tasklog/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.reloadCmd(), m.loadSpinner.Tick}
	if m.scheduler != nil {
		cmds = append(cmds, waitForBoundaryCmd(m.scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.statsViewport.Height = max(8, typed.Height-10)
		return m, nil
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
	case SwitchTabMsg:
		if typed.Tab >= TabRecords && typed.Tab <= TabCalendar {
			m.CurrentTab = typed.Tab
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case RecordsLoadedMsg:
		return m.applyLoaded(typed)
	case PlanGeneratedMsg:
		m.Loading = false
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("plan generation failed: %v", typed.Err), IsError: true}
			m.notify("Plan", m.Status.Text, "error")
			return m, nil
		}
		m.cache.Update(typed.Record)
		m.Status = StatusBar{Text: fmt.Sprintf("generated %d step(s) for %s", len(typed.Record.Plan), typed.Record.Title)}
		m.notify("Plan", m.Status.Text, "info")
		return m, nil
	case BoundaryMsg:
		m.notifyBoundary(typed.Event)
		var wait tea.Cmd
		if m.scheduler != nil {
			wait = waitForBoundaryCmd(m.scheduler.C())
		}
		return m, tea.Batch(m.reloadCmd(), wait)
	}
	return m, nil
}

func (m *Model) notifyBoundary(ev scheduler.BoundaryEvent) {
	switch ev.Kind {
	case scheduler.BoundaryStart:
		m.notify("Started", fmt.Sprintf("%s has started", ev.Title), "info")
	case scheduler.BoundaryEnd:
		m.notify("Ended", fmt.Sprintf("%s reached its end date", ev.Title), "warn")
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	switch keyStr {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Palette:
		return m.openPalette(""), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Tab:
		m.CurrentTab = (m.CurrentTab + 1) % Tab(len(tabNames))
		m.DetailOpen = false
		return m, nil
	case "shift+tab":
		m.CurrentTab = (m.CurrentTab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.DetailOpen = false
		return m, nil
	case "ctrl+r":
		m.Loading = true
		m.Status = StatusBar{Text: "reloading"}
		return m, tea.Batch(m.reloadCmd(), m.loadSpinner.Tick)
	}

	switch m.CurrentTab {
	case TabRecords:
		if m.DetailOpen {
			return m.handlePlanKey(keyStr)
		}
		return m.handleRecordsKey(keyStr)
	case TabArchive:
		return m.handleArchiveKey(keyStr), nil
	case TabStats:
		var cmd tea.Cmd
		m.statsViewport, cmd = m.statsViewport.Update(msg)
		return m, cmd
	case TabCalendar:
		switch keyStr {
		case "h", "left":
			m.CalendarMonth = m.CalendarMonth.AddDate(0, -1, 0)
		case "l", "right":
			m.CalendarMonth = m.CalendarMonth.AddDate(0, 1, 0)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleRecordsKey(keyStr string) (Model, tea.Cmd) {
	switch keyStr {
	case m.Keys.Down:
		if m.Cursor < len(m.Records)-1 {
			m.Cursor++
		}
	case m.Keys.Up:
		if m.Cursor > 0 {
			m.Cursor--
		}
	case m.Keys.New:
		return m.openPalette("new "), nil
	case m.Keys.Search:
		return m.openPalette("search "), nil
	case m.Keys.Cancel:
		if m.cache.Active() {
			return m.runCommand("search")
		}
	case m.Keys.Detail:
		if _, ok := m.selectedRecord(); ok {
			m.DetailOpen = true
			m.StepCursor = 0
		}
	case m.Keys.Finish:
		return m.runCommand("state selected finished")
	case m.Keys.Giveup:
		return m.runCommand("state selected giveup")
	case m.Keys.Archive:
		return m.runCommand("archive selected")
	case m.Keys.Delete:
		m = m.deleteSelected()
	}
	return m, nil
}

func (m Model) handlePlanKey(keyStr string) (Model, tea.Cmd) {
	r, _ := m.selectedRecord()
	switch keyStr {
	case m.Keys.Cancel, m.Keys.Detail:
		m.DetailOpen = false
	case m.Keys.Down:
		if m.StepCursor < len(r.Plan)-1 {
			m.StepCursor++
		}
	case m.Keys.Up:
		if m.StepCursor > 0 {
			m.StepCursor--
		}
	case " ", m.Keys.Finish:
		if len(r.Plan) > 0 {
			return m.runCommand(fmt.Sprintf("plan toggle %d", m.StepCursor+1))
		}
	case m.Keys.Delete:
		if len(r.Plan) > 0 {
			return m.runCommand(fmt.Sprintf("plan remove %d", m.StepCursor+1))
		}
	case m.Keys.MoveUp:
		return m.dragStep(r, -1), nil
	case m.Keys.MoveDown:
		return m.dragStep(r, 1), nil
	case m.Keys.New:
		return m.openPalette("plan add "), nil
	}
	return m, nil
}

func (m Model) handleArchiveKey(keyStr string) Model {
	switch keyStr {
	case m.Keys.Down:
		if m.ArchiveCursor < len(m.Archived)-1 {
			m.ArchiveCursor++
		}
	case m.Keys.Up:
		if m.ArchiveCursor > 0 {
			m.ArchiveCursor--
		}
	case m.Keys.Archive, m.Keys.Detail:
		if r, ok := m.selectedArchived(); ok {
			next, _ := m.runCommand("recover " + r.UUID)
			return next
		}
	case m.Keys.Delete:
		return m.removeArchived()
	}
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	if m.Loading {
		status = strings.TrimSpace(m.loadSpinner.View() + " loading " + status)
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentTab {
	case TabRecords:
		leftPane = m.renderRecordsView()
		rightPane = m.renderDetailView()
	case TabArchive:
		leftPane = m.renderArchiveView()
	case TabStats:
		leftPane = m.statsViewport.View()
	case TabCalendar:
		leftPane = m.renderCalendarView()
	}
	if extra := strings.TrimSpace(m.renderCommandPalette() + "\n" + m.renderHelpIfVisible()); extra != "" {
		rightPane = strings.TrimSpace(rightPane + "\n\n" + extra)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("tasklog | %d active | %d archived", len(m.cache.All()), len(m.Archived)),
		Tabs:         tabNames,
		ActiveTab:    int(m.CurrentTab),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s tabs | %s new | %s search | %s cmd | %s help | %s quit",
			m.Keys.Tab, m.Keys.New, m.Keys.Search, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
		Width: m.Width,
	})
}
