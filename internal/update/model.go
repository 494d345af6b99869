package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/tasklog/internal/config"
	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/records"
	"github.com/sandeepkv93/tasklog/internal/scheduler"
	"github.com/sandeepkv93/tasklog/internal/search"
	"github.com/sandeepkv93/tasklog/internal/stats"
)

type Tab int

const (
	TabRecords Tab = iota
	TabArchive
	TabStats
	TabCalendar
)

var tabNames = []string{"Records", "Archive", "Stats", "Calendar"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentTab    Tab
	Records       []model.Record
	Archived      []model.Record
	Cursor        int
	ArchiveCursor int
	// DetailOpen moves key focus from the record list to the plan of the
	// selected record.
	DetailOpen     bool
	StepCursor     int
	Stats          stats.Summary
	CalendarMonth  time.Time
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           config.Keymap
	Loading        bool
	Quitting       bool
	LastError      error
	Width          int

	ctx        context.Context
	service    *records.Service
	cache      *search.Cache
	scheduler  *scheduler.Engine
	notifier   DesktopNotifier
	clock      datemath.Clock
	locale     string
	itemHeight int

	commandInput  textinput.Model
	progressBar   progress.Model
	loadSpinner   spinner.Model
	helpModel     help.Model
	statsViewport viewport.Model
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchTabMsg struct {
	Tab Tab
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// RecordsLoadedMsg carries the result of one reload. Generation identifies
// the reload that produced it.
type RecordsLoadedMsg struct {
	Generation uint64
	Active     []model.Record
	Archived   []model.Record
	Err        error
}

type PlanGeneratedMsg struct {
	RecordID string
	Record   model.Record
	Err      error
}

type BoundaryMsg struct {
	Event scheduler.BoundaryEvent
}

// NewModel builds the TUI over svc. The scheduler may be nil.
func NewModel(svc *records.Service, cfg config.Config) Model {
	return NewModelWithRuntime(svc, nil, nil, cfg)
}

func NewModelWithRuntime(svc *records.Service, engine *scheduler.Engine, notifier DesktopNotifier, cfg config.Config) Model {
	clock := datemath.Clock(datemath.SystemClock{})
	if svc != nil {
		clock = svc.Clock()
	}
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}
	itemHeight := cfg.ItemHeight
	if itemHeight <= 0 {
		itemHeight = 1
	}
	now := clock.Now()
	m := Model{
		CurrentTab:     TabRecords,
		CalendarMonth:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		DesktopEnabled: cfg.DesktopNotifications,
		Keys:           cfg.Keys,
		Loading:        svc != nil,
		ctx:            context.Background(),
		service:        svc,
		cache:          search.NewCache(nil),
		scheduler:      engine,
		notifier:       notifier,
		clock:          clock,
		locale:         cfg.Locale,
		itemHeight:     itemHeight,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.statsViewport = viewport.New(72, 20)
}

// syncBubbleData pushes model state into the bubble components after every
// update.
func (m *Model) syncBubbleData() {
	m.Records = m.cache.Live()
	m.Cursor = clampIndex(m.Cursor, len(m.Records))
	m.ArchiveCursor = clampIndex(m.ArchiveCursor, len(m.Archived))
	if r, ok := m.selectedRecord(); ok {
		m.StepCursor = clampIndex(m.StepCursor, len(r.Plan))
	} else {
		m.StepCursor = 0
		m.DetailOpen = false
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}

	width := m.Width
	if width <= 0 {
		width = 120
	}
	m.progressBar.Width = max(10, width/4)
	m.statsViewport.Width = max(40, width-6)
	if m.CurrentTab == TabStats {
		m.statsViewport.SetContent(m.renderStatsContent())
	}
}

func (m Model) selectedRecord() (model.Record, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Records) {
		return model.Record{}, false
	}
	return m.Records[m.Cursor], true
}

func (m Model) selectedArchived() (model.Record, bool) {
	if m.ArchiveCursor < 0 || m.ArchiveCursor >= len(m.Archived) {
		return model.Record{}, false
	}
	return m.Archived[m.ArchiveCursor], true
}
