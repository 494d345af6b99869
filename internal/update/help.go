package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklog/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: m.CurrentTab.String(),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tab, Action: "next tab"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: "ctrl+r", Action: "reload records"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentTab {
	case TabRecords:
		if m.DetailOpen {
			return []KeyBinding{
				{Key: m.Keys.Up + "/" + m.Keys.Down, Action: "move step cursor"},
				{Key: m.Keys.MoveUp + "/" + m.Keys.MoveDown, Action: "drag step up/down"},
				{Key: "space", Action: "toggle step"},
				{Key: m.Keys.New, Action: "add step"},
				{Key: m.Keys.Delete, Action: "remove step"},
				{Key: m.Keys.Cancel, Action: "back to list"},
			}
		}
		return []KeyBinding{
			{Key: m.Keys.Up + "/" + m.Keys.Down, Action: "move selection"},
			{Key: m.Keys.New, Action: "new record"},
			{Key: m.Keys.Search, Action: "search titles"},
			{Key: m.Keys.Cancel, Action: "clear search"},
			{Key: m.Keys.Detail, Action: "edit plan"},
			{Key: m.Keys.Finish + "/" + m.Keys.Giveup, Action: "finish / give up"},
			{Key: m.Keys.Archive, Action: "archive"},
			{Key: m.Keys.Delete, Action: "delete"},
		}
	case TabArchive:
		return []KeyBinding{
			{Key: m.Keys.Up + "/" + m.Keys.Down, Action: "move selection"},
			{Key: m.Keys.Archive, Action: "recover"},
			{Key: m.Keys.Delete, Action: "remove permanently"},
		}
	case TabStats:
		return []KeyBinding{
			{Key: "j/k", Action: "scroll report"},
		}
	case TabCalendar:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next month"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
