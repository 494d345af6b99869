package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklog/internal/commands"
	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/records"
)

var errNoService = errors.New("update: record service not configured")

func (m Model) openPalette(prefill string) Model {
	m.Palette.Active = true
	m.Palette.Input = prefill
	m.commandInput.SetValue(prefill)
	m.commandInput.CursorEnd()
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		raw := m.commandInput.Value()
		m = m.closePalette()
		return m.runCommand(raw)
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

// runCommand parses and executes one palette line. Storage work runs
// inline; plan generation is returned as a command.
func (m Model) runCommand(raw string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if m.service == nil && cmd.Type != commands.TypeSearch {
		m.Status = StatusBar{Text: errNoService.Error(), IsError: true}
		return m, nil
	}

	var pending tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		New: func(a commands.NewArgs) (commands.Result, error) {
			r, err := m.service.Create(m.ctx, records.Draft{
				Title:     a.Title,
				StartDate: a.StartDate,
				EndDate:   a.EndDate,
				Tags:      a.Tags,
			})
			if err != nil {
				return commands.Result{}, err
			}
			m.cache.Prepend(r)
			m.Cursor = 0
			m.CurrentTab = TabRecords
			m.reschedule()
			return commands.Result{Message: fmt.Sprintf("created %s [%s]", r.Title, r.State)}, nil
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.cache.ApplyFilter(a.Keyword)
			m.Cursor = 0
			m.CurrentTab = TabRecords
			if a.Keyword == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%d record(s) match %q", len(m.cache.Live()), a.Keyword)}, nil
		},
		State: func(a commands.StateArgs) (commands.Result, error) {
			id, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			r, err := m.service.SetState(m.ctx, id, a.State)
			if err != nil {
				return commands.Result{}, err
			}
			m.cache.Update(r)
			m.reschedule()
			return commands.Result{Message: fmt.Sprintf("%s is now %s", r.Title, r.State)}, nil
		},
		Archive: func(a commands.TargetArgs) (commands.Result, error) {
			id, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			r, err := m.service.Get(m.ctx, id)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.service.Archive(m.ctx, id); err != nil {
				return commands.Result{}, err
			}
			m.cache.Remove(id)
			m.Archived = append(m.Archived, r)
			if m.scheduler != nil {
				m.scheduler.Cancel(id)
			}
			return commands.Result{Message: fmt.Sprintf("archived %s", r.Title)}, nil
		},
		Recover: func(a commands.TargetArgs) (commands.Result, error) {
			r, err := m.service.Recover(m.ctx, a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.Archived = removeRecord(m.Archived, r.UUID)
			m.cache.Prepend(r)
			m.reschedule()
			return commands.Result{Message: fmt.Sprintf("recovered %s [%s]", r.Title, r.State)}, nil
		},
		Plan: func(a commands.PlanArgs) (commands.Result, error) {
			r, ok := m.selectedRecord()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no record selected"}
			}
			var next model.Record
			switch a.Action {
			case commands.PlanAdd:
				next = records.AddStep(r, a.Detail)
			case commands.PlanToggle:
				if a.Index >= len(r.Plan) {
					return commands.Result{}, stepOutOfRange(a.Index)
				}
				next = records.ToggleStep(r, a.Index)
			case commands.PlanRemove:
				if a.Index >= len(r.Plan) {
					return commands.Result{}, stepOutOfRange(a.Index)
				}
				next = records.RemoveStep(r, a.Index)
			case commands.PlanClear:
				next = records.ClearPlan(r)
			case commands.PlanGenerate:
				m.Loading = true
				pending = tea.Batch(generatePlanCmd(m.ctx, m.service, r.UUID, m.locale), m.loadSpinner.Tick)
				return commands.Result{Message: fmt.Sprintf("generating plan for %s", r.Title)}, nil
			}
			saved, err := m.service.Save(m.ctx, next)
			if err != nil {
				return commands.Result{}, err
			}
			m.cache.Update(saved)
			return commands.Result{Message: fmt.Sprintf("plan updated: %d step(s)", len(saved.Plan))}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			r, ok := m.selectedRecord()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no record selected"}
			}
			if a.From >= len(r.Plan) {
				return commands.Result{}, stepOutOfRange(a.From)
			}
			if a.To >= len(r.Plan) {
				return commands.Result{}, stepOutOfRange(a.To)
			}
			saved, err := m.service.Save(m.ctx, records.MoveStep(r, a.From, a.To))
			if err != nil {
				return commands.Result{}, err
			}
			m.cache.Update(saved)
			m.StepCursor = a.To
			return commands.Result{Message: fmt.Sprintf("moved step %d to %d", a.From+1, a.To+1)}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	m.recomputeStats()
	return m, pending
}

func (m Model) resolveTarget(target string) (string, error) {
	if target == "" || target == commands.TargetSelected {
		r, ok := m.selectedRecord()
		if !ok {
			return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no record selected"}
		}
		return r.UUID, nil
	}
	return target, nil
}

func (m Model) deleteSelected() Model {
	r, ok := m.selectedRecord()
	if !ok || m.service == nil {
		return m
	}
	if err := m.service.Delete(m.ctx, r.UUID); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.cache.Remove(r.UUID)
	if m.scheduler != nil {
		m.scheduler.Cancel(r.UUID)
	}
	m.recomputeStats()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted %s", r.Title)}
	return m
}

func (m Model) removeArchived() Model {
	r, ok := m.selectedArchived()
	if !ok || m.service == nil {
		return m
	}
	if err := m.service.RemoveArchived(m.ctx, r.UUID); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Archived = removeRecord(m.Archived, r.UUID)
	m.recomputeStats()
	m.Status = StatusBar{Text: fmt.Sprintf("removed archived %s", r.Title)}
	return m
}

// dragStep moves the step under the cursor by delta slots, going through
// the same drop arithmetic as a pointer drag.
func (m Model) dragStep(r model.Record, delta int) Model {
	if len(r.Plan) < 2 || m.service == nil {
		return m
	}
	h := float64(m.itemHeight)
	target := float64(m.StepCursor+delta) * h
	next := records.DragStep(r, m.StepCursor, target, h)
	saved, err := m.service.Save(m.ctx, next)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.cache.Update(saved)
	m.StepCursor = clampIndex(m.StepCursor+delta, len(saved.Plan))
	return m
}

func stepOutOfRange(index int) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no step %d", index+1)}
}
