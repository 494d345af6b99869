package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklog/internal/scheduler"
	"github.com/sandeepkv93/tasklog/internal/update"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	e, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	engine := scheduler.NewEngine(e.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if e.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModelWithRuntime(e.svc, engine, notifier, e.cfg)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		e.logger.Printf("tui exited: %v", err)
		return fmt.Errorf("tasklog ui: %w", err)
	}
	return nil
}
