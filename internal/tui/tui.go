// Package tui implements the client's terminal sync console on bubbletea.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
	"github.com/MKhiriev/gig-sync/models"
)

type TUI struct {
	ctx     context.Context
	program *tea.Program
}

// New prepares the console. The program stops when ctx is cancelled.
func New(ctx context.Context, services *service.ClientServices, buildInfo models.BuildInfo, logger *logger.Logger) *TUI {
	model := newConsoleModel(ctx, services.SyncCoordinator, services.SyncQueueService, buildInfo, logger)

	return &TUI{
		ctx:     ctx,
		program: tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)),
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run() error {
	_, err := t.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && t.ctx.Err() != nil {
		return nil
	}
	return err
}

// SetPendingCount forwards a pending-count change to the console. It blocks
// until the program reads it or has exited.
func (t *TUI) SetPendingCount(n int) {
	t.program.Send(pendingCountMsg(n))
}
