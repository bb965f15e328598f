package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
	"github.com/MKhiriev/gig-sync/models"
)

const (
	statusRefreshInterval = time.Second
	noticeTTL             = 3 * time.Second
	failedListLimit       = 50
)

// consoleModel is the sync console: coordinator status, pending count, the
// terminally failed queue entries and the actions that act on them.
type consoleModel struct {
	ctx         context.Context
	coordinator service.SyncCoordinator
	queue       service.SyncQueueService
	buildInfo   models.BuildInfo
	logger      *logger.Logger

	// copyToClipboard is clipboard.WriteAll outside of tests.
	copyToClipboard func(string) error

	status     models.SyncStatus
	pending    int
	failed     []models.SyncQueueEntry
	idx        int
	lastReport *models.SyncReport
	notice     string

	spinner      spinner.Model
	showError    bool
	errorOverlay errorOverlayModel
	showInfo     bool
}

func newConsoleModel(ctx context.Context, coordinator service.SyncCoordinator, queue service.SyncQueueService, buildInfo models.BuildInfo, logger *logger.Logger) consoleModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return consoleModel{
		ctx:             ctx,
		coordinator:     coordinator,
		queue:           queue,
		buildInfo:       buildInfo,
		logger:          logger,
		copyToClipboard: clipboard.WriteAll,
		status:          coordinator.Status(),
		spinner:         s,
	}
}

func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadFailed(), tickStatus())
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusTickMsg:
		m.status = m.coordinator.Status()
		return m, tickStatus()

	case pendingCountMsg:
		m.pending = int(msg)
		return m, m.cmdLoadFailed()

	case failedLoadedMsg:
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.failed = msg.entries
		if m.idx >= len(m.failed) {
			m.idx = max(len(m.failed)-1, 0)
		}
		return m, nil

	case syncDoneMsg:
		m.status = m.coordinator.Status()
		if msg.err != nil {
			return m.withError(msg.err), m.cmdLoadFailed()
		}
		m.lastReport = &msg.report
		return m.withNotice(fmt.Sprintf("Sync finished: pushed %d, failed %d, remaining %d",
			msg.report.Push.Processed, msg.report.Push.Failed, msg.report.Push.Remaining))

	case autoSyncToggledMsg:
		m.status = m.coordinator.Status()
		if msg.running {
			return m.withNotice("Auto-sync started")
		}
		return m.withNotice("Auto-sync stopped")

	case retryDoneMsg:
		if msg.err != nil {
			return m.withError(msg.err), m.cmdLoadFailed()
		}
		m.coordinator.NotifyEnqueued()
		var cmd tea.Cmd
		m, cmd = m.withNotice(fmt.Sprintf("Entry #%d queued for retry", msg.entry.ID))
		return m, tea.Batch(cmd, m.cmdLoadFailed())

	case copiedMsg:
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		return m.withNotice("Error copied to clipboard")

	case clearNoticeMsg:
		m.notice = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m consoleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}
	if m.showInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
			m.showInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.failed)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.info):
		m.showInfo = true
	case key.Matches(msg, keys.sync):
		if m.status.IsSyncing {
			return m.withNotice("A sync pass is already running")
		}
		m.status.IsSyncing = true
		return m, m.cmdSync()
	case key.Matches(msg, keys.autoSync):
		return m, m.cmdToggleAutoSync()
	case key.Matches(msg, keys.retry):
		if entry, ok := m.selected(); ok {
			return m, m.cmdRetry(entry.ID)
		}
	case key.Matches(msg, keys.copy):
		if entry, ok := m.selected(); ok {
			return m, m.cmdCopy(valueOrDash(entry.LastError))
		}
	}

	return m, nil
}

func (m consoleModel) selected() (models.SyncQueueEntry, bool) {
	if m.idx < 0 || m.idx >= len(m.failed) {
		return models.SyncQueueEntry{}, false
	}
	return m.failed[m.idx], true
}

func (m consoleModel) withError(err error) consoleModel {
	m.logger.Err(err).Msg("sync console action failed")
	m.showError = true
	m.errorOverlay.message = humanizeError(err)
	return m
}

func (m consoleModel) withNotice(notice string) (consoleModel, tea.Cmd) {
	m.notice = notice
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{} })
}

// ── commands ──

func tickStatus() tea.Cmd {
	return tea.Tick(statusRefreshInterval, func(t time.Time) tea.Msg { return statusTickMsg(t) })
}

func (m consoleModel) cmdLoadFailed() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.queue.ListFailed(m.ctx, models.QueueFilter{Limit: failedListLimit})
		return failedLoadedMsg{entries: entries, err: err}
	}
}

func (m consoleModel) cmdSync() tea.Cmd {
	return func() tea.Msg {
		report, err := m.coordinator.TriggerSync(m.ctx)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m consoleModel) cmdToggleAutoSync() tea.Cmd {
	running := m.status.IsAutoSyncRunning
	return func() tea.Msg {
		if running {
			m.coordinator.Stop()
			return autoSyncToggledMsg{running: false}
		}
		m.coordinator.Start(m.ctx)
		return autoSyncToggledMsg{running: true}
	}
}

func (m consoleModel) cmdRetry(entryID int64) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.queue.ResetForRetry(m.ctx, entryID)
		return retryDoneMsg{entry: entry, err: err}
	}
}

func (m consoleModel) cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: m.copyToClipboard(text)}
	}
}
