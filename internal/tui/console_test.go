package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/mock"
	"github.com/MKhiriev/gig-sync/internal/service"
	"github.com/MKhiriev/gig-sync/models"
)

type consoleFixture struct {
	model       consoleModel
	coordinator *mock.MockSyncCoordinator
	queue       *mock.MockSyncQueueService
	status      models.SyncStatus
	copied      []string
}

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &consoleFixture{
		coordinator: mock.NewMockSyncCoordinator(ctrl),
		queue:       mock.NewMockSyncQueueService(ctrl),
	}
	f.coordinator.EXPECT().Status().DoAndReturn(func() models.SyncStatus { return f.status }).AnyTimes()

	f.model = newConsoleModel(context.Background(), f.coordinator, f.queue,
		models.NewBuildInfo("1.2.0", "", "abc123"), logger.Nop())
	f.model.copyToClipboard = func(s string) error {
		f.copied = append(f.copied, s)
		return nil
	}
	return f
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func (f *consoleFixture) update(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := f.model.Update(msg)
	m, ok := updated.(consoleModel)
	require.True(t, ok)
	f.model = m
	return cmd
}

func failedEntry(id int64, lastErr string) models.SyncQueueEntry {
	return models.SyncQueueEntry{
		ID:            id,
		TableName:     models.TableEvents,
		LocalRecordID: "local-1",
		Operation:     models.OperationCreate,
		Attempts:      models.MaxRetryAttempts,
		LastError:     &lastErr,
		Status:        models.QueueStatusFailed,
	}
}

// ── sync ──

func TestConsole_ManualSync(t *testing.T) {
	f := newConsoleFixture(t)
	report := models.SyncReport{
		Pulls: []models.PullResult{{Table: models.TableEvents, Fetched: 2, Created: 1, Applied: 1}},
		Push:  models.ProcessResult{Processed: 3},
	}
	f.coordinator.EXPECT().TriggerSync(gomock.Any()).Return(report, nil)

	cmd := f.update(t, runeKey("s"))
	require.NotNil(t, cmd)
	assert.True(t, f.model.status.IsSyncing)

	msg := cmd()
	done, ok := msg.(syncDoneMsg)
	require.True(t, ok)

	f.update(t, done)
	assert.False(t, f.model.status.IsSyncing)
	require.NotNil(t, f.model.lastReport)
	assert.Contains(t, f.model.notice, "pushed 3")
	assert.Contains(t, f.model.View(), "fetched 2, created 1")
}

func TestConsole_SyncWhileSyncingIsRefused(t *testing.T) {
	f := newConsoleFixture(t)
	f.model.status.IsSyncing = true

	f.update(t, runeKey("s"))

	assert.Equal(t, "A sync pass is already running", f.model.notice)
}

func TestConsole_SyncOfflineShowsError(t *testing.T) {
	f := newConsoleFixture(t)
	f.queue.EXPECT().ListFailed(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	f.update(t, syncDoneMsg{err: service.ErrOffline})

	assert.True(t, f.model.showError)
	assert.Contains(t, f.model.View(), "Offline")

	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, f.model.showError)
}

// ── auto-sync ──

func TestConsole_ToggleAutoSync(t *testing.T) {
	f := newConsoleFixture(t)

	f.coordinator.EXPECT().Start(gomock.Any())
	msg := f.update(t, runeKey("a"))()
	assert.Equal(t, autoSyncToggledMsg{running: true}, msg)

	f.status.IsAutoSyncRunning = true
	f.update(t, msg)
	assert.True(t, f.model.status.IsAutoSyncRunning)
	assert.Equal(t, "Auto-sync started", f.model.notice)

	f.coordinator.EXPECT().Stop()
	msg = f.update(t, runeKey("a"))()
	assert.Equal(t, autoSyncToggledMsg{running: false}, msg)
}

// ── failed entries ──

func TestConsole_PendingCountReloadsFailed(t *testing.T) {
	f := newConsoleFixture(t)
	entries := []models.SyncQueueEntry{failedEntry(7, "HTTP 422"), failedEntry(9, "HTTP 409")}
	f.queue.EXPECT().ListFailed(gomock.Any(), models.QueueFilter{Limit: failedListLimit}).Return(entries, nil)

	cmd := f.update(t, pendingCountMsg(4))
	assert.Equal(t, 4, f.model.pending)

	f.update(t, cmd())
	require.Len(t, f.model.failed, 2)

	view := f.model.View()
	assert.Contains(t, view, "Failed entries (2)")
	assert.Contains(t, view, "HTTP 422")
	assert.Contains(t, view, "Pending:    4")
}

func TestConsole_SelectionAndRetry(t *testing.T) {
	f := newConsoleFixture(t)
	f.model.failed = []models.SyncQueueEntry{failedEntry(7, "a"), failedEntry(9, "b")}

	f.update(t, runeKey("j"))
	f.update(t, runeKey("j"))
	assert.Equal(t, 1, f.model.idx, "selection stops at the last entry")

	reopened := failedEntry(9, "b")
	reopened.Status = models.QueueStatusPending
	reopened.Attempts = 0
	f.queue.EXPECT().ResetForRetry(gomock.Any(), int64(9)).Return(reopened, nil)

	msg := f.update(t, runeKey("r"))()

	f.coordinator.EXPECT().NotifyEnqueued()
	f.update(t, msg)
	assert.Equal(t, "Entry #9 queued for retry", f.model.notice)
}

func TestConsole_RetryError(t *testing.T) {
	f := newConsoleFixture(t)
	f.queue.EXPECT().ListFailed(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	f.update(t, retryDoneMsg{err: service.ErrEntrySuperseded})

	assert.True(t, f.model.showError)
	assert.Equal(t, "A newer change of this record is already queued", f.model.errorOverlay.message)
}

func TestConsole_RetryWithoutSelectionDoesNothing(t *testing.T) {
	f := newConsoleFixture(t)

	assert.Nil(t, f.update(t, runeKey("r")))
	assert.Nil(t, f.update(t, runeKey("c")))
}

func TestConsole_CopyError(t *testing.T) {
	f := newConsoleFixture(t)
	f.model.failed = []models.SyncQueueEntry{failedEntry(7, "adapter: unprocessable entity")}

	msg := f.update(t, runeKey("c"))()
	f.update(t, msg)

	assert.Equal(t, []string{"adapter: unprocessable entity"}, f.copied)
	assert.Equal(t, "Error copied to clipboard", f.model.notice)
}

func TestConsole_ClipboardFailure(t *testing.T) {
	f := newConsoleFixture(t)
	f.update(t, copiedMsg{err: errors.New("no clipboard utility")})

	assert.True(t, f.model.showError)
}

func TestConsole_FailedListShrinkClampsSelection(t *testing.T) {
	f := newConsoleFixture(t)
	f.model.failed = []models.SyncQueueEntry{failedEntry(1, "x"), failedEntry(2, "y")}
	f.model.idx = 1

	f.update(t, failedLoadedMsg{entries: []models.SyncQueueEntry{failedEntry(1, "x")}})

	assert.Equal(t, 0, f.model.idx)
}

// ── misc ──

func TestConsole_StatusTickRefreshesStatus(t *testing.T) {
	f := newConsoleFixture(t)
	last := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	f.status = models.SyncStatus{LastSyncTime: &last, IsAutoSyncRunning: true}

	cmd := f.update(t, statusTickMsg(time.Now()))

	assert.NotNil(t, cmd)
	assert.True(t, f.model.status.IsAutoSyncRunning)
	assert.Equal(t, &last, f.model.status.LastSyncTime)
}

func TestConsole_BuildInfoAndQuit(t *testing.T) {
	f := newConsoleFixture(t)

	f.update(t, runeKey("v"))
	view := f.model.View()
	assert.Contains(t, view, "Version: 1.2.0")
	assert.Contains(t, view, "Date: N/A")

	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.model.showInfo)

	cmd := f.update(t, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestConsole_ClearNotice(t *testing.T) {
	f := newConsoleFixture(t)
	f.model.notice = "hello"

	f.update(t, clearNoticeMsg{})

	assert.Empty(t, f.model.notice)
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{service.ErrOffline, "Offline: the document server is unreachable"},
		{service.ErrSyncInProgress, "A sync pass is already running"},
		{errors.New("dial tcp 127.0.0.1:8080: connection refused"), "No network or the document server is unavailable"},
		{errors.New("something else"), "something else"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeError(tt.err))
	}
}
