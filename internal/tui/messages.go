package tui

import (
	"time"

	"github.com/MKhiriev/gig-sync/models"
)

// statusTickMsg asks the console to re-read the coordinator status.
type statusTickMsg time.Time

// pendingCountMsg carries a pending-count change from the queue feed.
type pendingCountMsg int

type failedLoadedMsg struct {
	entries []models.SyncQueueEntry
	err     error
}

type syncDoneMsg struct {
	report models.SyncReport
	err    error
}

type autoSyncToggledMsg struct {
	running bool
}

type retryDoneMsg struct {
	entry models.SyncQueueEntry
	err   error
}

type copiedMsg struct {
	err error
}

type clearNoticeMsg struct{}
