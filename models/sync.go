// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is the coordinator status surface consumed by the UI.
type SyncStatus struct {
	IsSyncing         bool       `json:"is_syncing"`
	LastSyncTime      *time.Time `json:"last_sync_time,omitempty"`
	IsAutoSyncRunning bool       `json:"is_auto_sync_running"`
}

// ProcessResult reports the outcome of one queue processing pass.
type ProcessResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// PullRequest describes one reconciliation pull.
type PullRequest struct {
	Table  TableName
	UserID string
	// Since overrides the stored watermark when set.
	Since *time.Time
	// Limit caps the page size; zero uses the configured default.
	Limit int
}

// PullResult reports what a pull did to the local store.
type PullResult struct {
	Table     TableName  `json:"table"`
	Fetched   int        `json:"fetched"`
	Created   int        `json:"created"`
	Applied   int        `json:"applied"`
	Skipped   int        `json:"skipped"`
	Deleted   int        `json:"deleted"`
	Watermark *time.Time `json:"watermark,omitempty"`
	// Drained is false when the page cap stopped the pull before the window
	// since the watermark was exhausted.
	Drained bool `json:"drained"`
}

// SyncReport is the outcome of a manual pull-then-push sync.
type SyncReport struct {
	Pulls []PullResult  `json:"pulls"`
	Push  ProcessResult `json:"push"`
}
