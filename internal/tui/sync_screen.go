// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
)

const consoleHotKeys = "s: sync  a: auto-sync  r: retry  c: copy error  ↑/↓: select  v: version  q: quit"

func (m consoleModel) View() string {
	if m.showError {
		return appStyle.Render(m.errorOverlay.View())
	}
	if m.showInfo {
		return appStyle.Render(m.renderBuildInfo())
	}

	var b strings.Builder

	state := "idle"
	if m.status.IsSyncing {
		state = m.spinner.View() + " syncing"
	}
	autoSync := "off"
	if m.status.IsAutoSyncRunning {
		autoSync = "on"
	}

	fmt.Fprintf(&b, "Status:     %s\n", state)
	fmt.Fprintf(&b, "Auto-sync:  %s\n", autoSync)
	fmt.Fprintf(&b, "Last sync:  %s\n", timeOrNever(m.status.LastSyncTime))
	fmt.Fprintf(&b, "Pending:    %d\n", m.pending)

	if m.lastReport != nil {
		b.WriteString("\n")
		b.WriteString(m.renderReport())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFailed())

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.notice)
		b.WriteString("\n")
	}

	return appStyle.Render(renderPage("GIG-SYNC CONSOLE", b.String(), consoleHotKeys))
}

func (m consoleModel) renderReport() string {
	var b strings.Builder

	b.WriteString("Last manual sync:\n")
	for _, pull := range m.lastReport.Pulls {
		fmt.Fprintf(&b, "  pull %-13s fetched %d, created %d, applied %d, deleted %d, skipped %d\n",
			pull.Table, pull.Fetched, pull.Created, pull.Applied, pull.Deleted, pull.Skipped)
	}
	push := m.lastReport.Push
	fmt.Fprintf(&b, "  push               processed %d, failed %d, remaining %d\n", push.Processed, push.Failed, push.Remaining)

	return b.String()
}

func (m consoleModel) renderFailed() string {
	if len(m.failed) == 0 {
		return "Failed entries: none\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Failed entries (%d):\n", len(m.failed))
	for i, entry := range m.failed {
		line := fmt.Sprintf("#%-5d %-13s %-6s %-12s attempts %d  %s",
			entry.ID,
			entry.TableName,
			entry.Operation,
			fitText(entry.LocalRecordID, 12),
			entry.Attempts,
			fitText(valueOrDash(entry.LastError), 40),
		)
		if i == m.idx {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m consoleModel) renderBuildInfo() string {
	data := fmt.Sprintf("Application: gig-sync\nVersion: %s\nDate: %s\nCommit: %s",
		m.buildInfo.Version, m.buildInfo.Date, m.buildInfo.Commit)
	return renderPage("ABOUT", data, "esc: back")
}
