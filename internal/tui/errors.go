// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/gig-sync/internal/service"
)

// humanizeError turns sync failures into console messages.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrOffline):
		return "Offline: the document server is unreachable"
	case errors.Is(err, service.ErrSyncInProgress):
		return "A sync pass is already running"
	case errors.Is(err, service.ErrEntryNotFailed):
		return "The entry is no longer failed"
	case errors.Is(err, service.ErrEntrySuperseded):
		return "A newer change of this record is already queued"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the document server is unavailable"
	}

	return err.Error()
}
