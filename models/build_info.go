// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// BuildInfo is build metadata injected with -ldflags. Empty values are shown
// as "N/A".
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
