// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the sync client: local store, remote adapter, sync
// services, background workers and the optional sync console.
package client
