// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the response messages shared by the document server's
// handlers and middleware, so that the API words each outcome the same way.
package app

const (
	// MsgInvalidJSON is returned when a request body is not valid JSON for
	// the route.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgUnreadableBody is returned when the request body cannot be read or
	// exceeds the size limit.
	MsgUnreadableBody = "failed to read request body"

	// MsgInvalidGzip is returned for a gzip Content-Encoding with a body that
	// does not inflate.
	MsgInvalidGzip = "invalid gzip data"

	MsgUnauthorized = "unauthorized"

	MsgNotFound = "not found"

	// MsgInternalServerError hides the cause of unexpected failures.
	MsgInternalServerError = "internal server error"

	MsgServiceUnavailable = "service unavailable"
)
