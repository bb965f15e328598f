// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks document server input before it reaches the
// store.
//
// A Validator accepts the request models of the document API and an optional
// list of field names that scopes the check. With no field names the
// validator applies the default set for the model.
package validators

import "context"

// Validator validates a request model, optionally restricted to named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
