// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package validators checks request payloads before they reach the flow
// services, so malformed requests fail with a field-specific error instead
// of a failed chain submission.
package validators

import "context"

// Validator validates a request object. When fields are given, only those
// fields are checked; otherwise every field is.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
