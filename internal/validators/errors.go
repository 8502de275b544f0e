// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package validators

import "errors"

var (
	// ErrUnsupportedType is returned when the validator does not know the
	// request type it was handed.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrEmptyContent      = errors.New("content is empty")
	ErrInvalidMimeType   = errors.New("invalid mime type")
	ErrEmptyTitle        = errors.New("title is empty")
	ErrInvalidBasePrice  = errors.New("base price must be positive")
	ErrEmptyListingID    = errors.New("listing id is empty")
	ErrInvalidDuration   = errors.New("duration must be at least one hour")
	ErrEmptyAccessPassID = errors.New("access pass id is empty")
)
