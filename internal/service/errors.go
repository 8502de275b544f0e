// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package service

import (
	"fmt"

	"github.com/ghostkey-labs/go-ghostkey/models"
)

// StageError tags a failure with the flow stage it happened in, so the CLI
// can tell "your upload never reached the store" apart from "your rental
// expired" without string matching.
type StageError struct {
	Stage models.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage models.Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the stage a StageError in err's chain was tagged with,
// or an empty Stage when err carries none.
func StageOf(err error) models.Stage {
	for err != nil {
		if se, ok := err.(*StageError); ok {
			return se.Stage
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
