// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package http is the relay's HTTP surface: a same-origin forwarding
// endpoint for blob uploads, for clients whose direct route to the
// publisher is blocked.
package http

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

// Handler forwards blob uploads to the configured publisher.
type Handler struct {
	publisher *resty.Client
	epochs    int
	logger    *logger.Logger
}

// NewHandler builds the relay handler. publisherURL is the upstream blob
// store publisher; epochs is the storage duration forwarded with every
// upload, zero meaning the publisher's default.
func NewHandler(publisherURL string, epochs int, timeout time.Duration, logger *logger.Logger) *Handler {
	client := resty.New().
		SetBaseURL(publisherURL).
		SetTimeout(timeout)

	logger.Info().Str("publisher", publisherURL).Msg("relay handler created")
	return &Handler{
		publisher: client,
		epochs:    epochs,
		logger:    logger,
	}
}
