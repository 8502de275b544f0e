// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

// maxUploadBytes caps relayed request bodies. Envelopes are small; anything
// bigger than this is not ours.
const maxUploadBytes = 64 << 20

func (h *Handler) relayUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		log.Err(err).Msg("reading upload body failed")
		writeUploadError(w, http.StatusRequestEntityTooLarge)
		return
	}

	req := h.publisher.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(body)
	if h.epochs > 0 {
		req.SetQueryParam("epochs", strconv.Itoa(h.epochs))
	}

	resp, err := req.Put("/v1/blobs")
	if err != nil {
		// The upstream never answered. The client gets a generic failure;
		// the upstream address stays out of the response.
		log.Err(err).Msg("publisher unreachable")
		writeUploadError(w, http.StatusServiceUnavailable)
		return
	}

	log.Debug().
		Int("status", resp.StatusCode()).
		Int("size", len(resp.Body())).
		Msg("upload relayed")

	w.Header().Set("Content-Type", resp.Header().Get("Content-Type"))
	w.WriteHeader(resp.StatusCode())
	w.Write(resp.Body()) //nolint:errcheck
}

func writeUploadError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": "upload failed"}) //nolint:errcheck
}
