// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

func TestRelayForwardsUpload(t *testing.T) {
	var gotBody []byte
	var gotEpochs string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/blobs", r.URL.Path)
		gotEpochs = r.URL.Query().Get("epochs")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"newlyCreated":{"blobObject":{"blobId":"abc123"}}}`))
	}))
	defer upstream.Close()

	h := NewHandler(upstream.URL, 5, time.Second, logger.Nop())
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/blobs", bytes.NewReader([]byte("envelope-bytes")))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"newlyCreated":{"blobObject":{"blobId":"abc123"}}}`, string(body))
	assert.Equal(t, []byte("envelope-bytes"), gotBody)
	assert.Equal(t, "5", gotEpochs)
}

func TestRelayCopiesUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	h := NewHandler(upstream.URL, 0, time.Second, logger.Nop())
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/blobs", bytes.NewReader([]byte("x")))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRelayUpstreamDownIsGeneric503(t *testing.T) {
	// Point the handler at a closed port.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	h := NewHandler(deadURL, 0, 200*time.Millisecond, logger.Nop())
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/blobs", bytes.NewReader([]byte("x")))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"error":"upload failed"}`, string(body))
	assert.NotContains(t, string(body), deadURL,
		"upstream address must not leak to clients")
}

func TestRelayRejectsOtherMethods(t *testing.T) {
	h := NewHandler("http://unused", 0, time.Second, logger.Nop())
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		req, _ := http.NewRequest(method, srv.URL+"/v1/blobs", nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
	}
}
