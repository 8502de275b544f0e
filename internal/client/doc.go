// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package client assembles the ghostkey CLI application: it wires the
// identity store, the chain client, the blob store and the flow services
// from configuration and dispatches the command named on the command line.
package client
