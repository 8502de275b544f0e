// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package envelope implements the GhostKey encryption envelope: the
// serialized, AES-256-GCM encrypted unit of content that is stored in the
// blob store and gated by an on-chain access pass.
//
// The wire layout is fixed:
//
//	[4-byte LE contentID length][contentID][12-byte IV][32-byte key field][ciphertext]
//
// The key field holds whatever the configured [KeyEscrow] produced for the
// content key. With [InlineEscrow] it is the raw key itself, which is an
// explicit simplification: a hardened deployment swaps in an escrow that
// stores a reference to threshold key shares instead, without changing the
// framing.
//
// The codec performs no authorization. Whether a credential is allowed to
// decrypt a given contentID is decided by the access package against the
// chain's authorization oracle.
package envelope
