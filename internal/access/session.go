// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package access implements the credential-gated decryption protocol: the
// state machine that takes an encrypted envelope plus an access-pass id,
// has the authorization oracle check the pass against the envelope's
// contentID, and only then lets the codec open the envelope.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/envelope"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

// ErrForeignContentID reports an envelope sealed under a different policy
// than this deployment's approval function.
var ErrForeignContentID = errors.New("content id not bound to this policy")

// State is one step of the protocol.
type State int

const (
	Idle State = iota
	Requesting
	AwaitingApproval
	Approved
	Denied
	Decrypting
	Ready
	Failed
)

var stateNames = map[State]string{
	Idle:             "idle",
	Requesting:       "requesting",
	AwaitingApproval: "awaiting_approval",
	Approved:         "approved",
	Denied:           "denied",
	Decrypting:       "decrypting",
	Ready:            "ready",
	Failed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the protocol cannot move on from s. A caller
// wanting another attempt starts a fresh Session; there are no automatic
// retries across transitions.
func (s State) Terminal() bool {
	return s == Denied || s == Ready || s == Failed
}

// Result is the outcome of a completed (Ready) session.
type Result struct {
	Content   []byte
	ContentID string
}

// Session runs one decryption request through the protocol. Not safe for
// concurrent use; a Session is single-shot.
type Session struct {
	codec  *envelope.Codec
	policy envelope.Policy
	oracle chain.Oracle
	log    *logger.Logger

	state State

	// onTransition, when set, observes every state change.
	onTransition func(from, to State)
}

// NewSession constructs an idle session.
func NewSession(codec *envelope.Codec, policy envelope.Policy, oracle chain.Oracle, log *logger.Logger) *Session {
	return &Session{codec: codec, policy: policy, oracle: oracle, log: log, state: Idle}
}

// OnTransition registers a hook observing state changes. Must be called
// before Request.
func (s *Session) OnTransition(hook func(from, to State)) {
	s.onTransition = hook
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Request drives the protocol to a terminal state: it extracts the
// envelope's contentID, verifies the id belongs to this policy, asks the
// oracle whether credentialID authorizes it, and decrypts on approval.
//
// Denial surfaces as [chain.ErrAccessDenied] (state Denied); a failed
// decrypt as [envelope.ErrDecryptionFailed] (state Failed). Both are
// terminal. No decryption is attempted unless the oracle approved.
func (s *Session) Request(ctx context.Context, env []byte, credentialID string) (Result, error) {
	if s.state != Idle {
		return Result{}, fmt.Errorf("session already used (state %s)", s.state)
	}
	s.transition(Requesting)

	contentID, err := envelope.ContentID(env)
	if err != nil {
		s.transition(Failed)
		return Result{}, err
	}
	if !s.policy.VerifyContentID(contentID) {
		s.transition(Denied)
		return Result{}, fmt.Errorf("%w: %s", ErrForeignContentID, contentID)
	}

	s.transition(AwaitingApproval)
	if err := s.oracle.Authorize(ctx, credentialID, contentID); err != nil {
		if errors.Is(err, chain.ErrAccessDenied) {
			s.transition(Denied)
			s.log.Info().Str("credential_id", credentialID).Str("content_id", contentID).Msg("decryption denied")
			return Result{}, err
		}
		// Oracle unreachable: the request never reached a verdict.
		s.transition(Failed)
		return Result{}, fmt.Errorf("authorization check: %w", err)
	}
	s.transition(Approved)

	s.transition(Decrypting)
	opened, err := s.codec.Decrypt(env, credentialID)
	if err != nil {
		s.transition(Failed)
		return Result{}, err
	}

	s.transition(Ready)
	return Result{Content: opened.Content, ContentID: opened.ContentID}, nil
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	if s.onTransition != nil {
		s.onTransition(from, to)
	}
}
