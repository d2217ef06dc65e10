/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package nipopow

import (
	"fmt"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

var (
	// ErrInterlinkAuthenticationMismatch is returned when a header, an
	// interlink vector or an authentication path does not match the
	// commitment it is checked against.
	ErrInterlinkAuthenticationMismatch = errors.New("interlink authentication mismatch")

	// ErrTipMismatch is returned when the proof does not start at the
	// expected tip.
	ErrTipMismatch = errors.New("proof does not start at the expected tip")

	// ErrGenesisMismatch is returned when the proof does not end at the
	// expected genesis.
	ErrGenesisMismatch = errors.New("proof does not end at the expected genesis")

	// ErrProofOfWorkNotFound is returned by an oracle which could not solve
	// the header within its budget. The caller may retry with a larger
	// budget or other header fields.
	ErrProofOfWorkNotFound = errors.New("proof of work not found")
)

// ProofError describes a proof that failed verification. Step is the
// position of the offending entry, Hash is its block hash.
type ProofError struct {
	Step int
	Hash chainhash.Hash
	Err  error
}

func (e *ProofError) Error() string {
	return fmt.Sprintf("proof entry %d (%s): %v", e.Step, e.Hash, e.Err)
}

func (e *ProofError) Unwrap() error { return e.Err }
