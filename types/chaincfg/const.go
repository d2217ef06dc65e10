/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package chaincfg

const (
	// DefaultProofM is the default number of superblocks per level.
	DefaultProofM = 15

	// DefaultProofK is the default number of recent blocks kept in the proof.
	DefaultProofK = 0

	// genesisTimestamp is Mon 19 Oct 2026 00:00:00 UTC.
	genesisTimestamp = 1760832000

	// genesisHeadline is the content committed by every genesis header.
	genesisHeadline = "The Times 19/Oct/2026 succinct proofs of proof of work"
)

// Bounds of the compact base shared by all networks. Bases below 0x8000 are not
// normalised and above 0x7fffff would set the sign bit.
const (
	minBase = 0x8000
	maxBase = 0x7fffff
)
