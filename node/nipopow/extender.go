/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package nipopow

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// PowOracle turns a candidate header into one that satisfies the target
// declared by its bits. Only the nonce may differ between the candidate and
// the returned header.
type PowOracle interface {
	Solve(ctx context.Context, header *wire.BlockHeader) (*wire.BlockHeader, error)
}

// HeaderFields are the caller controlled fields of a new header.
type HeaderFields struct {
	Version    int32
	MerkleRoot chainhash.Hash
	Timestamp  time.Time
	Bits       uint32
}

// NextVector returns the interlink vector of a child of the parent block.
// The parent is the newest block of every level up to its own, so it takes
// the first level+1 slots, the rest is shared with the parent's vector.
func NextVector(parent *wire.BlockHeader, parentVector *interlink.List, bounds pow.BitsBounds) (*interlink.List, int, error) {
	parentHash := parent.BlockHash()
	mu, err := pow.Level(parentHash, parent.Bits, bounds)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "parent %s", parentHash)
	}

	return interlink.ReplaceFirstN(parentVector, parentHash, mu+1), mu, nil
}

// Extend builds, solves and returns the child of the parent block together
// with the interlink vector committed by the child.
func Extend(ctx context.Context, parent *wire.BlockHeader, parentVector *interlink.List,
	fields HeaderFields, oracle PowOracle, params *chaincfg.Params) (*wire.BlockHeader, *interlink.List, error) {
	bounds := params.PowParams.Bounds
	if _, err := pow.DecodeBits(fields.Bits, bounds); err != nil {
		return nil, nil, err
	}

	vector, _, err := NextVector(parent, parentVector, bounds)
	if err != nil {
		return nil, nil, err
	}

	candidate := wire.NewBlockHeader(fields.Version, parent.BlockHash(), fields.MerkleRoot,
		vector.Root(), fields.Timestamp, fields.Bits, 0)

	solved, err := oracle.Solve(ctx, candidate)
	if err != nil {
		return nil, nil, err
	}

	if solved.PrevBlock != candidate.PrevBlock || solved.InterlinkRoot != candidate.InterlinkRoot ||
		solved.MerkleRoot != candidate.MerkleRoot || solved.Bits != candidate.Bits {
		return nil, nil, errors.New("oracle changed fields of the header other than the nonce")
	}

	hash := solved.BlockHash()
	if err = pow.CheckProofOfWork(hash, solved.Bits, bounds, params.PowParams.PowLimit); err != nil {
		return nil, nil, errors.Wrapf(err, "solved header %s", hash)
	}

	return solved, vector, nil
}
