/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package nipopow

import (
	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/node/metrics"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// HeaderLookup gives access to stored headers and their interlink vectors.
// The builder does not trust it: every returned block is checked against
// the commitment that led to it.
type HeaderLookup interface {
	Lookup(hash chainhash.Hash) (*wire.BlockHeader, *interlink.List, error)
}

// Builder samples a proof for a tip from the blocks known to Lookup.
//
// Starting at the tip on level 0 the builder follows the interlink vectors
// back to the genesis. Every visited block is counted on all levels from the
// current one up to its own level, and once M blocks were seen on the next
// level the builder climbs. When the current level reaches the top of a
// vector the rest of the proof follows the last vector entry down to the
// genesis. Climbing starts only when the proof holds K blocks, so the K most
// recent blocks are always included.
//
// A Builder never writes to Lookup and is safe for concurrent use.
type Builder struct {
	Lookup  HeaderLookup
	Genesis chainhash.Hash
	Bounds  pow.BitsBounds
	M       int
	K       int
}

// NewBuilder returns a builder with the genesis, the bit bounds and the
// default security parameters of the network.
func NewBuilder(lookup HeaderLookup, params *chaincfg.Params) *Builder {
	return &Builder{
		Lookup:  lookup,
		Genesis: params.GenesisHash(),
		Bounds:  params.PowParams.Bounds,
		M:       params.ProofParams.M,
		K:       params.ProofParams.K,
	}
}

// WithSecurity returns a copy of the builder using the given m and k.
func (b *Builder) WithSecurity(m, k int) *Builder {
	clone := *b
	clone.M, clone.K = m, k
	return &clone
}

// Build returns the proof for the block with the given hash. The first entry
// is the tip with an empty path, the last one is the genesis.
func (b *Builder) Build(tipHash chainhash.Hash) (*wire.MsgProof, error) {
	if b.M < 1 {
		return nil, errors.Errorf("invalid security parameter m=%d", b.M)
	}
	if b.K < 0 {
		return nil, errors.Errorf("invalid security parameter k=%d", b.K)
	}

	header, vector, err := lookupAuthenticated(b.Lookup, tipHash)
	if err != nil {
		return nil, errors.Wrap(err, "tip")
	}

	var (
		proof  = wire.NewMsgProof(16)
		path   interlink.AuthPath
		hash   = tipHash
		counts = make(map[int]int)
		mu     = 0
		tail   = false
	)

	for {
		proof.AddEntry(header, path)
		if hash == b.Genesis {
			break
		}

		if proof.Len() > wire.MaxProofEntries {
			return nil, errors.Errorf("proof exceeds %d entries", wire.MaxProofEntries)
		}

		links := vector.Flatten()
		if len(links) == 0 {
			return nil, errors.Wrapf(ErrGenesisMismatch,
				"block %s has no interlinks and is not the genesis %s", hash, b.Genesis)
		}

		if !tail {
			level, err := pow.Level(hash, header.Bits, b.Bounds)
			if err != nil {
				return nil, errors.Wrapf(err, "block %s", hash)
			}
			for l := mu; l <= level; l++ {
				counts[l]++
			}
			for proof.Len() >= b.K && counts[mu+1] >= b.M {
				mu++
			}
			tail = mu >= len(links)-1
		}

		index := mu
		if tail {
			index = len(links) - 1
		}

		path, err = interlink.BuildPath(links, index)
		if err != nil {
			return nil, err
		}
		if got, err := interlink.IndexFromPath(len(links), path); err != nil || got != index {
			return nil, errors.Wrapf(ErrInterlinkAuthenticationMismatch,
				"path of block %s leads to %d instead of %d", hash, got, index)
		}

		next := links[index]
		if _, ok := interlink.VerifyPath(next, header.InterlinkRoot, path); !ok {
			return nil, errors.Wrapf(ErrInterlinkAuthenticationMismatch,
				"interlink %d of block %s", index, hash)
		}

		header, vector, err = lookupAuthenticated(b.Lookup, next)
		if err != nil {
			return nil, errors.Wrapf(err, "interlink %d of block %s", index, hash)
		}
		hash = next
	}

	metrics.ObserveProof(proof.Len())
	log.Debug().Stringer("tip", tipHash).Int("entries", proof.Len()).Int("level", mu).
		Int("m", b.M).Int("k", b.K).Msg("Proof built")
	return proof, nil
}
