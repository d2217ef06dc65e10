/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package nipopow

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/node/chainstore"
	"gitlab.com/jaxnet/nipopow/node/metrics"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// FieldsFunc returns the fields of the next header for the given parent.
type FieldsFunc func(parent *wire.BlockHeader) HeaderFields

// Chain is a sequence of blocks growing from the network genesis. Every
// finalised block is persisted with its interlink vector and becomes the
// stored tip. Extension is serialised by the chain.
type Chain struct {
	params *chaincfg.Params
	store  chainstore.Store
	oracle PowOracle

	mtx         sync.RWMutex
	tip         *wire.BlockHeader
	tipVector   *interlink.List
	tipLevel    int
	contentRoot chainhash.Hash
	extended    uint64
}

// NewChain stores the genesis of the network and returns a chain with the
// genesis as its tip.
func NewChain(params *chaincfg.Params, store chainstore.Store, oracle PowOracle) (*Chain, error) {
	genesis := params.GenesisBlock()
	hash := genesis.BlockHash()

	if err := store.Put(genesis, nil); err != nil {
		return nil, errors.Wrap(err, "can't store genesis")
	}
	if err := store.SetTip(hash); err != nil {
		return nil, errors.Wrap(err, "can't set tip to genesis")
	}

	log.Debug().Str("net", params.Name).Stringer("genesis", hash).Msg("New chain")
	return newChain(params, store, oracle, genesis, nil)
}

// Resume continues the chain stored in the store. An empty store starts a
// new chain.
func Resume(params *chaincfg.Params, store chainstore.Store, oracle PowOracle) (*Chain, error) {
	tipHash, err := store.Tip()
	if errors.Is(err, chainstore.ErrNotFound) {
		return NewChain(params, store, oracle)
	}
	if err != nil {
		return nil, err
	}

	header, vector, err := lookupAuthenticated(store, tipHash)
	if err != nil {
		return nil, errors.Wrap(err, "can't load tip")
	}

	log.Debug().Str("net", params.Name).Stringer("tip", tipHash).Msg("Chain resumed")
	return newChain(params, store, oracle, header, vector)
}

func newChain(params *chaincfg.Params, store chainstore.Store, oracle PowOracle,
	tip *wire.BlockHeader, vector *interlink.List) (*Chain, error) {
	level, err := pow.Level(tip.BlockHash(), tip.Bits, params.PowParams.Bounds)
	if err != nil {
		return nil, err
	}

	return &Chain{
		params:      params,
		store:       store,
		oracle:      oracle,
		tip:         tip,
		tipVector:   vector,
		tipLevel:    level,
		contentRoot: chaincfg.GenesisMerkleRoot(),
	}, nil
}

// Params returns the network parameters of the chain.
func (c *Chain) Params() *chaincfg.Params { return c.params }

// Store returns the store backing the chain.
func (c *Chain) Store() chainstore.Store { return c.store }

// Lookup returns the stored header and interlink vector of the block.
func (c *Chain) Lookup(hash chainhash.Hash) (*wire.BlockHeader, *interlink.List, error) {
	return c.store.Lookup(hash)
}

// Tip returns a copy of the best header and its interlink vector.
func (c *Chain) Tip() (*wire.BlockHeader, *interlink.List) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.tip.Copy(), c.tipVector
}

// SetContentRoot sets the merkle root used by DefaultFields.
func (c *Chain) SetContentRoot(root chainhash.Hash) {
	c.mtx.Lock()
	c.contentRoot = root
	c.mtx.Unlock()
}

// DefaultFields keeps the difficulty of the parent and moves the timestamp
// one block interval forward.
func (c *Chain) DefaultFields(parent *wire.BlockHeader) HeaderFields {
	c.mtx.RLock()
	root := c.contentRoot
	c.mtx.RUnlock()

	return HeaderFields{
		Version:    parent.Version,
		MerkleRoot: root,
		Timestamp:  parent.Timestamp.Add(c.params.PowParams.TargetTimePerBlock),
		Bits:       parent.Bits,
	}
}

// Extend appends a new block with the given fields on top of the tip.
func (c *Chain) Extend(ctx context.Context, fields HeaderFields) (*wire.BlockHeader, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	header, vector, err := Extend(ctx, c.tip, c.tipVector, fields, c.oracle, c.params)
	if err != nil {
		return nil, err
	}

	hash := header.BlockHash()
	level, err := pow.Level(hash, header.Bits, c.params.PowParams.Bounds)
	if err != nil {
		return nil, err
	}

	if err = c.store.Put(header, vector); err != nil {
		return nil, errors.Wrapf(err, "can't store block %s", hash)
	}
	if err = c.store.SetTip(hash); err != nil {
		return nil, errors.Wrapf(err, "can't set tip to %s", hash)
	}

	c.tip, c.tipVector, c.tipLevel = header, vector, level
	c.extended++
	metrics.ObserveBlock(level)

	log.Debug().Stringer("hash", hash).Int("level", level).Int("interlink", vector.Len()).
		Msg("Chain extended")
	return header.Copy(), nil
}

// Generate extends the chain n times. A nil fn means DefaultFields.
// It returns the hashes of the new blocks in chain order.
func (c *Chain) Generate(ctx context.Context, n int, fn FieldsFunc) ([]chainhash.Hash, error) {
	if fn == nil {
		fn = c.DefaultFields
	}

	hashes := make([]chainhash.Hash, 0, n)
	for i := 0; i < n; i++ {
		parent, _ := c.Tip()
		header, err := c.Extend(ctx, fn(parent))
		if err != nil {
			return hashes, errors.Wrapf(err, "block %d of %d", i+1, n)
		}
		hashes = append(hashes, header.BlockHash())
	}

	if len(hashes) > 0 {
		log.Info().Int("blocks", n).Stringer("tip", hashes[len(hashes)-1]).Msg("Blocks generated")
	}
	return hashes, nil
}

// Fork returns a chain sharing the store and the oracle whose tip is the
// stored block with the given hash. The stored tip moves once the branch is
// extended.
func (c *Chain) Fork(from chainhash.Hash) (*Chain, error) {
	header, vector, err := lookupAuthenticated(c.store, from)
	if err != nil {
		return nil, errors.Wrapf(err, "can't fork from %s", from)
	}

	fork, err := newChain(c.params, c.store, c.oracle, header, vector)
	if err != nil {
		return nil, err
	}

	c.mtx.RLock()
	fork.contentRoot = c.contentRoot
	c.mtx.RUnlock()

	log.Debug().Stringer("from", from).Msg("Chain forked")
	return fork, nil
}

// Ancestor walks back depth blocks from the tip. It stops at the genesis.
func (c *Chain) Ancestor(depth int) (*wire.BlockHeader, error) {
	header, _ := c.Tip()
	genesis := c.params.GenesisHash()

	for i := 0; i < depth && header.BlockHash() != genesis; i++ {
		parent, _, err := c.store.Lookup(header.PrevBlock)
		if err != nil {
			return nil, errors.Wrapf(err, "ancestor %d of the tip", i+1)
		}
		header = parent
	}
	return header, nil
}

// Builder returns a proof builder over the chain store with the default
// security parameters of the network.
func (c *Chain) Builder() *Builder {
	return NewBuilder(c.store, c.params)
}

// NetName returns the name of the chain network.
func (c *Chain) NetName() string { return c.params.Name }

// Stats returns values exported as chain metrics.
func (c *Chain) Stats() map[string]float64 {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return map[string]float64{
		"tip_level":       float64(c.tipLevel),
		"interlink_len":   float64(c.tipVector.Len()),
		"blocks_extended": float64(c.extended),
		"tip_timestamp":   float64(c.tip.Timestamp.Unix()),
	}
}

// lookupAuthenticated returns the block only when the stored header hashes
// to the requested hash and the stored vector matches the header commitment.
func lookupAuthenticated(lookup HeaderLookup, hash chainhash.Hash) (*wire.BlockHeader, *interlink.List, error) {
	header, vector, err := lookup.Lookup(hash)
	if err != nil {
		return nil, nil, err
	}

	if got := header.BlockHash(); got != hash {
		return nil, nil, errors.Wrapf(ErrInterlinkAuthenticationMismatch,
			"requested %s, got header %s", hash, got)
	}

	if root := vector.Root(); root != header.InterlinkRoot {
		return nil, nil, errors.Wrapf(ErrInterlinkAuthenticationMismatch,
			"block %s: vector of %d commits to %s, header has %s",
			hash, vector.Len(), root, header.InterlinkRoot)
	}

	return header, vector, nil
}
