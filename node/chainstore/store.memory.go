// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstore

import (
	"sync"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

type memoryEntry struct {
	header wire.BlockHeader
	vector *interlink.List
}

// MemoryStore keeps everything in maps. Interlink vectors are stored as they
// are, so their shared suffixes stay shared.
type MemoryStore struct {
	sync.RWMutex
	blocks map[chainhash.Hash]memoryEntry
	tip    *chainhash.Hash
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blocks: make(map[chainhash.Hash]memoryEntry),
	}
}

func (d *MemoryStore) Lookup(hash chainhash.Hash) (*wire.BlockHeader, *interlink.List, error) {
	d.RLock()
	entry, ok := d.blocks[hash]
	d.RUnlock()

	if !ok {
		return nil, nil, errors.Wrapf(ErrNotFound, "block %s", hash)
	}
	return entry.header.Copy(), entry.vector, nil
}

func (d *MemoryStore) Put(header *wire.BlockHeader, vector *interlink.List) error {
	hash := header.BlockHash()

	d.Lock()
	d.blocks[hash] = memoryEntry{header: *header, vector: vector}
	d.Unlock()

	log.Trace().Stringer("hash", hash).Int("vector_len", vector.Len()).Msg("block saved")
	return nil
}

func (d *MemoryStore) Tip() (chainhash.Hash, error) {
	d.RLock()
	defer d.RUnlock()

	if d.tip == nil {
		return chainhash.Hash{}, errors.Wrap(ErrNotFound, "tip")
	}
	return *d.tip, nil
}

func (d *MemoryStore) SetTip(hash chainhash.Hash) error {
	d.Lock()
	d.tip = &hash
	d.Unlock()
	return nil
}

// Len returns number of stored blocks.
func (d *MemoryStore) Len() int {
	d.RLock()
	defer d.RUnlock()
	return len(d.blocks)
}

func (d *MemoryStore) Close() error { return nil }
