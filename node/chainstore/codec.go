// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstore

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// Key layout:
//
//	h|blockHash -> header (112 bytes) | vectorID (32 bytes)
//	n|nodeID    -> value (32 bytes) | nextID (32 bytes)
//	t           -> tip hash
//	m           -> network magic
//
// nodeID = DoubleHashH(value | nextID) and the empty list has the zero ID,
// so every suffix shared between interlink vectors is stored only once.
const (
	headerPrefix = 'h'
	nodePrefix   = 'n'

	headerEntrySize = wire.MaxBlockHeaderPayload + chainhash.HashSize
	nodeEntrySize   = chainhash.HashSize * 2

	// maxVectorLen bounds the walk over stored nodes: a level can not exceed
	// the bit size of the hash.
	maxVectorLen = chainhash.HashSize*8 + 1
)

var (
	tipKey = []byte{'t'}
	netKey = []byte{'m'}
)

type kvPair struct {
	key   []byte
	value []byte
}

// kvBackend is the minimal key-value API a persistent store is built on.
// get must return ErrNotFound for missing keys; write applies all pairs
// atomically.
type kvBackend interface {
	get(key []byte) ([]byte, error)
	has(key []byte) (bool, error)
	write(pairs []kvPair) error
	close() error
}

func headerKey(hash chainhash.Hash) []byte {
	return append([]byte{headerPrefix}, hash[:]...)
}

func nodeKey(id chainhash.Hash) []byte {
	return append([]byte{nodePrefix}, id[:]...)
}

func nodeValue(value, next chainhash.Hash) []byte {
	raw := make([]byte, 0, nodeEntrySize)
	raw = append(raw, value[:]...)
	return append(raw, next[:]...)
}

func nodeID(value, next chainhash.Hash) chainhash.Hash {
	return chainhash.HashConcat(&value, &next)
}

// vectorIDs returns the IDs of every suffix of values; ids[len(values)] is
// the zero ID of the empty list.
func vectorIDs(values []chainhash.Hash) []chainhash.Hash {
	ids := make([]chainhash.Hash, len(values)+1)
	for i := len(values) - 1; i >= 0; i-- {
		ids[i] = nodeID(values[i], ids[i+1])
	}
	return ids
}

// kvStore implements Store over a kvBackend.
type kvStore struct {
	db kvBackend

	// writes are serialized so the "node already present" shortcut in Put
	// never observes half of a concurrent batch.
	mtx sync.Mutex
}

func newKVStore(db kvBackend, net wire.JaxNet) (*kvStore, error) {
	store := &kvStore{db: db}
	if err := store.checkNet(net); err != nil {
		_ = db.close()
		return nil, err
	}
	return store, nil
}

func (s *kvStore) checkNet(net wire.JaxNet) error {
	raw, err := s.db.get(netKey)
	if errors.Is(err, ErrNotFound) {
		buf := bytes.NewBuffer(make([]byte, 0, 4))
		if err = wire.WriteElement(buf, net); err != nil {
			return err
		}
		return s.db.write([]kvPair{{key: netKey, value: buf.Bytes()}})
	}
	if err != nil {
		return err
	}

	var stored wire.JaxNet
	if err = wire.ReadElement(bytes.NewReader(raw), &stored); err != nil {
		return errors.Wrap(ErrCorrupted, err.Error())
	}
	if stored != net {
		return errors.Wrapf(ErrNetMismatch, "store net %s, requested %s", stored, net)
	}
	return nil
}

func (s *kvStore) Lookup(hash chainhash.Hash) (*wire.BlockHeader, *interlink.List, error) {
	raw, err := s.db.get(headerKey(hash))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "block %s", hash)
	}
	if len(raw) != headerEntrySize {
		return nil, nil, errors.Wrapf(ErrCorrupted, "block %s: entry of %d bytes", hash, len(raw))
	}

	header := new(wire.BlockHeader)
	if err = header.Deserialize(bytes.NewReader(raw[:wire.MaxBlockHeaderPayload])); err != nil {
		return nil, nil, errors.Wrapf(ErrCorrupted, "block %s: %v", hash, err)
	}

	var id chainhash.Hash
	copy(id[:], raw[wire.MaxBlockHeaderPayload:])

	var values []chainhash.Hash
	for !id.IsZero() {
		if len(values) >= maxVectorLen {
			return nil, nil, errors.Wrapf(ErrCorrupted, "block %s: interlink vector is too long", hash)
		}

		node, err := s.db.get(nodeKey(id))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "block %s: interlink node %s", hash, id)
		}
		if len(node) != nodeEntrySize || chainhash.DoubleHashH(node) != id {
			return nil, nil, errors.Wrapf(ErrCorrupted, "block %s: interlink node %s", hash, id)
		}

		var value chainhash.Hash
		copy(value[:], node[:chainhash.HashSize])
		copy(id[:], node[chainhash.HashSize:])
		values = append(values, value)
	}

	return header, interlink.FromSlice(values), nil
}

func (s *kvStore) Put(header *wire.BlockHeader, vector *interlink.List) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	values := vector.Flatten()
	ids := vectorIDs(values)

	pairs := make([]kvPair, 0, len(values)+1)
	for i := range values {
		// nodes are always written together with their tails
		exists, err := s.db.has(nodeKey(ids[i]))
		if err != nil {
			return err
		}
		if exists {
			break
		}
		pairs = append(pairs, kvPair{key: nodeKey(ids[i]), value: nodeValue(values[i], ids[i+1])})
	}
	newNodes := len(pairs)

	entry := make([]byte, 0, headerEntrySize)
	entry = append(entry, header.Bytes()...)
	entry = append(entry, ids[0][:]...)

	hash := header.BlockHash()
	pairs = append(pairs, kvPair{key: headerKey(hash), value: entry})
	if err := s.db.write(pairs); err != nil {
		return errors.Wrapf(err, "unable to save block %s", hash)
	}

	log.Debug().Stringer("hash", hash).Int("vector_len", len(values)).
		Int("new_nodes", newNodes).Msg("block saved")
	return nil
}

func (s *kvStore) Tip() (chainhash.Hash, error) {
	raw, err := s.db.get(tipKey)
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "tip")
	}

	var tip chainhash.Hash
	if err = tip.SetBytes(raw); err != nil {
		return chainhash.Hash{}, errors.Wrap(ErrCorrupted, err.Error())
	}
	return tip, nil
}

func (s *kvStore) SetTip(hash chainhash.Hash) error {
	return s.db.write([]kvPair{{key: tipKey, value: hash.CloneBytes()}})
}

func (s *kvStore) Close() error {
	return s.db.close()
}
