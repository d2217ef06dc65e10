// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstore

import (
	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

var (
	// ErrNotFound is returned for unknown blocks and for the tip of an empty store.
	ErrNotFound = errors.New("not found")

	// ErrNetMismatch is returned when the store was created for another network.
	ErrNetMismatch = errors.New("store belongs to another network")

	// ErrCorrupted is returned when stored data can not be decoded.
	ErrCorrupted = errors.New("corrupted store entry")
)

const (
	DriverMemory  = "memory"
	DriverLevelDB = "leveldb"
	DriverBadger  = "badger"
)

// Store keeps block headers together with their interlink vectors.
// Implementations are safe for concurrent use.
type Store interface {
	// Lookup returns the header and the interlink vector of the block.
	Lookup(hash chainhash.Hash) (*wire.BlockHeader, *interlink.List, error)

	// Put saves the header and its interlink vector.
	Put(header *wire.BlockHeader, vector *interlink.List) error

	// Tip returns the hash of the best block, ErrNotFound if none was set.
	Tip() (chainhash.Hash, error)

	// SetTip updates the best block.
	SetTip(hash chainhash.Hash) error

	Close() error
}

// SupportedDrivers returns the names of the available backends.
func SupportedDrivers() []string {
	return []string{DriverMemory, DriverLevelDB, DriverBadger}
}

// Open creates or opens a store of the given kind. The path is ignored by the
// memory driver. Persistent stores remember the network they were created
// for and refuse to open for another one.
func Open(kind, path string, net wire.JaxNet) (Store, error) {
	switch kind {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverLevelDB:
		return OpenLevelDB(path, net)
	case DriverBadger:
		return OpenBadger(path, net)
	default:
		return nil, errors.Errorf("unknown store driver %q, supported: %v", kind, SupportedDrivers())
	}
}
