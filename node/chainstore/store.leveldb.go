// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstore

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

type levelDB struct {
	conn *leveldb.DB
}

// OpenLevelDB opens (or creates) a LevelDB backed store at the given path.
func OpenLevelDB(path string, net wire.JaxNet) (Store, error) {
	conn, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open leveldb at %s", path)
	}
	return newKVStore(&levelDB{conn: conn}, net)
}

// OpenLevelDBStorage creates a LevelDB backed store over the provided
// storage, e.g. storage.NewMemStorage().
func OpenLevelDBStorage(stor storage.Storage, net wire.JaxNet) (Store, error) {
	conn, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open leveldb")
	}
	return newKVStore(&levelDB{conn: conn}, net)
}

func (l *levelDB) get(key []byte) ([]byte, error) {
	value, err := l.conn.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (l *levelDB) has(key []byte) (bool, error) {
	return l.conn.Has(key, nil)
}

func (l *levelDB) write(pairs []kvPair) error {
	batch := new(leveldb.Batch)
	for _, pair := range pairs {
		batch.Put(pair.key, pair.value)
	}
	return l.conn.Write(batch, nil)
}

func (l *levelDB) close() error {
	return l.conn.Close()
}
