// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstore

import (
	badger "github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

type badgerDB struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger backed store in the given directory.
func OpenBadger(path string, net wire.JaxNet) (Store, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(badgerLogger{}))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open badger at %s", path)
	}
	return newKVStore(&badgerDB{db: db}, net)
}

func (b *badgerDB) get(key []byte) (value []byte, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (b *badgerDB) has(key []byte) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (b *badgerDB) write(pairs []kvPair) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, pair := range pairs {
			if err := txn.Set(pair.key, pair.value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerDB) close() error {
	return b.db.Close()
}

// badgerLogger routes badger messages into the package logger.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	log.Trace().Msgf(format, args...)
}
