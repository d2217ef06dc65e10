// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cpuminer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/node/nipopow"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
	"golang.org/x/sync/errgroup"
)

const (
	// nonceSpace is the number of distinct nonces a block header can have.
	nonceSpace = uint64(1) << 32

	// defaultNumWorkers is used when the configuration leaves it unset.
	defaultNumWorkers = 1
)

// Config is a descriptor containing the cpu miner configuration.
type Config struct {
	// ChainParams identifies which chain parameters the cpu miner is
	// associated with.
	ChainParams *chaincfg.Params

	// Workers is the number of goroutines searching the nonce range.
	Workers int

	// MaxAttempts is the number of nonces tried for a single header before
	// giving up. Zero or anything above the nonce range means the whole
	// range.
	MaxAttempts uint64
}

// CPUMiner solves block headers on the CPU. It is the proof-of-work oracle
// used when the chain is extended.
type CPUMiner struct {
	cfg    Config
	hashes uint64
}

// New returns a miner for the given configuration.
func New(cfg Config) *CPUMiner {
	if cfg.Workers < 1 {
		cfg.Workers = defaultNumWorkers
	}
	if cfg.MaxAttempts == 0 || cfg.MaxAttempts > nonceSpace {
		cfg.MaxAttempts = nonceSpace
	}
	return &CPUMiner{cfg: cfg}
}

// HashesCompleted returns the total number of header hashes computed so far.
func (miner *CPUMiner) HashesCompleted() uint64 {
	return atomic.LoadUint64(&miner.hashes)
}

// Solve searches for a nonce that makes the header hash meet the target
// declared by its bits. The header passed in is not modified. The nonce
// range is split between the workers, each one starting from a random offset.
// It returns nipopow.ErrProofOfWorkNotFound when MaxAttempts nonces failed
// and the context error when ctx is done first.
func (miner *CPUMiner) Solve(ctx context.Context, header *wire.BlockHeader) (*wire.BlockHeader, error) {
	target, err := pow.DecodeBits(header.Bits, miner.cfg.ChainParams.PowParams.Bounds)
	if err != nil {
		return nil, err
	}

	// Choose a random nonce offset for this header.
	offset, err := wire.RandomUint64()
	if err != nil {
		log.Error().Err(err).Msg("Unexpected error while generating random nonce offset")
		offset = 0
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once    sync.Once
		solved  *wire.BlockHeader
		workers = uint64(miner.cfg.Workers)
		budget  = miner.cfg.MaxAttempts
		started = time.Now()
	)

	g, gctx := errgroup.WithContext(searchCtx)
	for w := uint64(0); w < workers; w++ {
		worker := w
		g.Go(func() error {
			candidate := header.Copy()
			hashesCompleted := uint64(0)
			defer func() { atomic.AddUint64(&miner.hashes, hashesCompleted) }()

			for i := worker; i < budget; i += workers {
				select {
				case <-gctx.Done():
					return nil
				default:
					// Non-blocking select to fall through
				}

				// Overflow wraps the nonce around 0 as provided by the Go spec.
				candidate.Nonce = uint32(offset + i)
				hash := candidate.BlockHash()
				hashesCompleted++

				// The block is solved when the new block hash is less
				// than the target difficulty.  Yay!
				if pow.HashToBig(&hash).Cmp(target) <= 0 {
					once.Do(func() {
						solved = candidate
						cancel()
					})
					return nil
				}
			}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	if solved != nil {
		log.Debug().Stringer("hash", solved.BlockHash()).Uint32("nonce", solved.Nonce).
			Dur("elapsed", time.Since(started)).Msg("Header solved")
		return solved, nil
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	return nil, errors.Wrapf(nipopow.ErrProofOfWorkNotFound,
		"no nonce below target for bits %08x in %d attempts", header.Bits, budget)
}
