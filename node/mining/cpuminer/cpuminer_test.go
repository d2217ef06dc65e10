// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cpuminer

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/jaxnet/nipopow/node/nipopow"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

func candidate(bits uint32) *wire.BlockHeader {
	return wire.NewBlockHeader(1,
		chainhash.HashH([]byte("parent")),
		chainhash.HashH([]byte("content")),
		chainhash.HashH([]byte("interlink")),
		time.Unix(1760832600, 0), bits, 0)
}

func TestSolve(t *testing.T) {
	params := &chaincfg.RegTestParams
	for _, workers := range []int{1, 4} {
		miner := New(Config{ChainParams: params, Workers: workers})

		header := candidate(params.PowParams.PowLimitBits)
		solved, err := miner.Solve(context.Background(), header)
		require.NoError(t, err)

		err = pow.CheckProofOfWork(solved.BlockHash(), solved.Bits, params.PowParams.Bounds, params.PowParams.PowLimit)
		assert.NoError(t, err)

		// only the nonce may change
		expected := header.Copy()
		expected.Nonce = solved.Nonce
		assert.Equal(t, expected, solved)
		assert.Equal(t, uint32(0), header.Nonce)
		assert.NotZero(t, miner.HashesCompleted())
	}
}

func TestSolveBudgetExhausted(t *testing.T) {
	params := &chaincfg.MainNetParams
	miner := New(Config{ChainParams: params, Workers: 2, MaxAttempts: 8})

	_, err := miner.Solve(context.Background(), candidate(params.PowParams.PowLimitBits))
	assert.True(t, errors.Is(err, nipopow.ErrProofOfWorkNotFound), "%v", err)
	assert.Equal(t, uint64(8), miner.HashesCompleted())
}

func TestSolveCanceled(t *testing.T) {
	params := &chaincfg.MainNetParams
	miner := New(Config{ChainParams: params, Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := miner.Solve(ctx, candidate(params.PowParams.PowLimitBits))
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
}

func TestSolveInvalidBits(t *testing.T) {
	miner := New(Config{ChainParams: &chaincfg.RegTestParams})

	_, err := miner.Solve(context.Background(), candidate(0x21008000))
	assert.True(t, errors.Is(err, pow.ErrInvalidDifficultyEncoding), "%v", err)
}

func TestNewDefaults(t *testing.T) {
	miner := New(Config{ChainParams: &chaincfg.RegTestParams})
	assert.Equal(t, defaultNumWorkers, miner.cfg.Workers)
	assert.Equal(t, nonceSpace, miner.cfg.MaxAttempts)
}
