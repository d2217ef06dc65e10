// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nipopow

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/pow"
)

func TestExtendInterlinkInvariant(t *testing.T) {
	chain, hashes := newTestChain(t, 150)
	bounds := chain.Params().PowParams.Bounds

	for i := 1; i < len(hashes); i++ {
		parent, parentVector, err := chain.Lookup(hashes[i-1])
		require.NoError(t, err)
		header, vector, err := chain.Lookup(hashes[i])
		require.NoError(t, err)

		assert.Equal(t, hashes[i-1], header.PrevBlock)
		assert.Equal(t, vector.Root(), header.InterlinkRoot)

		mu, err := pow.Level(hashes[i-1], parent.Bits, bounds)
		require.NoError(t, err)

		expectedLen := parentVector.Len()
		if mu+1 > expectedLen {
			expectedLen = mu + 1
		}
		require.Equal(t, expectedLen, vector.Len(), "block %d", i)

		links := vector.Flatten()
		for j := 0; j <= mu; j++ {
			assert.Equal(t, hashes[i-1], links[j], "block %d link %d", i, j)
		}
		assert.Equal(t, parentVector.Drop(mu+1).Flatten(), vector.Drop(mu+1).Flatten(), "block %d", i)
	}
}

func TestExtendSharesTail(t *testing.T) {
	_, headers, vectors := scenarioChain(t, 3, 0, 0)

	// Block 1 is level 0 so block 2 only replaces the first link.
	assert.Equal(t, 4, vectors[1].Len())
	assert.Equal(t, 4, vectors[2].Len())
	assert.Same(t, vectors[1].Drop(1), vectors[2].Drop(1))
	assert.Equal(t, headers[1].BlockHash(), vectors[2].Flatten()[0])
}

func TestLevelMonotonicity(t *testing.T) {
	chain, hashes := newTestChain(t, 200)
	bounds := chain.Params().PowParams.Bounds

	levels := make(map[chainhash.Hash]int, len(hashes))
	for _, hash := range hashes {
		header, _, err := chain.Lookup(hash)
		require.NoError(t, err)
		levels[hash], err = pow.Level(hash, header.Bits, bounds)
		require.NoError(t, err)
	}

	atLeast := func(k int) map[chainhash.Hash]struct{} {
		res := make(map[chainhash.Hash]struct{})
		for hash, level := range levels {
			if level >= k {
				res[hash] = struct{}{}
			}
		}
		return res
	}

	for k := 0; k < 10; k++ {
		lower, upper := atLeast(k), atLeast(k+1)
		for hash := range upper {
			assert.Contains(t, lower, hash, "level %d", k+1)
		}
	}

	// Every link of a vector points to a block of at least its position.
	for _, hash := range hashes {
		_, vector, err := chain.Lookup(hash)
		require.NoError(t, err)
		for i, link := range vector.Flatten() {
			assert.GreaterOrEqual(t, levels[link], i, "block %s link %d", hash, i)
		}
	}
}

func TestExtendErrors(t *testing.T) {
	ctx := context.Background()
	params := &chaincfg.RegTestParams
	genesis := params.GenesisBlock()
	fields := HeaderFields{Version: 1, Timestamp: time.Unix(1760832001, 0), Bits: genesis.Bits}

	t.Run("oracle gives up", func(t *testing.T) {
		_, _, err := Extend(ctx, genesis, nil, fields, failingOracle{}, params)
		assert.True(t, errors.Is(err, ErrProofOfWorkNotFound))
	})

	t.Run("oracle changes the parent", func(t *testing.T) {
		_, _, err := Extend(ctx, genesis, nil, fields, tamperingOracle{newOracle(params)}, params)
		assert.Error(t, err)
	})

	t.Run("bits outside the bounds", func(t *testing.T) {
		bad := fields
		bad.Bits = 0x21008000
		_, _, err := Extend(ctx, genesis, nil, bad, newOracle(params), params)
		assert.True(t, errors.Is(err, pow.ErrInvalidDifficultyEncoding))
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := Extend(cancelled, genesis, nil, fields, newOracle(params), params)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestNextVector(t *testing.T) {
	params := &chaincfg.RegTestParams
	genesis := params.GenesisBlock()

	// The regtest genesis is a level 3 block.
	vector, mu, err := NextVector(genesis, nil, params.PowParams.Bounds)
	require.NoError(t, err)
	assert.Equal(t, 3, mu)
	assert.Equal(t, interlink.FromSlice([]chainhash.Hash{
		genesis.BlockHash(), genesis.BlockHash(), genesis.BlockHash(), genesis.BlockHash(),
	}).Flatten(), vector.Flatten())
}
