// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nipopow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/jaxnet/nipopow/node/chainstore"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

const maxTestAttempts = 1 << 20

// scriptedOracle solves headers sequentially from nonce zero. While levels
// are left it keeps searching until the hash has the next scripted level.
type scriptedOracle struct {
	params *chaincfg.Params
	levels []int
	solved int
}

func newOracle(params *chaincfg.Params, levels ...int) *scriptedOracle {
	return &scriptedOracle{params: params, levels: levels}
}

func (o *scriptedOracle) Solve(ctx context.Context, header *wire.BlockHeader) (*wire.BlockHeader, error) {
	want := -1
	if o.solved < len(o.levels) {
		want = o.levels[o.solved]
	}

	candidate := header.Copy()
	bounds := o.params.PowParams.Bounds
	for nonce := uint32(0); nonce < maxTestAttempts; nonce++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate.Nonce = nonce
		level, err := pow.Level(candidate.BlockHash(), candidate.Bits, bounds)
		if err != nil {
			continue
		}
		if want < 0 || level == want {
			o.solved++
			return candidate, nil
		}
	}
	return nil, ErrProofOfWorkNotFound
}

// failingOracle always gives up.
type failingOracle struct{}

func (failingOracle) Solve(context.Context, *wire.BlockHeader) (*wire.BlockHeader, error) {
	return nil, ErrProofOfWorkNotFound
}

// tamperingOracle solves the header and then moves it to another parent.
type tamperingOracle struct{ inner PowOracle }

func (o tamperingOracle) Solve(ctx context.Context, header *wire.BlockHeader) (*wire.BlockHeader, error) {
	solved, err := o.inner.Solve(ctx, header)
	if err != nil {
		return nil, err
	}
	solved.PrevBlock = chainhash.HashH([]byte("other parent"))
	return solved, nil
}

// lyingStore serves altered data for selected blocks.
type lyingStore struct {
	chainstore.Store
	header map[chainhash.Hash]*wire.BlockHeader
	vector map[chainhash.Hash]*interlink.List
}

func newLyingStore(store chainstore.Store) *lyingStore {
	return &lyingStore{
		Store:  store,
		header: make(map[chainhash.Hash]*wire.BlockHeader),
		vector: make(map[chainhash.Hash]*interlink.List),
	}
}

func (s *lyingStore) Lookup(hash chainhash.Hash) (*wire.BlockHeader, *interlink.List, error) {
	header, vector, err := s.Store.Lookup(hash)
	if err != nil {
		return nil, nil, err
	}
	if h, ok := s.header[hash]; ok {
		header = h
	}
	if v, ok := s.vector[hash]; ok {
		vector = v
	}
	return header, vector, nil
}

// newTestChain returns a regtest chain on a memory store extended by n blocks.
func newTestChain(t *testing.T, n int) (*Chain, []chainhash.Hash) {
	t.Helper()

	params := &chaincfg.RegTestParams
	chain, err := NewChain(params, chainstore.NewMemoryStore(), newOracle(params))
	require.NoError(t, err)

	hashes, err := chain.Generate(context.Background(), n, nil)
	require.NoError(t, err)
	require.Len(t, hashes, n)

	return chain, append([]chainhash.Hash{params.GenesisHash()}, hashes...)
}

// scenarioChain builds a chain from its own genesis where the levels of the
// blocks, genesis first, are exactly the given ones. Every block is stored.
func scenarioChain(t *testing.T, levels ...int) (chainstore.Store, []*wire.BlockHeader, []*interlink.List) {
	t.Helper()

	ctx := context.Background()
	params := &chaincfg.RegTestParams
	oracle := newOracle(params, levels...)
	store := chainstore.NewMemoryStore()

	genesis, err := oracle.Solve(ctx, wire.NewBlockHeader(1, chainhash.Hash{},
		chainhash.HashH([]byte("scenario")), chainhash.Hash{},
		time.Unix(1760832000, 0), params.PowParams.PowLimitBits, 0))
	require.NoError(t, err)
	require.NoError(t, store.Put(genesis, nil))

	headers := []*wire.BlockHeader{genesis}
	vectors := []*interlink.List{nil}
	for i := 1; i < len(levels); i++ {
		parent := headers[i-1]
		fields := HeaderFields{
			Version:    1,
			MerkleRoot: chainhash.HashH([]byte{byte(i)}),
			Timestamp:  parent.Timestamp.Add(time.Minute),
			Bits:       parent.Bits,
		}

		header, vector, err := Extend(ctx, parent, vectors[i-1], fields, oracle, params)
		require.NoError(t, err)
		require.NoError(t, store.Put(header, vector))

		headers = append(headers, header)
		vectors = append(vectors, vector)
	}

	for i, header := range headers {
		level, err := pow.Level(header.BlockHash(), header.Bits, params.PowParams.Bounds)
		require.NoError(t, err)
		require.Equal(t, levels[i], level, "block %d", i)
	}
	return store, headers, vectors
}

func hashesOf(headers ...*wire.BlockHeader) []chainhash.Hash {
	res := make([]chainhash.Hash, len(headers))
	for i := range headers {
		res[i] = headers[i].BlockHash()
	}
	return res
}
