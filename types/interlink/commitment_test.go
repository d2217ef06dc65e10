/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package interlink

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

func vectorOf(n int) []chainhash.Hash {
	res := make([]chainhash.Hash, n)
	for i := range res {
		res[i] = h(fmt.Sprintf("entry_%d", i))
	}
	return res
}

func TestCommitBoundaries(t *testing.T) {
	assert.Equal(t, chainhash.ZeroHash, Commit(nil))
	assert.Equal(t, chainhash.ZeroHash, Commit([]chainhash.Hash{}))

	single := h("single")
	assert.Equal(t, single, Commit([]chainhash.Hash{single}))
}

func TestCommitTopology(t *testing.T) {
	v := vectorOf(5)

	pair := func(a, b chainhash.Hash) chainhash.Hash { return chainhash.HashConcat(&a, &b) }

	assert.Equal(t, pair(v[0], v[1]), Commit(v[:2]))
	assert.Equal(t, pair(v[0], pair(v[1], v[2])), Commit(v[:3]))
	assert.Equal(t, pair(pair(v[0], v[1]), pair(v[2], v[3])), Commit(v[:4]))
	assert.Equal(t, pair(pair(v[0], v[1]), pair(v[2], pair(v[3], v[4]))), Commit(v))
}

func TestPathRoundTrip(t *testing.T) {
	for n := 1; n <= 17; n++ {
		vector := vectorOf(n)
		root := Commit(vector)

		for i := 0; i < n; i++ {
			t.Run(fmt.Sprintf("len_%d_index_%d", n, i), func(t *testing.T) {
				path, err := BuildPath(vector, i)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(path), depth(n))

				idx, ok := VerifyPath(vector[i], root, path)
				assert.True(t, ok)
				if n&(n-1) == 0 {
					assert.Equal(t, i, idx)
				}

				exact, err := IndexFromPath(n, path)
				require.NoError(t, err)
				assert.Equal(t, i, exact)
			})
		}
	}
}

func TestPathTamper(t *testing.T) {
	vector := vectorOf(7)
	root := Commit(vector)

	for i := range vector {
		path, err := BuildPath(vector, i)
		require.NoError(t, err)

		leaf := vector[i]
		leaf[5] ^= 0x01
		_, ok := VerifyPath(leaf, root, path)
		assert.False(t, ok, "tampered leaf %d verified", i)

		for j := range path {
			tampered := path.Copy()
			tampered[j].Sibling[31] ^= 0x80
			_, ok = VerifyPath(vector[i], root, tampered)
			assert.False(t, ok, "tampered sibling %d of leaf %d verified", j, i)

			flipped := path.Copy()
			flipped[j].Side ^= 1
			_, ok = VerifyPath(vector[i], root, flipped)
			assert.False(t, ok, "flipped side %d of leaf %d verified", j, i)
		}

		_, ok = VerifyPath(vector[i], h("other root"), path)
		assert.False(t, ok)
	}
}

func TestSinglePathIsEmpty(t *testing.T) {
	vector := vectorOf(1)
	path, err := BuildPath(vector, 0)
	require.NoError(t, err)
	assert.Empty(t, path)

	idx, ok := VerifyPath(vector[0], vector[0], path)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestVerifyPathSideBitsIndex(t *testing.T) {
	// for a vector of 3 the last entry sits under two right turns,
	// so the side pattern reads 0b11 while the position is 2.
	vector := vectorOf(3)
	path, err := BuildPath(vector, 2)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, SiblingLeft, path[0].Side)
	assert.Equal(t, SiblingLeft, path[1].Side)

	idx, ok := VerifyPath(vector[2], Commit(vector), path)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	exact, err := IndexFromPath(3, path)
	require.NoError(t, err)
	assert.Equal(t, 2, exact)
}

func TestBuildPathOutOfRange(t *testing.T) {
	tests := []struct {
		length int
		index  int
	}{
		{length: 0, index: 0},
		{length: 3, index: 3},
		{length: 3, index: -1},
	}

	for _, tt := range tests {
		_, err := BuildPath(vectorOf(tt.length), tt.index)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "length %d index %d: %v", tt.length, tt.index, err)
	}
}

func TestIndexFromPathErrors(t *testing.T) {
	path, err := BuildPath(vectorOf(8), 5)
	require.NoError(t, err)

	_, err = IndexFromPath(2, path)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	_, err = IndexFromPath(16, path)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestVerifyPathRejectsMalformed(t *testing.T) {
	leaf := h("leaf")

	long := make(AuthPath, MaxPathLen+1)
	_, ok := VerifyPath(leaf, leaf, long)
	assert.False(t, ok)

	bad := AuthPath{{Side: Side(7), Sibling: h("s")}}
	_, ok = VerifyPath(leaf, leaf, bad)
	assert.False(t, ok)
	assert.Equal(t, "Side(7)", Side(7).String())
}
