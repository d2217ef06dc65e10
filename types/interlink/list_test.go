/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package interlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

func h(s string) chainhash.Hash {
	return chainhash.HashH([]byte(s))
}

func hashes(names ...string) []chainhash.Hash {
	res := make([]chainhash.Hash, len(names))
	for i, name := range names {
		res[i] = h(name)
	}
	return res
}

func TestEmptyList(t *testing.T) {
	var empty *List

	assert.Equal(t, 0, empty.Len())
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.Tail())
	assert.Empty(t, empty.Flatten())

	_, ok := empty.Head()
	assert.False(t, ok)
	_, ok = empty.Last()
	assert.False(t, ok)
	_, ok = empty.At(0)
	assert.False(t, ok)

	assert.Equal(t, chainhash.ZeroHash, empty.Root())
}

func TestFromSliceFlatten(t *testing.T) {
	values := hashes("a", "b", "c")
	list := FromSlice(values)

	require.Equal(t, 3, list.Len())
	assert.Equal(t, values, list.Flatten())

	head, ok := list.Head()
	require.True(t, ok)
	assert.Equal(t, h("a"), head)

	last, ok := list.Last()
	require.True(t, ok)
	assert.Equal(t, h("c"), last)

	at, ok := list.At(1)
	require.True(t, ok)
	assert.Equal(t, h("b"), at)

	_, ok = list.At(-1)
	assert.False(t, ok)
	_, ok = list.At(3)
	assert.False(t, ok)

	assert.Equal(t, 2, list.Tail().Len())
	assert.Equal(t, Commit(values), list.Root())
}

func TestReplaceFirstN(t *testing.T) {
	x := h("x")
	tests := []struct {
		name string
		in   []chainhash.Hash
		n    int
		want []chainhash.Hash
	}{
		{name: "empty grows", in: nil, n: 3, want: []chainhash.Hash{x, x, x}},
		{name: "prefix", in: hashes("a", "b", "c", "d"), n: 2,
			want: append([]chainhash.Hash{x, x}, hashes("c", "d")...)},
		{name: "whole list", in: hashes("a", "b"), n: 2, want: []chainhash.Hash{x, x}},
		{name: "grows past end", in: hashes("a"), n: 3, want: []chainhash.Hash{x, x, x}},
		{name: "zero keeps", in: hashes("a", "b"), n: 0, want: hashes("a", "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := FromSlice(tt.in)
			got := ReplaceFirstN(src, x, tt.n)

			assert.Equal(t, len(tt.want), got.Len())
			if len(tt.want) == 0 {
				assert.Nil(t, got)
			} else {
				assert.Equal(t, tt.want, got.Flatten())
			}
			// the source is left untouched
			assert.Equal(t, len(tt.in), src.Len())
			if len(tt.in) > 0 {
				assert.Equal(t, tt.in, src.Flatten())
			}
		})
	}
}

func TestReplaceFirstNSharesTail(t *testing.T) {
	src := FromSlice(hashes("a", "b", "c", "d", "e"))

	got := ReplaceFirstN(src, h("x"), 2)
	assert.Same(t, src.Drop(2), got.Drop(2))
	assert.NotSame(t, src.Drop(1), got.Drop(1))

	same := ReplaceFirstN(src, h("x"), 0)
	assert.Same(t, src, same)

	// a chain of updates keeps sharing the deepest untouched nodes
	next := ReplaceFirstN(got, h("y"), 1)
	assert.Same(t, got.Drop(1), next.Drop(1))
	assert.Same(t, src.Drop(2), next.Drop(2))
}

func TestAppend(t *testing.T) {
	src := FromSlice(hashes("a", "b"))
	got := Append(src, h("c"))

	assert.Equal(t, hashes("a", "b", "c"), got.Flatten())
	assert.Equal(t, hashes("a", "b"), src.Flatten())
	assert.Equal(t, hashes("z"), Append(nil, h("z")).Flatten())
}

func TestListEqual(t *testing.T) {
	a := FromSlice(hashes("a", "b", "c"))
	b := FromSlice(hashes("a", "b", "c"))
	c := FromSlice(hashes("a", "x", "c"))

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a.Tail()))

	var empty *List
	assert.True(t, empty.Equal(nil))
	assert.False(t, empty.Equal(a))

	shared := Cons(h("a"), b.Tail())
	assert.True(t, shared.Equal(b))
}
