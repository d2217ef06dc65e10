// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFuncs(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		f    func([]byte) Hash
		want string
	}{
		{name: "sha256 abc", in: []byte("abc"), f: HashH,
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{name: "double sha256 empty", in: nil, f: DoubleHashH,
			want: "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f(tt.in)
			assert.Equal(t, tt.want, hex.EncodeToString(got[:]))
			assert.Equal(t, got[:], got.CloneBytes())
		})
	}
}

func TestHashConcat(t *testing.T) {
	var left, right Hash
	for i := range left {
		left[i] = 0x01
		right[i] = 0x02
	}

	got := HashConcat(&left, &right)
	assert.Equal(t, "39ce20bede82c96b8908bec4a157b09c549b3db90b9b474bda9ae9b9030310b4",
		hex.EncodeToString(got[:]))

	swapped := HashConcat(&right, &left)
	assert.NotEqual(t, got, swapped)
}

func TestHashStringRoundTrip(t *testing.T) {
	str := "0963f1e378149b95daa531dae39856d51dff972c5622f51ed114ce0d29753642"
	hash, err := NewHashFromStr(str)
	require.NoError(t, err)

	assert.Equal(t, str, hash.String())
	assert.Equal(t, byte(0x42), hash[0])
	assert.Equal(t, byte(0x09), hash[HashSize-1])

	var decoded Hash
	require.NoError(t, Decode(&decoded, hash.String()))
	assert.Equal(t, *hash, decoded)
}

func TestDecodeErrors(t *testing.T) {
	_, err := NewHashFromStr(string(make([]byte, MaxHashStringSize+1)))
	assert.Equal(t, ErrHashStrSize, err)

	_, err = NewHashFromStr("zz")
	assert.Error(t, err)

	short, err := NewHashFromStr("1")
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), short[0])

	var hash Hash
	assert.Error(t, hash.SetBytes([]byte{1, 2, 3}))
	require.NoError(t, hash.SetBytes(short[:]))
	assert.Equal(t, *short, hash)
}

func TestIsZero(t *testing.T) {
	assert.True(t, ZeroHash.IsZero())
	assert.False(t, DoubleHashH(nil).IsZero())
}
