// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
)

func testPath(sides ...interlink.Side) interlink.AuthPath {
	path := make(interlink.AuthPath, len(sides))
	for i, side := range sides {
		path[i] = interlink.PathNode{
			Side:    side,
			Sibling: chainhash.HashH([]byte{byte(i), byte(side)}),
		}
	}
	return path
}

func testProof() *MsgProof {
	const (
		r = interlink.SiblingRight
		l = interlink.SiblingLeft
	)

	proof := NewMsgProof(3)
	tip := testHeader()
	proof.AddEntry(tip, nil)

	middle := tip.Copy()
	middle.Nonce = 7
	proof.AddEntry(middle, testPath(l, r, r, l, l, l, l, l, r))

	last := tip.Copy()
	last.Nonce = 8
	proof.AddEntry(last, testPath(r))
	return proof
}

func TestMsgProofRoundTrip(t *testing.T) {
	proof := testProof()

	raw, err := proof.Bytes()
	require.NoError(t, err)
	assert.Len(t, raw, proof.SerializeSize())

	var decoded MsgProof
	require.NoError(t, decoded.Deserialize(bytes.NewReader(raw)))
	assert.Equal(t, proof.Entries, decoded.Entries)
	assert.Equal(t, proof.Hashes(), decoded.Hashes())
}

func TestMsgProofSideBits(t *testing.T) {
	proof := testProof()
	raw, err := proof.Bytes()
	require.NoError(t, err)

	// count | tip header | empty path | middle header | path length
	offset := 1 + MaxBlockHeaderPayload + 1 + MaxBlockHeaderPayload
	assert.Equal(t, byte(9), raw[offset])
	assert.Equal(t, []byte{0x9f, 0x00}, raw[offset+1:offset+3])

	siblings := raw[offset+3 : offset+3+9*chainhash.HashSize]
	for i, node := range proof.Entries[1].Path {
		assert.Equal(t, node.Sibling[:], siblings[i*chainhash.HashSize:(i+1)*chainhash.HashSize])
	}
}

func TestMsgProofSidePadding(t *testing.T) {
	proof := testProof()
	raw, err := proof.Bytes()
	require.NoError(t, err)

	offset := 1 + MaxBlockHeaderPayload + 1 + MaxBlockHeaderPayload
	for _, padding := range []byte{0x01, 0x40} {
		padded := append([]byte(nil), raw...)
		padded[offset+2] |= padding

		var decoded MsgProof
		err := decoded.Deserialize(bytes.NewReader(padded))
		var msgErr *MessageError
		assert.True(t, errors.As(err, &msgErr), "padding %02x: %v", padding, err)
	}

	// A single node path leaves seven padding bits.
	single := testProof()
	single.Entries = single.Entries[:1]
	single.AddEntry(&proof.Entries[2].Header, testPath(interlink.SiblingLeft))
	raw, err = single.Bytes()
	require.NoError(t, err)
	require.Equal(t, byte(0x80), raw[offset+1])

	raw[offset+1] |= 0x01
	var decoded MsgProof
	assert.Error(t, decoded.Deserialize(bytes.NewReader(raw)))
}

func TestMsgProofDecodeForgedCount(t *testing.T) {
	forged := new(bytes.Buffer)
	require.NoError(t, WriteVarInt(forged, MaxProofEntries))
	require.NoError(t, testHeader().Serialize(forged))
	require.NoError(t, WriteVarInt(forged, 0))

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	var decoded MsgProof
	err := decoded.Deserialize(bytes.NewReader(forged.Bytes()))
	runtime.ReadMemStats(&after)

	assert.True(t, errors.Is(err, io.EOF), "unexpected error %v", err)
	assert.Len(t, decoded.Entries, 1)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestMsgProofCopy(t *testing.T) {
	proof := testProof()
	clone := proof.Copy()
	require.Equal(t, proof.Entries, clone.Entries)

	clone.Entries[1].Path[0].Sibling[0] ^= 0xff
	clone.Entries[0].Header.Nonce++
	assert.NotEqual(t, proof.Entries[1].Path[0], clone.Entries[1].Path[0])
	assert.NotEqual(t, proof.Entries[0].Header.Nonce, clone.Entries[0].Header.Nonce)
}

func TestMsgProofDecodeErrors(t *testing.T) {
	valid, err := testProof().Bytes()
	require.NoError(t, err)

	tooManyEntries := new(bytes.Buffer)
	require.NoError(t, WriteVarInt(tooManyEntries, MaxProofEntries+1))

	longPath := new(bytes.Buffer)
	require.NoError(t, WriteVarInt(longPath, 1))
	require.NoError(t, testHeader().Serialize(longPath))
	require.NoError(t, WriteVarInt(longPath, interlink.MaxPathLen+1))

	tests := []struct {
		name       string
		raw        []byte
		msgErr     bool
		unexpected bool
	}{
		{name: "too many entries", raw: tooManyEntries.Bytes(), msgErr: true},
		{name: "long path", raw: longPath.Bytes(), msgErr: true},
		{name: "truncated sibling", raw: valid[:len(valid)-5], unexpected: true},
		{name: "truncated header", raw: valid[:40], unexpected: true},
		{name: "empty", raw: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded MsgProof
			err := decoded.Deserialize(bytes.NewReader(tt.raw))
			require.Error(t, err)

			var msgErr *MessageError
			assert.Equal(t, tt.msgErr, errors.As(err, &msgErr), err.Error())
			if tt.unexpected {
				assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), err.Error())
			}
		})
	}
}

func TestMsgProofEncodeInvalidSide(t *testing.T) {
	proof := NewMsgProof(1)
	proof.AddEntry(testHeader(), interlink.AuthPath{{Side: interlink.Side(3)}})

	_, err := proof.Bytes()
	var msgErr *MessageError
	assert.True(t, errors.As(err, &msgErr))
}
