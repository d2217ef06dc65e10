// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

// MaxBlockHeaderPayload is the number of bytes a block header takes.
// Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes +
// PrevBlock, MerkleRoot and InterlinkRoot hashes.
const MaxBlockHeaderPayload = 16 + (chainhash.HashSize * 3)

// BlockHeader defines information about a block. Besides the usual fields
// it commits to the interlink vector of the block through InterlinkRoot.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Root of the content carried by the block. Opaque for the proofs.
	MerkleRoot chainhash.Hash

	// Time the block was created.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp time.Time

	// Difficulty target for the block.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32

	// Commitment to the interlink vector of this block.
	InterlinkRoot chainhash.Hash
}

// NewBlockHeader returns a new BlockHeader using the provided fields.
// Timestamp is truncated to one second precision.
func NewBlockHeader(version int32, prevHash, merkleRoot, interlinkRoot chainhash.Hash,
	timestamp time.Time, bits uint32, nonce uint32) *BlockHeader {
	return &BlockHeader{
		Version:       version,
		PrevBlock:     prevHash,
		MerkleRoot:    merkleRoot,
		Timestamp:     time.Unix(timestamp.Unix(), 0),
		Bits:          bits,
		Nonce:         nonce,
		InterlinkRoot: interlinkRoot,
	}
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	// Encode the header and double sha256 everything.  Ignore the error
	// returns since there is no way the encode could fail except being out
	// of memory which would cause a run-time panic.
	buf := bytes.NewBuffer(make([]byte, 0, MaxBlockHeaderPayload))
	_ = writeBlockHeader(buf, h)
	return chainhash.DoubleHashH(buf.Bytes())
}

// BtcDecode decodes r using the wire encoding into the receiver.
// See Deserialize for decoding block headers stored to disk, such as in a
// database, as opposed to decoding block headers from the wire.
func (h *BlockHeader) BtcDecode(r io.Reader, _ uint32, _ MessageEncoding) error {
	return readBlockHeader(r, h)
}

// BtcEncode encodes the receiver to w using the wire encoding.
// See Serialize for encoding block headers to be stored to disk, such as in a
// database, as opposed to encoding block headers for the wire.
func (h *BlockHeader) BtcEncode(w io.Writer, _ uint32, _ MessageEncoding) error {
	return writeBlockHeader(w, h)
}

// Deserialize decodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	// At the current time, there is no difference between the wire encoding
	// and the stable long-term storage format.  As a result, make use of
	// readBlockHeader.
	return readBlockHeader(r, h)
}

// Serialize encodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (h *BlockHeader) Serialize(w io.Writer) error {
	// At the current time, there is no difference between the wire encoding
	// and the stable long-term storage format.  As a result, make use of
	// writeBlockHeader.
	return writeBlockHeader(w, h)
}

// Bytes returns the serialized header.
func (h *BlockHeader) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, MaxBlockHeaderPayload))
	_ = writeBlockHeader(buf, h)
	return buf.Bytes()
}

// Copy creates a deep copy of a BlockHeader so that the original does not get
// modified when the copy is manipulated.
func (h *BlockHeader) Copy() *BlockHeader {
	clone := *h
	return &clone
}

// readBlockHeader reads a block header from r.
func readBlockHeader(r io.Reader, bh *BlockHeader) error {
	return ReadElements(r, &bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		(*Uint32Time)(&bh.Timestamp), &bh.Bits, &bh.Nonce, &bh.InterlinkRoot)
}

// writeBlockHeader writes a block header to w.
func writeBlockHeader(w io.Writer, bh *BlockHeader) error {
	return WriteElements(w, bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		Uint32Time(bh.Timestamp), bh.Bits, bh.Nonce, &bh.InterlinkRoot)
}
