// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kkdai/bstream"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
)

// ProtocolVersion is the latest protocol version this package supports.
const ProtocolVersion uint32 = 1

// MessageEncoding represents the wire message encoding format to be used.
type MessageEncoding uint32

// BaseEncoding encodes all messages in the default format.
const BaseEncoding MessageEncoding = 1 << 0

const (
	// MaxProofEntries is the maximum number of headers a single proof can carry.
	MaxProofEntries = 1 << 16

	// defaultProofEntries is the capacity allocated up front when decoding.
	defaultProofEntries = 64
)

// ProofEntry is a header selected into the proof together with the
// authentication path that links it to the interlink commitment of the
// previous entry. The first entry of a proof has an empty path.
type ProofEntry struct {
	Header BlockHeader
	Path   interlink.AuthPath
}

// MsgProof is a succinct proof of proof-of-work. Entries are ordered from the
// tip down to the genesis block.
type MsgProof struct {
	Entries []ProofEntry
}

// NewMsgProof returns an empty proof with room for the given number of entries.
func NewMsgProof(sizeHint int) *MsgProof {
	return &MsgProof{Entries: make([]ProofEntry, 0, sizeHint)}
}

// AddEntry appends copies of the header and the path to the proof.
func (msg *MsgProof) AddEntry(header *BlockHeader, path interlink.AuthPath) {
	msg.Entries = append(msg.Entries, ProofEntry{Header: *header, Path: path.Copy()})
}

// Len returns number of entries in the proof.
func (msg *MsgProof) Len() int { return len(msg.Entries) }

// Hashes returns the block hashes of the entries in proof order.
func (msg *MsgProof) Hashes() []chainhash.Hash {
	res := make([]chainhash.Hash, len(msg.Entries))
	for i := range msg.Entries {
		res[i] = msg.Entries[i].Header.BlockHash()
	}
	return res
}

// Copy creates a deep copy of the proof.
func (msg *MsgProof) Copy() *MsgProof {
	clone := NewMsgProof(len(msg.Entries))
	for i := range msg.Entries {
		clone.AddEntry(&msg.Entries[i].Header, msg.Entries[i].Path)
	}
	return clone
}

// BtcDecode decodes r using the wire encoding into the receiver.
func (msg *MsgProof) BtcDecode(r io.Reader, _ uint32, _ MessageEncoding) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more entries than could possibly fit into a message.
	if count > MaxProofEntries {
		str := fmt.Sprintf("too many entries for message [count %v, max %v]",
			count, MaxProofEntries)
		return Error("MsgProof.BtcDecode", str)
	}

	// The count is not trusted, entries are appended as they are read.
	msg.Entries = make([]ProofEntry, 0, minUint64(count, defaultProofEntries))
	for i := uint64(0); i < count; i++ {
		var entry ProofEntry
		if err := readProofEntry(r, &entry); err != nil {
			return err
		}
		msg.Entries = append(msg.Entries, entry)
	}

	return nil
}

// BtcEncode encodes the receiver to w using the wire encoding.
func (msg *MsgProof) BtcEncode(w io.Writer, _ uint32, _ MessageEncoding) error {
	count := len(msg.Entries)
	if count > MaxProofEntries {
		str := fmt.Sprintf("too many entries for message [count %v, max %v]",
			count, MaxProofEntries)
		return Error("MsgProof.BtcEncode", str)
	}

	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}

	for i := range msg.Entries {
		if err := writeProofEntry(w, &msg.Entries[i]); err != nil {
			return err
		}
	}

	return nil
}

// Deserialize decodes a proof from r into the receiver.
func (msg *MsgProof) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, 0, BaseEncoding)
}

// Serialize encodes the proof to w.
func (msg *MsgProof) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, 0, BaseEncoding)
}

// Bytes returns the serialized proof.
func (msg *MsgProof) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	if err := msg.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// proof.
func (msg *MsgProof) SerializeSize() int {
	n := VarIntSerializeSize(uint64(len(msg.Entries)))
	for i := range msg.Entries {
		pathLen := len(msg.Entries[i].Path)
		n += MaxBlockHeaderPayload + VarIntSerializeSize(uint64(pathLen)) +
			(pathLen+7)/8 + pathLen*chainhash.HashSize
	}
	return n
}

func readProofEntry(r io.Reader, entry *ProofEntry) error {
	if err := readBlockHeader(r, &entry.Header); err != nil {
		return err
	}

	pathLen, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	if pathLen > interlink.MaxPathLen {
		str := fmt.Sprintf("authentication path is too long [len %v, max %v]",
			pathLen, interlink.MaxPathLen)
		return Error("readProofEntry", str)
	}

	if pathLen == 0 {
		return nil
	}

	sides := make([]byte, (pathLen+7)/8)
	if _, err = io.ReadFull(r, sides); err != nil {
		return err
	}

	bits := bstream.NewBStreamReader(sides)
	entry.Path = make(interlink.AuthPath, pathLen)
	for i := range entry.Path {
		bit, err := bits.ReadBit()
		if err != nil {
			return err
		}
		if bool(bit) {
			entry.Path[i].Side = interlink.SiblingLeft
		}
	}

	// The padding bits of the last side byte are zero.
	for i := pathLen; i < uint64(len(sides))*8; i++ {
		bit, err := bits.ReadBit()
		if err != nil {
			return err
		}
		if bool(bit) {
			return Error("readProofEntry", "non-zero padding of sibling sides")
		}
	}

	for i := range entry.Path {
		if err = ReadElement(r, &entry.Path[i].Sibling); err != nil {
			return err
		}
	}

	return nil
}

func writeProofEntry(w io.Writer, entry *ProofEntry) error {
	if err := writeBlockHeader(w, &entry.Header); err != nil {
		return err
	}

	pathLen := len(entry.Path)
	if pathLen > interlink.MaxPathLen {
		str := fmt.Sprintf("authentication path is too long [len %v, max %v]",
			pathLen, interlink.MaxPathLen)
		return Error("writeProofEntry", str)
	}

	if err := WriteVarInt(w, uint64(pathLen)); err != nil {
		return err
	}

	if pathLen == 0 {
		return nil
	}

	bits := bstream.NewBStreamWriter(0)
	for _, node := range entry.Path {
		switch node.Side {
		case interlink.SiblingRight:
			bits.WriteBit(false)
		case interlink.SiblingLeft:
			bits.WriteBit(true)
		default:
			return Error("writeProofEntry", "unknown sibling side "+node.Side.String())
		}
	}

	if _, err := w.Write(bits.Bytes()); err != nil {
		return err
	}

	for i := range entry.Path {
		if err := WriteElement(w, &entry.Path[i].Sibling); err != nil {
			return err
		}
	}

	return nil
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
