// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// errNonCanonicalVarInt is the common format string used for
// non-canonically encoded variable length integer errors.
const errNonCanonicalVarInt = "non-canonical varint %x - discriminant %x must " +
	"encode a value greater than %x"

var littleEndian = binary.LittleEndian

// varIntPrefix describes a varint stored after a one byte discriminant.
type varIntPrefix struct {
	discriminant uint8
	size         int
	min          uint64
}

// varIntPrefixes are ordered by width.
var varIntPrefixes = []varIntPrefix{
	{discriminant: 0xfd, size: 2, min: 0xfd},
	{discriminant: 0xfe, size: 4, min: 0x10000},
	{discriminant: 0xff, size: 8, min: 0x100000000},
}

// prefixOf returns the narrowest prefix able to carry val. Values below 0xfd
// are stored in the discriminant itself and have no prefix.
func prefixOf(val uint64) (varIntPrefix, bool) {
	if val < 0xfd {
		return varIntPrefix{}, false
	}
	for _, prefix := range varIntPrefixes[:len(varIntPrefixes)-1] {
		if val < 1<<(8*uint(prefix.size)) {
			return prefix, true
		}
	}
	return varIntPrefixes[len(varIntPrefixes)-1], true
}

// readUint reads an unsigned little endian integer of size bytes.
func readUint(r io.Reader, size int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return 0, err
	}
	return littleEndian.Uint64(buf[:]), nil
}

// writeUint writes the low size bytes of val in little endian order.
func writeUint(w io.Writer, size int, val uint64) error {
	var buf [8]byte
	littleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:size])
	return err
}
