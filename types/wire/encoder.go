// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

// Uint32Time represents a unix timestamp encoded with a uint32.  It is used as
// a way to signal the readElement function how to decode a timestamp into a Go
// time.Time since it is otherwise ambiguous.
type Uint32Time time.Time

// ReadElement reads the little endian representation of the element pointed
// to from r. Headers, proofs and network magics only carry 4 byte integers,
// timestamps and hashes.
func ReadElement(r io.Reader, element interface{}) error {
	if e, ok := element.(*chainhash.Hash); ok {
		_, err := io.ReadFull(r, e[:])
		return err
	}

	switch element.(type) {
	case *int32, *uint32, *Uint32Time, *JaxNet:
	default:
		return Error("ReadElement", fmt.Sprintf("unsupported element type %T", element))
	}

	rv, err := readUint(r, 4)
	if err != nil {
		return err
	}

	switch e := element.(type) {
	case *int32:
		*e = int32(rv)
	case *uint32:
		*e = uint32(rv)
	case *Uint32Time:
		*e = Uint32Time(time.Unix(int64(rv), 0))
	case *JaxNet:
		*e = JaxNet(rv)
	}
	return nil
}

// ReadElements reads multiple items from r.  It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		if err := ReadElement(r, element); err != nil {
			return err
		}
	}
	return nil
}

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case int32:
		return writeUint(w, 4, uint64(uint32(e)))
	case uint32:
		return writeUint(w, 4, uint64(e))
	case Uint32Time:
		return writeUint(w, 4, uint64(uint32(time.Time(e).Unix())))
	case JaxNet:
		return writeUint(w, 4, uint64(e))
	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	}

	return Error("WriteElement", fmt.Sprintf("unsupported element type %T", element))
}

// WriteElements writes multiple items to w.  It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		if err := WriteElement(w, element); err != nil {
			return err
		}
	}
	return nil
}

// ReadVarInt reads a variable length integer from r and returns it as a uint64.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := readUint(r, 1)
	if err != nil {
		return 0, err
	}

	for _, prefix := range varIntPrefixes {
		if uint8(discriminant) != prefix.discriminant {
			continue
		}

		rv, err := readUint(r, prefix.size)
		if err != nil {
			return 0, err
		}

		// The encoding is not canonical if the value could have been
		// encoded using fewer bytes.
		if rv < prefix.min {
			return 0, Error("ReadVarInt", fmt.Sprintf(
				errNonCanonicalVarInt, rv, discriminant, prefix.min))
		}
		return rv, nil
	}

	return discriminant, nil
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	prefix, ok := prefixOf(val)
	if !ok {
		return writeUint(w, 1, val)
	}

	if err := writeUint(w, 1, uint64(prefix.discriminant)); err != nil {
		return err
	}
	return writeUint(w, prefix.size, val)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	prefix, ok := prefixOf(val)
	if !ok {
		return 1
	}
	return 1 + prefix.size
}

// randomUint64 reads a uint64 from r. The reader is a parameter so the
// error path can be tested.
func randomUint64(r io.Reader) (uint64, error) {
	return readUint(r, 8)
}

// RandomUint64 returns a cryptographically random uint64 value.
func RandomUint64() (uint64, error) {
	return randomUint64(rand.Reader)
}
