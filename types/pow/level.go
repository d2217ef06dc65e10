// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

var (
	// ErrInvalidDifficultyEncoding is returned for bits whose exponent or
	// base is outside of the network bounds.
	ErrInvalidDifficultyEncoding = errors.New("invalid difficulty encoding")

	// ErrHighHash is returned when the hash is above the target, so the
	// block has no level at all.
	ErrHighHash = errors.New("block hash is higher than the target")
)

// BitsBounds is the range of exponents and bases the network accepts in the
// compact difficulty encoding.
type BitsBounds struct {
	MinExponent uint32
	MaxExponent uint32
	MinBase     uint32
	MaxBase     uint32
}

// DecodeBits splits bits into exponent (high byte) and base (low three bytes),
// checks both against bounds and returns target = base * 256^(exponent-3).
func DecodeBits(bits uint32, bounds BitsBounds) (*big.Int, error) {
	target, err := decodeTarget(bits, bounds)
	if err != nil {
		return nil, err
	}
	return target.ToBig(), nil
}

// Level returns the superblock level of the hash under bits:
// the floor of log2(target / hash), with the hash read as a little-endian
// integer. The zero hash is treated as 1.
func Level(hash chainhash.Hash, bits uint32, bounds BitsBounds) (int, error) {
	target, err := decodeTarget(bits, bounds)
	if err != nil {
		return 0, err
	}

	hashNum := hashToUint256(&hash)
	if hashNum.IsZero() {
		hashNum.SetOne()
	}

	if hashNum.Gt(target) {
		return 0, errors.Wrapf(ErrHighHash, "hash %s, bits %08x", hash, bits)
	}

	ratio := new(uint256.Int).Div(target, hashNum)
	return ratio.BitLen() - 1, nil
}

// CheckProofOfWork ensures the bits are well encoded, the target is not above
// powLimit and the hash does not exceed the target.
func CheckProofOfWork(hash chainhash.Hash, bits uint32, bounds BitsBounds, powLimit *big.Int) error {
	target, err := DecodeBits(bits, bounds)
	if err != nil {
		return err
	}

	if powLimit != nil && target.Cmp(powLimit) > 0 {
		return errors.Wrapf(ErrInvalidDifficultyEncoding,
			"target difficulty of %064x is higher than max of %064x", target, powLimit)
	}

	hashNum := HashToBig(&hash)
	if hashNum.Cmp(target) > 0 {
		return errors.Wrapf(ErrHighHash,
			"block hash of %064x is higher than expected max of %064x", hashNum, target)
	}

	return nil
}

func decodeTarget(bits uint32, bounds BitsBounds) (*uint256.Int, error) {
	exponent := bits >> 24
	base := bits & 0x00ffffff

	if exponent < bounds.MinExponent || exponent > bounds.MaxExponent {
		return nil, errors.Wrapf(ErrInvalidDifficultyEncoding,
			"bits %08x: exponent %#x is outside [%#x, %#x]",
			bits, exponent, bounds.MinExponent, bounds.MaxExponent)
	}
	if base < bounds.MinBase || base > bounds.MaxBase {
		return nil, errors.Wrapf(ErrInvalidDifficultyEncoding,
			"bits %08x: base %#x is outside [%#x, %#x]",
			bits, base, bounds.MinBase, bounds.MaxBase)
	}

	target := uint256.NewInt(uint64(base))
	if exponent <= 3 {
		target.Rsh(target, uint(8*(3-exponent)))
	} else {
		shift := uint(8 * (exponent - 3))
		if target.BitLen()+int(shift) > 256 {
			return nil, errors.Wrapf(ErrInvalidDifficultyEncoding,
				"bits %08x: target does not fit 256 bits", bits)
		}
		target.Lsh(target, shift)
	}

	if target.IsZero() {
		return nil, errors.Wrapf(ErrInvalidDifficultyEncoding, "bits %08x: zero target", bits)
	}
	return target, nil
}

func hashToUint256(hash *chainhash.Hash) *uint256.Int {
	var buf [chainhash.HashSize]byte
	for i := range buf {
		buf[i] = hash[chainhash.HashSize-1-i]
	}
	return new(uint256.Int).SetBytes(buf[:])
}
