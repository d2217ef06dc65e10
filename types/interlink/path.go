/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package interlink

import (
	"fmt"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

// MaxPathLen is the longest authentication path accepted by VerifyPath.
// An interlink vector can not be longer than the bit size of the hash,
// so real paths are at most 8 nodes long.
const MaxPathLen = 32

// Side tells on which side of the accumulated hash the sibling is
// concatenated when the path is folded back to the root.
type Side uint8

const (
	// SiblingRight means the proven entry is in the left half:
	// parent = HASH(acc || sibling).
	SiblingRight Side = 0

	// SiblingLeft means the proven entry is in the right half:
	// parent = HASH(sibling || acc).
	SiblingLeft Side = 1
)

func (s Side) String() string {
	switch s {
	case SiblingRight:
		return "right"
	case SiblingLeft:
		return "left"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// PathNode is one step of the authentication path.
type PathNode struct {
	Side    Side
	Sibling chainhash.Hash
}

// AuthPath is the list of siblings ordered from the root down to the entry.
type AuthPath []PathNode

// Copy returns a deep copy of the path.
func (p AuthPath) Copy() AuthPath {
	if p == nil {
		return nil
	}
	clone := make(AuthPath, len(p))
	copy(clone, p)
	return clone
}

// BuildPath returns the authentication path of vector[index].
func BuildPath(vector []chainhash.Hash, index int) (AuthPath, error) {
	if index < 0 || index >= len(vector) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, vector length %d", index, len(vector))
	}

	path := make(AuthPath, 0, depth(len(vector)))
	for len(vector) > 1 {
		mid := len(vector) / 2
		if index < mid {
			path = append(path, PathNode{Side: SiblingRight, Sibling: Commit(vector[mid:])})
			vector = vector[:mid]
			continue
		}

		path = append(path, PathNode{Side: SiblingLeft, Sibling: Commit(vector[:mid])})
		vector = vector[mid:]
		index -= mid
	}

	return path, nil
}

// VerifyPath folds the path from the leaf up to the root and compares the
// result with the claimed root. The returned index is assembled from the side
// bits, the bit of the pair nearest to the leaf being the lowest one. It is
// the exact position of the leaf only for vectors whose length is a power of
// two; use IndexFromPath when the length is known.
func VerifyPath(leaf, claimedRoot chainhash.Hash, path AuthPath) (int, bool) {
	if len(path) > MaxPathLen {
		return 0, false
	}

	index := 0
	acc := leaf
	for bit, i := 0, len(path)-1; i >= 0; bit, i = bit+1, i-1 {
		node := path[i]
		switch node.Side {
		case SiblingRight:
			acc = chainhash.HashConcat(&acc, &node.Sibling)
		case SiblingLeft:
			index |= 1 << bit
			acc = chainhash.HashConcat(&node.Sibling, &acc)
		default:
			return 0, false
		}
	}

	return index, acc == claimedRoot
}

// IndexFromPath replays the halving over a vector of the given length and
// returns the position the path leads to.
func IndexFromPath(length int, path AuthPath) (int, error) {
	index := 0
	size := length
	for _, node := range path {
		if size <= 1 {
			return 0, errors.Wrapf(ErrIndexOutOfRange,
				"path of %d nodes does not fit vector length %d", len(path), length)
		}

		mid := size / 2
		if node.Side == SiblingLeft {
			index += mid
			size -= mid
		} else {
			size = mid
		}
	}

	if size != 1 {
		return 0, errors.Wrapf(ErrIndexOutOfRange,
			"path of %d nodes ends above the leaves of vector length %d", len(path), length)
	}
	return index, nil
}

// depth returns the height of the halving tree over n entries.
func depth(n int) int {
	d := 0
	for size := 1; size < n; size <<= 1 {
		d++
	}
	return d
}
