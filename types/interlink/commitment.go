/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package interlink

import (
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

// Commit calculates the Merkle root of the vector by recursive halving.
// The empty vector commits to the zero hash and a single element commits to
// itself, without hashing. Verifiers must apply the very same rule.
func Commit(vector []chainhash.Hash) chainhash.Hash {
	switch len(vector) {
	case 0:
		return chainhash.ZeroHash
	case 1:
		return vector[0]
	}

	mid := len(vector) / 2
	left := Commit(vector[:mid])
	right := Commit(vector[mid:])
	return chainhash.HashConcat(&left, &right)
}
