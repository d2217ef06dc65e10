/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

// Package interlink provides the interlink vector of a block and the Merkle
// commitment over it.
//
// Interlink vector of a block B is a list of ancestor hashes indexed by level:
//
// 	      V[i] = hash of the most recent ancestor of B with level >= i
//
// V[0] is always the parent. The genesis block has an empty vector.
//
// Vectors are persistent lists. Appending a block of level mu replaces the
// first mu+1 entries of the parent vector with the parent hash and shares the
// remaining tail by reference:
//
// 	      parent: [ A ] -> [ B ] -> [ C ] -> [ D ]
// 	                                  ^
// 	      child:  [ P ] -> [ P ] -----+          (mu = 1)
//
// How To calculate Commitment:
// 	 1. empty vector commits to the zero hash.
// 	 2. vector of one element commits to that element, without hashing.
// 	 3. otherwise split at mid = len/2, commit both halves and hash
// 	    the concatenation: root = HASH( concat(commit(left), commit(right)) )
//
// Tree Topology:
//
// For 3 entries:
//	      2:          root = V0 + node12
//	                  /         \
//	      1:         /        node12
//	                /        /      \
//	      0:      V0        V1      V2
//
// For 4 entries:
//	      2:            root = node01 + node23
//	                    /           \
//	      1:        node01         node23
//	               /     \        /      \
//	      0:      V0      V1     V2      V3
//
// For 5 entries:
//	      3:               root = node01 + node2_34
//	                       /              \
//	      2:              /             node2_34
//	                     /              /      \
//	      1:        node01             /      node34
//	               /     \            /       /    \
//	      0:      V0      V1         V2      V3    V4
//
// Authentication path of an entry lists (side, sibling) pairs from the root
// down to the entry. Verification folds them back from the entry to the root.
package interlink
