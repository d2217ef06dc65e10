/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package interlink

import (
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

// List is an immutable node of a persistent singly-linked list of hashes.
// The nil *List is the empty list. Nodes are never modified after creation,
// so any number of lists may share a tail and be read concurrently.
type List struct {
	value chainhash.Hash
	next  *List
	size  int
}

// Cons returns a new list with value in front of tail.
func Cons(value chainhash.Hash, tail *List) *List {
	return &List{value: value, next: tail, size: tail.Len() + 1}
}

// FromSlice builds a list holding the hashes in the same order.
func FromSlice(hashes []chainhash.Hash) *List {
	var list *List
	for i := len(hashes) - 1; i >= 0; i-- {
		list = Cons(hashes[i], list)
	}
	return list
}

// Len returns number of elements in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// IsEmpty reports whether the list has no elements.
func (l *List) IsEmpty() bool { return l == nil }

// Head returns the first element. It returns false for the empty list.
func (l *List) Head() (chainhash.Hash, bool) {
	if l == nil {
		return chainhash.Hash{}, false
	}
	return l.value, true
}

// Tail returns the list without its first element.
func (l *List) Tail() *List {
	if l == nil {
		return nil
	}
	return l.next
}

// Drop returns the sublist that starts at position n. The result is the very
// same node chain as the receiver's, not a copy.
func (l *List) Drop(n int) *List {
	cur := l
	for ; n > 0 && cur != nil; n-- {
		cur = cur.next
	}
	return cur
}

// At returns the element at position i.
func (l *List) At(i int) (chainhash.Hash, bool) {
	if i < 0 {
		return chainhash.Hash{}, false
	}
	return l.Drop(i).Head()
}

// Last returns the last element of the list.
func (l *List) Last() (chainhash.Hash, bool) {
	return l.At(l.Len() - 1)
}

// Flatten copies the list into a slice.
func (l *List) Flatten() []chainhash.Hash {
	res := make([]chainhash.Hash, 0, l.Len())
	for cur := l; cur != nil; cur = cur.next {
		res = append(res, cur.value)
	}
	return res
}

// Equal compares lists element by element.
func (l *List) Equal(other *List) bool {
	if l.Len() != other.Len() {
		return false
	}
	for a, b := l, other; a != nil; a, b = a.next, b.next {
		if a == b {
			return true
		}
		if a.value != b.value {
			return false
		}
	}
	return true
}

// Root returns the commitment over the list. See Commit.
func (l *List) Root() chainhash.Hash {
	return Commit(l.Flatten())
}

// ReplaceFirstN returns a list equal to xs except that the first n elements
// are x. When n exceeds the length of xs the result grows to n elements.
// Exactly n nodes are allocated; elements after position n are shared with xs.
func ReplaceFirstN(xs *List, x chainhash.Hash, n int) *List {
	if n <= 0 {
		return xs
	}

	res := xs.Drop(n)
	for i := 0; i < n; i++ {
		res = Cons(x, res)
	}
	return res
}

// Append returns a new list with x added to the end of xs.
// Every node of xs is copied, nothing is shared.
func Append(xs *List, x chainhash.Hash) *List {
	return FromSlice(append(xs.Flatten(), x))
}
