// Package veb implements an unordered set of uint64 values as a
// fixed-depth bitwise trie: each level consumes one byte of the
// value and records presence in a 256-bit bitmap, with one child
// node per set bit kept sorted by bitmap rank.
package veb

import (
	"github.com/hideo55/go-popcount"
)

const (
	radixBits = 8              // one byte of the value per level
	numLevels = 64 / radixBits // trie depth, the last level holds the leaves
	wordBits  = 6              // 2**6 == 64 bits per bitmap word
)

// Node covers one byte of the value: 256 presence bits plus one
// child per set bit (except at the leaf level, which has none).
type Node struct {
	bitmap   [4]uint64
	children []*Node
}

type Set struct {
	root *Node
	size uint64
}

func NewSet(vals ...uint64) *Set {
	s := &Set{root: &Node{}}
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

func (t *Set) Len() uint64 {
	if t == nil {
		return 0
	}
	return t.size
}

// slot locates the bitmap word and bit of one value byte.
func slot(v uint64, level int) (ofs byte, mask uint64) {
	idx := byte(v >> (64 - radixBits*(level+1)))
	return idx >> wordBits, uint64(1) << (idx & (1<<wordBits - 1))
}

// rank counts the set bits preceding the given one - the child index.
func (n *Node) rank(ofs byte, mask uint64) int {
	cnt := popcount.Count(n.bitmap[ofs] & (mask - 1))
	for j := byte(0); j < ofs; j++ {
		cnt += popcount.Count(n.bitmap[j])
	}
	return int(cnt)
}

func (t *Set) Has(v uint64) bool {
	if t == nil {
		return false
	}
	node := t.root
	for level := 0; ; level++ {
		ofs, mask := slot(v, level)
		if node.bitmap[ofs]&mask == 0 {
			return false // underlying nodes don't have it
		}
		if level == numLevels-1 {
			return true // this is a leaf
		}
		node = node.children[node.rank(ofs, mask)]
	}
}

// Add inserts the value. It reports whether the value was absent.
func (t *Set) Add(v uint64) bool {
	var added bool
	node := t.root
	for level := 0; ; level++ {
		ofs, mask := slot(v, level)
		added = node.bitmap[ofs]&mask == 0
		if added {
			node.bitmap[ofs] |= mask
		}
		if level == numLevels-1 {
			// this is a leaf
			if added {
				t.size++
			}
			return added
		}
		cnt := node.rank(ofs, mask)
		if added {
			// open a slot at the child's rank
			node.children = append(node.children, nil)
			copy(node.children[cnt+1:], node.children[cnt:])
			next := &Node{}
			node.children[cnt] = next
			node = next
		} else {
			node = node.children[cnt]
		}
	}
}

// Del removes the value. It reports whether the value was present.
// Emptied subtrees are kept around for a re-use by later inserts.
func (t *Set) Del(v uint64) bool {
	if t == nil {
		return false
	}
	node := t.root
	for level := 0; ; level++ {
		ofs, mask := slot(v, level)
		if node.bitmap[ofs]&mask == 0 {
			return false
		}
		if level == numLevels-1 {
			node.bitmap[ofs] &^= mask
			t.size--
			return true
		}
		node = node.children[node.rank(ofs, mask)]
	}
}
