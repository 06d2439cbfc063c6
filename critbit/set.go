// Package critbit implements an ordered set of uint64 keys as a
// crit-bit trie: a binary radix trie where each internal node
// branches on the first bit at which its two subtrees differ.
//
// A valid key is non-zero and even. The low bit of every key is
// reserved for caller-side tagging and zero marks an empty slot, so
// neither may appear in a member. Passing an invalid key to any
// operation is a programming error and panics.
package critbit

import "math/bits"

// Ref holds either a leaf Key or a Node pointer.
// The zero Ref is the empty sentinel: a valid key is never zero.
type Ref struct {
	Key  uint64
	node *Node
}

type Node struct {
	child [2]Ref
	// bit is the index of the critical bit, counted from the most
	// significant bit of the key
	bit uint8
}

// Set is an ordered set of non-zero even uint64 keys. Internal
// nodes come from the bound Allocator and go back to it on Del and
// Clear. The zero value is an empty set bound to the heap.
type Set struct {
	size  int
	root  Ref
	alloc Allocator
}

// dir calculates the direction for the given key
func (n *Node) dir(v uint64) byte {
	if v&(1<<(63-n.bit)) != 0 {
		return 1
	}
	return 0
}

// checkKey rejects keys outside the member domain.
func checkKey(v uint64) {
	if v == 0 {
		panic("critbit: zero key")
	}
	if v&1 != 0 {
		panic("critbit: odd key (the low bit is reserved)")
	}
}

func InitSet(set *Set, alloc Allocator, vals ...uint64) *Set {
	if alloc == nil {
		alloc = Heap
	}
	*set = Set{alloc: alloc}
	for _, v := range vals {
		set.Add(v)
	}
	return set
}

func NewSet(alloc Allocator, vals ...uint64) *Set {
	return InitSet(&Set{}, alloc, vals...)
}

// Len returns the number of keys in the tree.
func (t *Set) Len() int {
	return t.size
}

func (t *Set) Empty() bool {
	return t.root.node == nil && t.root.Key == 0
}

func (t *Set) allocator() Allocator {
	if t.alloc == nil {
		return Heap
	}
	return t.alloc
}

// Has reports whether the key is a member.
func (t *Set) Has(v uint64) bool {
	checkKey(v)
	// test for empty tree
	if t.Empty() {
		return false
	}
	// walk for best member
	p := t.root
	for p.node != nil {
		// try next node
		p = p.node.child[p.node.dir(v)]
	}
	// check for membership
	return p.Key == v
}

// Add inserts the key. It reports whether the key was absent.
func (t *Set) Add(v uint64) bool {
	checkKey(v)
	// test for empty tree
	if t.Empty() {
		t.root.Key = v
		t.size++
		return true
	}
	// walk for best member
	p := &t.root
	for p.node != nil {
		// try next node
		p = &p.node.child[p.node.dir(v)]
	}
	// key exists
	if p.Key == v {
		return false
	}
	// find critical bit
	bit := uint8(bits.LeadingZeros64(p.Key ^ v))
	var ndir byte
	if v&(1<<(63-bit)) != 0 {
		ndir++
	}
	// allocate before touching the tree, so a failing allocator
	// leaves the set as it was
	nn := t.allocator().NewNode()

	// walk for best insertion node
	wp := &t.root
	for wp.node != nil {
		n := wp.node
		if n.bit > bit {
			break
		}
		// try next node
		wp = &n.child[n.dir(v)]
	}
	nn.bit = bit
	nn.child[ndir] = Ref{Key: v}
	nn.child[1-ndir] = *wp
	*wp = Ref{node: nn}
	t.size++

	return true
}

// Del removes the key from the tree. It reports whether the key
// was present.
func (t *Set) Del(v uint64) bool {
	checkKey(v)
	// test for empty tree
	if t.Empty() {
		return false
	}
	// walk for best member
	var dir byte
	var wp *Ref
	p := &t.root
	for p.node != nil {
		wp = p
		// try next node
		dir = p.node.dir(v)
		p = &p.node.child[dir]
	}
	// check for membership
	if p.Key != v {
		return false
	}
	// delete from the tree
	t.size--
	if wp == nil {
		t.root = Ref{}
		return true
	}
	n := wp.node
	*wp = n.child[1-dir]
	t.allocator().ReleaseNode(n)
	return true
}

// Min returns the smallest member.
func (t *Set) Min() (uint64, bool) {
	if t.Empty() {
		return 0, false
	}
	p := t.root
	for p.node != nil {
		p = p.node.child[0]
	}
	return p.Key, true
}

// Max returns the largest member.
func (t *Set) Max() (uint64, bool) {
	if t.Empty() {
		return 0, false
	}
	p := t.root
	for p.node != nil {
		p = p.node.child[1]
	}
	return p.Key, true
}

// Merge merges another Set into this one. Returns itself.
func (t *Set) Merge(other *Set) *Set {
	if other != nil {
		other.Iter(func(v uint64) bool {
			t.Add(v)
			return true
		})
	}
	return t
}

// Iter calls a handler for every key in ascending order.
// It returns whether all keys were iterated.
// The handler can continue the process by returning true or abort with false.
func (t *Set) Iter(handler func(uint64) bool) bool {
	// test empty tree
	if t.Empty() {
		return true
	}
	return t.iterate(t.root, handler)
}

// iterate calls the key handler or traverses both node children unless aborted.
func (t *Set) iterate(p Ref, h func(uint64) bool) bool {
	if p.node != nil {
		return t.iterate(p.node.child[0], h) && t.iterate(p.node.child[1], h)
	}
	return h(p.Key)
}

// Keys returns all keys, as a []uint64 slice, in ascending order.
func (t *Set) Keys() []uint64 {
	keys := make([]uint64, 0, t.size)

	// empty tree?
	if t.Empty() {
		return keys
	}

	// Walk the tree without function recursion
	to_visit := make([]*Ref, 1)

	// Walk the left side of the root
	p := &t.root
	to_visit[0] = p

	for l := len(to_visit); l > 0; l = len(to_visit) {
		// shift the list to get the first item

		p = to_visit[l-1]
		to_visit = to_visit[:l-1]

		// leaf?
		if p.node == nil {
			keys = append(keys, p.Key)
		} else {
			// unshift the children and continue
			to_visit = append(to_visit, &p.node.child[1], &p.node.child[0])
		}
	}
	return keys
}

// Clear releases every node through the bound allocator, exactly
// once each, and empties the set.
func (t *Set) Clear() {
	if t.root.node != nil {
		alloc := t.allocator()

		// Walk the tree without function recursion
		to_visit := []*Node{t.root.node}

		for l := len(to_visit); l > 0; l = len(to_visit) {
			n := to_visit[l-1]
			to_visit = to_visit[:l-1]

			// queue the children before the release wipes them
			if c := n.child[0].node; c != nil {
				to_visit = append(to_visit, c)
			}
			if c := n.child[1].node; c != nil {
				to_visit = append(to_visit, c)
			}
			alloc.ReleaseNode(n)
		}
	}
	t.root = Ref{}
	t.size = 0
}
