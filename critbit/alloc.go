package critbit

import "unsafe"

// Allocator supplies storage for internal nodes. A Set never
// creates node storage any other way, so substituting a pool or an
// arena changes the allocation strategy without touching the trie.
//
// The Set overwrites every field of a fresh node before linking it,
// so NewNode may hand out recycled storage as-is. ReleaseNode gets
// every node back exactly once, on Del or Clear.
type Allocator interface {
	NewNode() *Node
	ReleaseNode(*Node)
}

// NodeSize returns the byte size of one internal node, for sizing
// arena-style backing regions.
func NodeSize() uintptr {
	return unsafe.Sizeof(Node{})
}

// HeapAllocator allocates every node separately and leaves
// reclamation to the garbage collector.
type HeapAllocator struct{}

// Heap is the allocator a Set is bound to by default.
var Heap HeapAllocator

func (HeapAllocator) NewNode() *Node    { return &Node{} }
func (HeapAllocator) ReleaseNode(*Node) {}

const poolChunkLen = 256

// NodePool recycles released nodes through a free list and only
// grows when the list runs dry. The backing storage is chunked, so
// node pointers stay stable while the pool grows.
type NodePool struct {
	chunks [][]Node
	used   int // nodes handed out of the last chunk
	free   []*Node
}

func NewNodePool(pre_alloc int) *NodePool {
	if pre_alloc <= 0 {
		pre_alloc = poolChunkLen
	}
	return &NodePool{
		chunks: [][]Node{make([]Node, pre_alloc)},
		free:   make([]*Node, 0, 21),
	}
}

// NewNode pops a node from the free list or bumps the last chunk,
// growing the pool by a chunk if necessary.
func (p *NodePool) NewNode() *Node {
	if l := len(p.free); l > 0 {
		n := p.free[l-1]
		p.free = p.free[:l-1]
		return n
	}
	last := p.chunks[len(p.chunks)-1]
	if p.used == len(last) {
		last = make([]Node, poolChunkLen)
		p.chunks = append(p.chunks, last)
		p.used = 0
	}
	n := &last[p.used]
	p.used++
	return n
}

// ReleaseNode stores a node in the free list for a re-use
// by subsequent NewNode calls.
func (p *NodePool) ReleaseNode(n *Node) {
	*n = Node{} // clear the Node
	p.free = append(p.free, n)
}

// Reset forgets about handed-out nodes and free-list entries,
// keeping the first chunk allocated (not freeing the memory).
func (p *NodePool) Reset() {
	p.chunks = p.chunks[:1]
	p.used = 0
	p.free = p.free[:0]
}

// Arena is a bump allocator: nodes are handed out sequentially from
// pre-sized slabs and individual releases are no-ops. It suits
// build-once workloads like Sort, where the node count is known up
// front (a set of n keys holds exactly n-1 internal nodes).
type Arena struct {
	slabs [][]Node
	used  int // nodes handed out of the last slab
}

func NewArena(num_nodes int) *Arena {
	if num_nodes < 1 {
		num_nodes = 1
	}
	return &Arena{slabs: [][]Node{make([]Node, num_nodes)}}
}

func (a *Arena) NewNode() *Node {
	last := a.slabs[len(a.slabs)-1]
	if a.used == len(last) {
		// the arena was undersized - grow by the initial slab size
		last = make([]Node, len(a.slabs[0]))
		a.slabs = append(a.slabs, last)
		a.used = 0
	}
	n := &last[a.used]
	a.used++
	return n
}

func (a *Arena) ReleaseNode(*Node) {}

// Reset makes the whole arena available again (not freeing the memory).
func (a *Arena) Reset() {
	a.slabs = a.slabs[:1]
	a.used = 0
}
