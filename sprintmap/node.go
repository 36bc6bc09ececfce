package sprintmap

import (
	"github.com/aglyzov/sprintmap/bitops"
)

const (
	fragWidth = 5                    // bits consumed per level
	fragMask  = 1<<fragWidth - 1     // 0b_11111
	slotCount = 1 << fragWidth       // 32 slots per node
	fullMask  = ^uint32(0)           // every slot set
	maxShift  = MaxDepth * fragWidth // shift of the deepest level (25)
)

// ref is a packed array entry: either a resident value or a child node.
type ref[V any] struct {
	val   V
	child *node[V]
}

// node holds 32 logical slots classified by a and b, with one packed keys/refs
// entry per occupied slot in ascending slot order.
type node[V any] struct {
	a    uint32
	b    uint32
	keys []uint32
	refs []ref[V]
}

// occupied marks non-empty slots.
func (n *node[V]) occupied() uint32 { return n.a | n.b }

// terminal marks slots holding a key-value pair.
func (n *node[V]) terminal() uint32 { return n.a &^ n.b }

// internal marks slots holding a child node. The associated key is the path
// prefix leading to the child.
func (n *node[V]) internal() uint32 { return ^n.a & n.b }

// saturated marks slots that are completely filled. At max depth this is
// equivalent to occupancy; above it this marks child nodes whose own slots
// are all saturated.
func (n *node[V]) saturated() uint32 { return n.a & n.b }

// children marks every slot referencing a child node, saturated or not.
func (n *node[V]) children() uint32 { return n.b }

func (n *node[V]) size() int { return len(n.keys) }

// index returns the packed index of slot frag, or -1 if the slot is vacant.
func (n *node[V]) index(frag int) int {
	return bitops.PackedIndex(n.occupied(), frag)
}

// setTerminal stores a key-value pair into vacant slot frag.
func (n *node[V]) setTerminal(frag int, key uint32, val V) {
	bit := uint32(1) << frag

	n.a |= bit
	n.b &^= bit

	idx := bitops.Rank(n.occupied(), frag)
	n.insertAt(idx, key, ref[V]{val: val})
}

// insertAt shifts the packed arrays right by one starting at idx.
func (n *node[V]) insertAt(idx int, key uint32, r ref[V]) {
	total := len(n.keys)

	n.keys = append(n.keys, 0)
	n.refs = append(n.refs, ref[V]{})

	copy(n.keys[idx+1:], n.keys[idx:total])
	copy(n.refs[idx+1:], n.refs[idx:total])

	n.keys[idx] = key
	n.refs[idx] = r
}

// deleteAt shifts the packed arrays left by one over idx.
func (n *node[V]) deleteAt(idx int) {
	last := len(n.keys) - 1

	copy(n.keys[idx:], n.keys[idx+1:])
	copy(n.refs[idx:], n.refs[idx+1:])

	n.keys = n.keys[:last]
	n.refs[last] = ref[V]{} // drop references for the GC
	n.refs = n.refs[:last]
}

// reset zeroes the node but retains the packed arrays' storage.
func (n *node[V]) reset() {
	clear(n.refs)

	n.a, n.b = 0, 0
	n.keys = n.keys[:0]
	n.refs = n.refs[:0]
}

// release hands the node back to its allocator once it is unlinked from the
// tree.
func (n *node[V]) release(p *nodePool[V]) {
	p.put(n)
}
