package sprintmap

import (
	"github.com/aglyzov/sprintmap/bitops"
)

const (
	MaxDepth = 5                          // deepest level, root is 0
	KeyBits  = (MaxDepth + 1) * fragWidth // 30
	KeyMask  = uint32(1)<<KeyBits - 1     // 0x3FFF_FFFF
	Capacity = 1 << KeyBits               // max number of resident pairs

	// NoKey is returned by Keygen and Insert when the map is full. It lies
	// outside the 30-bit key space.
	NoKey = ^uint32(0)
)

// Map is a sparse trie that generates its own unique keys. The zero value is
// not usable; create one with New.
type Map[V any] struct {
	root *node[V]
	size int
	rand Source
	pool *nodePool[V]
}

// path records the ancestors visited by a mutating descent, one entry per
// level above the current node.
type path[V any] struct {
	nodes [MaxDepth]*node[V]
	frags [MaxDepth]int
	index [MaxDepth]int
}

// New returns an empty Map.
func New[V any](opts ...func(*config)) *Map[V] {
	cfg := resolveConfig(opts...)

	m := &Map[V]{
		rand: cfg.source,
	}

	if cfg.pooled {
		m.pool = newNodePool[V](cfg.poolSize)
	}

	m.root = m.pool.get()

	return m
}

// Len returns the number of resident key-value pairs.
func (m *Map[V]) Len() int {
	return m.size
}

// Full reports whether all 2^30 keys are in use.
func (m *Map[V]) Full() bool {
	return m.root.saturated() == fullMask
}

func fragment(key uint32, shift int) int {
	return int(key>>shift) & fragMask
}

// Search returns the value associated with key, or fallback if key is absent.
func (m *Map[V]) Search(key uint32, fallback V) V {
	if val, ok := m.Get(key); ok {
		return val
	}

	return fallback
}

// Get returns the value associated with key and whether it was found.
func (m *Map[V]) Get(key uint32) (V, bool) {
	var (
		cur   = m.root
		shift = 0
	)

	for shift <= maxShift {
		var (
			frag = fragment(key, shift)
			bit  = uint32(1) << frag
		)

		if cur.children()&bit != 0 {
			cur = cur.refs[cur.index(frag)].child
			shift += fragWidth

			continue
		}

		if cur.terminal()&bit != 0 {
			idx := cur.index(frag)

			if cur.keys[idx] == key {
				return cur.refs[idx].val, true
			}
		}

		break
	}

	var zero V

	return zero, false
}

// Keygen returns a random key not yet associated with a value, or
// (NoKey, false) when the map is full. It does not reserve the key.
func (m *Map[V]) Keygen() (uint32, bool) {
	cur := m.root

	// guard overflow
	if cur.saturated() == fullMask {
		return NoKey, false
	}

	// draw a 30-bit candidate, then descend and patch fragments as necessary so
	// the key always lands on a logical vacancy
	var (
		key   = m.rand.Uint32() & KeyMask
		shift = 0
	)

	for {
		var (
			frag = fragment(key, shift)
			bit  = uint32(1) << frag
			occ  = cur.occupied()
			sat  = cur.saturated()
		)

		if shift == maxShift {
			sat = occ
		}

		if sat&bit != 0 {
			// redirect to the next unsaturated slot; the old fragment's
			// randomness picks where the scan starts
			frag = bitops.NextSetBitWrap(^sat, frag)
			bit = uint32(1) << frag
			key = key&^(fragMask<<shift) | uint32(frag)<<shift
		}

		// vacant slot: key is valid. At max depth the loop always exits here,
		// saturation tracking having steered it to a vacancy.
		if occ&bit == 0 {
			return key, true
		}

		invariant(shift < maxShift, "keygen reached occupied slot %d at max depth", frag)

		idx := cur.index(frag)

		if cur.terminal()&bit != 0 {
			// a resident pair occupies the slot and is the only key in this
			// subtree: any key differing from it is vacant
			if resident := cur.keys[idx]; resident == key {
				shift += fragWidth

				delta := uint32(fragment(key, shift))
				if delta == 0 {
					delta = slotCount / 2
				}

				next := (key>>shift + delta) & fragMask
				key = key&^(fragMask<<shift) | next<<shift

				invariant(key != resident, "keygen perturbation kept resident key %#x", key)
			}

			return key, true
		}

		invariant(cur.internal()&bit != 0, "keygen slot %d neither terminal nor internal", frag)

		cur = cur.refs[idx].child
		shift += fragWidth
	}
}

// Insert stores val under a newly generated key and returns that key. Returns
// (NoKey, false) without changing the map when it is full.
func (m *Map[V]) Insert(val V) (uint32, bool) {
	key, ok := m.Keygen()
	if !ok {
		return NoKey, false
	}

	var (
		trail path[V]
		cur   = m.root
		depth = 0
		shift = 0
	)

	// descend as directed by key until a vacant slot is found, splitting any
	// resident pair in the way; record the visited nodes for saturation
	for {
		var (
			frag = fragment(key, shift)
			bit  = uint32(1) << frag
		)

		idx := cur.index(frag)

		if idx < 0 {
			cur.setTerminal(frag, key, val)
			m.size++

			if depth == MaxDepth {
				m.saturate(cur, &trail)
			}

			return key, true
		}

		if cur.terminal()&bit != 0 {
			// resident pair: mount a new node holding only the resident pair
			// in its place, then keep descending
			var (
				resident = cur.keys[idx]
				child    = m.pool.get()
			)

			invariant(resident != key, "insert collided with resident key %#x", key)

			child.setTerminal(fragment(resident, shift+fragWidth), resident, cur.refs[idx].val)

			cur.a &^= bit
			cur.b |= bit
			cur.keys[idx] = key & (uint32(1)<<(shift+fragWidth) - 1)
			cur.refs[idx] = ref[V]{child: child}
		}

		invariant(cur.internal()&bit != 0, "insert descending through slot %d that is not internal", frag)
		invariant(depth < MaxDepth, "insert descending below max depth")

		trail.nodes[depth] = cur
		trail.frags[depth] = frag
		trail.index[depth] = idx

		cur = cur.refs[idx].child
		depth++
		shift += fragWidth
	}
}

// saturate marks ancestors saturated bottom-up after an insertion into the
// max-depth node leaf, stopping at the first one that stays unsaturated.
func (m *Map[V]) saturate(leaf *node[V], trail *path[V]) {
	full := leaf.occupied() == fullMask

	for depth := MaxDepth - 1; full && depth >= 0; depth-- {
		parent := trail.nodes[depth]
		parent.a |= uint32(1) << trail.frags[depth]
		full = parent.saturated() == fullMask
	}
}

// Remove deletes key and returns its value, or fallback if key is absent.
func (m *Map[V]) Remove(key uint32, fallback V) V {
	if val, ok := m.Delete(key); ok {
		return val
	}

	return fallback
}

// Delete removes key and returns its value and whether it was present.
func (m *Map[V]) Delete(key uint32) (V, bool) {
	var (
		zero  V
		trail path[V]
		cur   = m.root
		depth = 0
		shift = 0
		frag  int
		bit   uint32
	)

	// descend through child nodes until a vacant or terminal slot is found
	for {
		frag = fragment(key, shift)
		bit = uint32(1) << frag

		if cur.children()&bit == 0 || depth == MaxDepth {
			break
		}

		idx := cur.index(frag)

		trail.nodes[depth] = cur
		trail.frags[depth] = frag
		trail.index[depth] = idx

		cur = cur.refs[idx].child
		depth++
		shift += fragWidth
	}

	if cur.terminal()&bit == 0 {
		return zero, false // vacant
	}

	idx := cur.index(frag)
	if cur.keys[idx] != key {
		return zero, false // the slot belongs to another key
	}

	val := cur.refs[idx].val

	// the subtree below each ancestor loses a pair and can no longer be full
	for d := 0; d < depth; d++ {
		trail.nodes[d].a &^= uint32(1) << trail.frags[d]
	}

	if depth > 0 && cur.b == 0 && bitops.Popcount(cur.occupied()&^bit) == 1 {
		// lift the lone other pair into the nearest ancestor that keeps more
		// than one occupant, discarding the single-child chain below it
		var (
			other = 1 - idx
			rkey  = cur.keys[other]
			rval  = cur.refs[other].val
		)

		for {
			cur.release(m.pool)
			depth--
			cur = trail.nodes[depth]

			if depth == 0 || cur.size() != 1 {
				break
			}
		}

		var (
			i = trail.index[depth]
			b = uint32(1) << trail.frags[depth]
		)

		cur.keys[i] = rkey
		cur.refs[i] = ref[V]{val: rval}
		cur.a |= b
		cur.b &^= b
	} else {
		// root, or a node keeping two or more occupants: just drop the pair
		cur.a &^= bit
		cur.b &^= bit
		cur.deleteAt(idx)
	}

	m.size--

	return val, true
}

// Clear removes every pair and returns the emptied map.
func (m *Map[V]) Clear() *Map[V] {
	m.pool.putTree(m.root)

	m.root = m.pool.get()
	m.size = 0

	return m
}
