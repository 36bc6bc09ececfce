package sprintmap

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/aglyzov/sprintmap/bitops"
)

// ViolationKind names a structural defect found by CheckIntegrity.
type ViolationKind string

const (
	// BadNode: a non-root node holds fewer than two entries and is not a
	// single-child link.
	BadNode ViolationKind = "bad node"
	// BadTerm: a resident key's address bits disagree with its tree path.
	BadTerm ViolationKind = "bad term"
	// BadLink: a child slot's stored path prefix disagrees with its address.
	BadLink ViolationKind = "bad link"
	// BadPacking: packed arrays disagree with the occupancy bitmap.
	BadPacking ViolationKind = "bad packing"
	// BadSaturation: a slot's saturated bit disagrees with its subtree.
	BadSaturation ViolationKind = "bad saturation"
	// BadDepth: a node sits below the maximum depth.
	BadDepth ViolationKind = "bad depth"
	// BadSize: the size counter disagrees with the number of resident keys.
	BadSize ViolationKind = "bad size"
)

// Violation locates one structural defect. Addr is the slot's address
// computed from the tree path; Key is the key stored in the slot.
type Violation struct {
	Kind  ViolationKind
	Depth int
	Slot  int
	Addr  uint32
	Key   uint32
}

func (v Violation) Error() string {
	return fmt.Sprintf("sprintmap: %s: depth=%d slot=%s addr=%s key=%s",
		v.Kind, v.Depth, b32hex(uint32(v.Slot), 1, 2), b32hex(v.Addr, 6, 8), b32hex(v.Key, 6, 8))
}

// CheckIntegrity walks the whole tree and returns every structural violation
// found. An empty result means the tree is sound. The map is not modified.
func (m *Map[V]) CheckIntegrity() []Violation {
	chk := checker[V]{}

	chk.checkNode(m.root, 0, 0)

	if chk.terms != m.size {
		chk.out = append(chk.out, Violation{
			Kind:  BadSize,
			Depth: -1,
			Slot:  -1,
			Addr:  uint32(m.size),
			Key:   uint32(chk.terms),
		})
	}

	return chk.out
}

// Validate combines the violations reported by CheckIntegrity into a single
// error, or returns nil for a sound tree.
func (m *Map[V]) Validate() error {
	var err error

	for _, v := range m.CheckIntegrity() {
		err = multierr.Append(err, v)
	}

	return err
}

type checker[V any] struct {
	out   []Violation
	terms int
}

// checkNode verifies n and its subtree and reports whether the subtree is
// completely full.
func (c *checker[V]) checkNode(n *node[V], depth int, addr uint32) bool {
	var (
		shift = depth * fragWidth
		mask  = uint32(1)<<(shift+fragWidth) - 1
		occ   = n.occupied()
		total = len(n.keys)
	)

	if depth > MaxDepth {
		c.out = append(c.out, Violation{Kind: BadDepth, Depth: depth, Slot: -1, Addr: addr})

		return false
	}

	if total != len(n.refs) || total != bitops.Popcount(occ) {
		c.out = append(c.out, Violation{Kind: BadPacking, Depth: depth, Slot: -1, Addr: addr, Key: occ})

		return false
	}

	if depth > 0 && total < 2 && (total == 0 || n.children() == 0) {
		var key uint32
		if total > 0 {
			key = n.keys[0]
		}

		c.out = append(c.out, Violation{Kind: BadNode, Depth: depth, Slot: -1, Addr: addr, Key: key})
	}

	full := occ == fullMask

	for slot := 0; slot < slotCount; slot++ {
		idx := n.index(slot)
		if idx == -1 {
			continue
		}

		var (
			bit      = uint32(1) << slot
			key      = n.keys[idx]
			child    = n.refs[idx].child
			slotAddr = uint32(slot)<<shift | addr
		)

		if n.children()&bit == 0 {
			c.terms++

			if child != nil {
				c.out = append(c.out, Violation{Kind: BadPacking, Depth: depth, Slot: slot, Addr: slotAddr, Key: key})
			}

			if mask&(slotAddr^key) != 0 || key&^KeyMask != 0 {
				c.out = append(c.out, Violation{Kind: BadTerm, Depth: depth, Slot: slot, Addr: slotAddr, Key: key})
			}

			if depth < MaxDepth {
				full = false
			}

			continue
		}

		if child == nil {
			c.out = append(c.out, Violation{Kind: BadPacking, Depth: depth, Slot: slot, Addr: slotAddr, Key: key})
			full = false

			continue
		}

		if key != slotAddr {
			c.out = append(c.out, Violation{Kind: BadLink, Depth: depth, Slot: slot, Addr: slotAddr, Key: key})
		}

		childFull := c.checkNode(child, depth+1, slotAddr)

		if childFull != (n.saturated()&bit != 0) {
			c.out = append(c.out, Violation{Kind: BadSaturation, Depth: depth, Slot: slot, Addr: slotAddr, Key: key})
		}

		full = full && childFull
	}

	return full
}
