package sprintmap

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// DumpString is just a wrapper for Dump.
func (m *Map[V]) DumpString() string {
	w := new(strings.Builder)
	m.Dump(w)

	return w.String()
}

// Dump writes the whole tree to w as nested indented text.
func (m *Map[V]) Dump(w io.Writer) {
	if m == nil {
		return
	}

	fmt.Fprintf(w, "### size(%d)\n", m.size)
	dumpRec(w, m.root, 0, "")
}

// DumpPath writes the subtree rooted at the node addressed by path, a string
// of base-32 slot digits written like a key: the rightmost digit selects the
// root slot.
func (m *Map[V]) DumpPath(w io.Writer, path string) error {
	cur := m.root

	for i := len(path) - 1; i >= 0; i-- {
		frag, err := strconv.ParseUint(path[i:i+1], slotCount, 8)
		if err != nil {
			return errors.Wrapf(err, "bad slot digit %q in path %q", path[i], path)
		}

		if cur.children()&(uint32(1)<<frag) == 0 {
			return errors.Errorf("path %q: slot %s at depth %d holds no node",
				path, b32hex(uint32(frag), 1, 2), len(path)-1-i)
		}

		cur = cur.refs[cur.index(int(frag))].child
	}

	dumpRec(w, cur, len(path), "")

	return nil
}

func dumpRec[V any](w io.Writer, n *node[V], depth int, indent string) {
	fmt.Fprintf(w, "%sNode d:%d a:%s b:%s\n", indent, depth, b32hex(n.a, 7, 8), b32hex(n.b, 7, 8))

	indent += "  "

	for slot := 0; slot < slotCount; slot++ {
		idx := n.index(slot)
		if idx == -1 {
			continue
		}

		var (
			bit = uint32(1) << slot
			tag = b32hex(uint32(slot), 1, 2)
		)

		switch {
		case n.terminal()&bit != 0:
			fmt.Fprintf(w, "%s%s: Term %s\n", indent, tag, b32hex(n.keys[idx], 6, 8))
		case n.saturated()&bit != 0:
			fmt.Fprintf(w, "%s%s: Full\n", indent, tag)
			dumpRec(w, n.refs[idx].child, depth+1, indent+"  ")
		default:
			fmt.Fprintf(w, "%s%s:\n", indent, tag)
			dumpRec(w, n.refs[idx].child, depth+1, indent+"  ")
		}
	}
}

// b32hex renders x in base 32 and hex, left-padded to n32 and n16 digits.
func b32hex(x uint32, n32, n16 int) string {
	return lzpad(strconv.FormatUint(uint64(x), slotCount), n32) + "|" +
		lzpad(strconv.FormatUint(uint64(x), 16), n16)
}

func lzpad(s string, n int) string {
	if pad := n - len(s); pad > 0 {
		return strings.Repeat("0", pad) + s
	}

	return s
}
