package sprintmap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// seqSource replays a scripted sequence of random values, cycling when it
// runs out.
type seqSource struct {
	vals []uint32
	pos  int
}

func newSeqSource(vals ...uint32) *seqSource {
	return &seqSource{vals: vals}
}

func (s *seqSource) Uint32() uint32 {
	val := s.vals[s.pos%len(s.vals)]
	s.pos++

	return val
}

// script replaces the sequence and restarts it.
func (s *seqSource) script(vals ...uint32) {
	s.vals = append(s.vals[:0], vals...)
	s.pos = 0
}

// requireSound fails the test if the map reports any structural violation.
func requireSound[V any](t testing.TB, m *Map[V]) {
	t.Helper()

	require.Empty(t, m.CheckIntegrity(), m.DumpString())
}

// nodeAt follows the slots of key down to the node at depth.
func nodeAt[V any](m *Map[V], key uint32, depth int) *node[V] {
	cur := m.root

	for d := 0; d < depth; d++ {
		frag := fragment(key, d*fragWidth)
		cur = cur.refs[cur.index(frag)].child
	}

	return cur
}
