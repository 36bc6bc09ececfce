package sprintmap

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aglyzov/sprintmap/bitops"
)

// Stats describes the shape of a Map at one point in time.
type Stats struct {
	// Len is the number of resident key-value pairs.
	Len int
	// Nodes is the number of nodes in the tree, root included.
	Nodes int
	// NodeCounts is the number of nodes at each depth.
	NodeCounts [MaxDepth + 1]int
	// TermCounts is the number of resident pairs stored at each depth.
	TermCounts [MaxDepth + 1]int
	// Saturated is the number of slots marked saturated above max depth.
	Saturated int

	pooled    bool
	poolLive  int
	poolFree  int
	poolTotal int
}

// Stats walks the tree and returns its shape.
func (m *Map[V]) Stats() *Stats {
	s := &Stats{
		Len:    m.size,
		pooled: m.pool != nil,
	}

	s.poolLive, s.poolFree, s.poolTotal = m.pool.stats()
	statsRec(s, m.root, 0)

	return s
}

func statsRec[V any](s *Stats, n *node[V], depth int) {
	s.Nodes++
	s.NodeCounts[depth]++
	s.TermCounts[depth] += bitops.Popcount(n.terminal())
	s.Saturated += bitops.Popcount(n.saturated())

	for i := range n.refs {
		if child := n.refs[i].child; child != nil {
			statsRec(s, child, depth+1)
		}
	}
}

func (s *Stats) String() string {
	joinInts := func(vals []int) string {
		strs := make([]string, len(vals))

		for i, v := range vals {
			strs[i] = fmt.Sprintf("%d", v)
		}

		return strings.Join(strs, " ")
	}

	report := [][]string{
		{"Len", fmt.Sprintf("%d", s.Len)},
		{"Fill", fmt.Sprintf("%.6f%%", 100*float64(s.Len)/float64(Capacity))},
		{"Nodes", fmt.Sprintf("%d", s.Nodes)},
		{"NodeCounts", joinInts(s.NodeCounts[:])},
		{"TermCounts", joinInts(s.TermCounts[:])},
		{"Saturated", fmt.Sprintf("%d", s.Saturated)},
	}

	if s.pooled {
		report = append(report, [][]string{
			{"poolLive", fmt.Sprintf("%d", s.poolLive)},
			{"poolFree", fmt.Sprintf("%d", s.poolFree)},
			{"poolTotal", fmt.Sprintf("%d", s.poolTotal)},
		}...)
	}

	b := new(strings.Builder)
	w := tabwriter.NewWriter(b, 0, 0, 1, ' ', 0)

	for _, row := range report {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}

	_ = w.Flush()

	return b.String()
}
