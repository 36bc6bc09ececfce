package sprintmap

// nodePool recycles the storage of nodes unlinked by Remove and Clear.
//
// A nil *nodePool is valid: get allocates a fresh node and put drops it for
// the garbage collector.
type nodePool[V any] struct {
	free  []*node[V]
	live  int
	total int
}

func newNodePool[V any](preAlloc int) *nodePool[V] {
	if preAlloc <= 0 {
		preAlloc = 256
	}

	p := &nodePool[V]{
		free: make([]*node[V], 0, preAlloc),
	}

	for i := 0; i < preAlloc; i++ {
		p.free = append(p.free, new(node[V]))
	}

	p.total = preAlloc

	return p
}

// get returns an empty node, reusing a released one when available.
func (p *nodePool[V]) get() *node[V] {
	if p == nil {
		return new(node[V])
	}

	p.live++

	if l := len(p.free); l > 0 {
		n := p.free[l-1]
		p.free[l-1] = nil
		p.free = p.free[:l-1]

		return n
	}

	p.total++

	return new(node[V])
}

// put clears a node and stores it in the free-list for reuse by subsequent
// get calls.
func (p *nodePool[V]) put(n *node[V]) {
	if p == nil || n == nil {
		return
	}

	p.live--

	n.reset()
	p.free = append(p.free, n)
}

// putTree releases n and every node below it.
func (p *nodePool[V]) putTree(n *node[V]) {
	if p == nil {
		return
	}

	for i := range n.refs {
		if child := n.refs[i].child; child != nil {
			p.putTree(child)
		}
	}

	p.put(n)
}

// stats returns the number of nodes checked out, sitting in the free-list and
// ever allocated.
func (p *nodePool[V]) stats() (live, free, total int) {
	if p == nil {
		return 0, 0, 0
	}

	return p.live, len(p.free), p.total
}
