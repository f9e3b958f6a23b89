package oracle

import "github.com/coregx/ktestable/ktest"

const (
	prefixTag = "P:"
	suffixTag = "S:"
)

type color int

const (
	white color = iota
	red
	blue
)

// ConsistentGraph decides is_union_consistent_with(A, B) using the
// reference bipartite-reachability variant of spec §4.3.1: build a
// directed graph over tagged prefixes, tagged suffixes, and infixes of
// A ∪ B, compute reachability, and check that no RED node can reach a
// BLUE node and no BLUE node can reach a RED node. It exists only to
// be cross-checked against Consistent in tests (spec property P4);
// Consistent is the variant Learn actually calls.
func ConsistentGraph(a, b *ktest.Descriptor) (bool, error) {
	if a.K() != b.K() {
		return false, &ktest.IncompatibleKError{A: a.K(), B: b.K()}
	}
	k := a.K()

	pa, sa, ia, _ := a.RawFactors()
	pb, sb, ib, _ := b.RawFactors()

	g := newGraph()
	g.colorPrefixes(pa, pb)
	g.colorSuffixes(sa, sb)
	g.colorInfixes(ia, ib)
	g.link(k)

	for node, c := range g.colorOf {
		if c != red {
			continue
		}
		if g.reachesColor(node, blue) {
			return false, nil
		}
	}
	for node, c := range g.colorOf {
		if c != blue {
			continue
		}
		if g.reachesColor(node, red) {
			return false, nil
		}
	}
	return true, nil
}

// graph is the directed node/edge structure of spec §4.3.1.
type graph struct {
	colorOf map[string]color
	edges   map[string][]string
	// infixes holds the untagged infix nodes, kept separately from
	// prefix/suffix nodes so edge construction can tell them apart
	// without re-deriving the tag from the node string.
	infixes map[string]struct{}
	prefs   map[string]struct{}
	sufs    map[string]struct{}
}

func newGraph() *graph {
	return &graph{
		colorOf: make(map[string]color),
		edges:   make(map[string][]string),
		infixes: make(map[string]struct{}),
		prefs:   make(map[string]struct{}),
		sufs:    make(map[string]struct{}),
	}
}

func (g *graph) colorPrefixes(a, b map[string]struct{}) {
	for u := range a {
		g.setColor(prefixTag+u, red)
		g.prefs[u] = struct{}{}
	}
	for u := range b {
		if _, ok := a[u]; ok {
			g.setColor(prefixTag+u, white)
		} else {
			g.setColor(prefixTag+u, blue)
		}
		g.prefs[u] = struct{}{}
	}
}

func (g *graph) colorSuffixes(a, b map[string]struct{}) {
	for v := range a {
		g.setColor(suffixTag+v, red)
		g.sufs[v] = struct{}{}
	}
	for v := range b {
		if _, ok := a[v]; ok {
			g.setColor(suffixTag+v, white)
		} else {
			g.setColor(suffixTag+v, blue)
		}
		g.sufs[v] = struct{}{}
	}
}

func (g *graph) colorInfixes(a, b map[string]struct{}) {
	for v := range a {
		g.setColor(v, red)
		g.infixes[v] = struct{}{}
	}
	for v := range b {
		if _, ok := a[v]; ok {
			g.setColor(v, white)
		} else {
			g.setColor(v, blue)
		}
		g.infixes[v] = struct{}{}
	}
}

// setColor assigns a node's color the first time it is seen as RED or
// BLUE; a node later found in the other operand becomes WHITE.
func (g *graph) setColor(node string, c color) {
	existing, seen := g.colorOf[node]
	if !seen {
		g.colorOf[node] = c
		return
	}
	if existing != c {
		g.colorOf[node] = white
	}
}

// link builds the edge families of the reachability graph: a tagged
// prefix u enters every infix whose first k-1 bytes equal u; an infix
// u leads to an infix v when u[1:] == v[:k-1]; an infix u leads to a
// tagged suffix v when u[1:] == v; and a tagged prefix u leads
// directly to the tagged suffix u when both exist, since the union
// then accepts u itself as a short string.
func (g *graph) link(k int) {
	for u := range g.prefs {
		if len(u) != k-1 {
			continue
		}
		for v := range g.infixes {
			if u == v[:k-1] {
				g.addEdge(prefixTag+u, v)
			}
		}
	}
	for u := range g.infixes {
		for v := range g.infixes {
			if u[1:] == v[:k-1] {
				g.addEdge(u, v)
			}
		}
	}
	for u := range g.infixes {
		for v := range g.sufs {
			if u[1:] == v {
				g.addEdge(u, suffixTag+v)
			}
		}
	}
	for u := range g.prefs {
		if _, ok := g.sufs[u]; ok {
			g.addEdge(prefixTag+u, suffixTag+u)
		}
	}
}

func (g *graph) addEdge(from, to string) {
	g.edges[from] = append(g.edges[from], to)
}

// reachesColor reports whether a breadth-first walk from start visits
// any node colored want.
func (g *graph) reachesColor(start string, want color) bool {
	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, next := range g.edges[n] {
			if _, ok := visited[next]; ok {
				continue
			}
			if g.colorOf[next] == want {
				return true
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return false
}
