package coursegraph

import (
	"context"
	"sort"
	"sync"
)

// MemoryGraph is the reference Graph implementation: a mutex-guarded
// adjacency structure used by the test suite and by deployments with no
// graph backend configured.
type MemoryGraph struct {
	mu    sync.RWMutex
	nodes map[string]Node
	edges map[string]Edge   // keyed by Edge.Key()
	out   map[string][]Edge // outgoing adjacency, insertion order
}

func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		nodes: make(map[string]Node),
		edges: make(map[string]Edge),
		out:   make(map[string][]Edge),
	}
}

func (g *MemoryGraph) UpsertNode(_ context.Context, n Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.upsertLocked(n)
	return nil
}

func (g *MemoryGraph) upsertLocked(n Node) {
	if n.Code == "" {
		n.Code = n.ID
	}
	if n.Title == "" {
		n.Title = n.ID
	}
	g.nodes[n.ID] = n
}

// ensureLocked creates a placeholder node whose code and title fall back to
// the id, without touching an existing node.
func (g *MemoryGraph) ensureLocked(id string) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = Node{ID: id, Code: id, Title: id}
	}
}

func (g *MemoryGraph) MergeEdge(_ context.Context, e Edge) error {
	if e.From == e.To {
		return ErrSelfEdge
	}
	pair := Edge{From: e.To, To: e.From, Relation: e.Relation.Inverse(), GroupID: e.GroupID}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureLocked(e.From)
	g.ensureLocked(e.To)
	g.mergeLocked(e)
	g.mergeLocked(pair)
	return nil
}

func (g *MemoryGraph) mergeLocked(e Edge) {
	key := e.Key()
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = e
	g.out[e.From] = append(g.out[e.From], e)
}

func (g *MemoryGraph) Traverse(_ context.Context, startID string, rel Relation, maxDepth int) (*Subgraph, error) {
	if rel != RelRequires && rel != RelUnlocks {
		return nil, ErrRelationNotTraversable
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	result := &Subgraph{Nodes: []Node{}, Edges: []Edge{}}
	if _, ok := g.nodes[startID]; !ok || maxDepth < 1 {
		return result, nil
	}

	seen := map[string]struct{}{startID: {}}
	edgeSeen := make(map[string]struct{})
	frontier := []string{startID}
	result.Nodes = append(result.Nodes, g.nodes[startID])

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		sort.Strings(frontier)
		var next []string
		for _, id := range frontier {
			for _, e := range g.sortedOut(id, rel) {
				if _, ok := seen[e.To]; !ok {
					if len(seen) >= MaxTraversalNodes {
						continue
					}
					seen[e.To] = struct{}{}
					result.Nodes = append(result.Nodes, g.nodes[e.To])
					next = append(next, e.To)
				}
				if _, ok := edgeSeen[e.Key()]; !ok {
					edgeSeen[e.Key()] = struct{}{}
					result.Edges = append(result.Edges, e)
				}
			}
		}
		frontier = next
	}

	result.Sort()
	return result, nil
}

func (g *MemoryGraph) sortedOut(id string, rel Relation) []Edge {
	var out []Edge
	for _, e := range g.out[id] {
		if e.Relation == rel {
			out = append(out, e)
		}
	}
	// Frontier processed lowest target id first so cap truncation is
	// deterministic.
	sort.Slice(out, func(i, j int) bool {
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return out[i].GroupID < out[j].GroupID
	})
	return out
}

// Snapshot returns the full node and edge sets, sorted. Intended for tests
// and diagnostics.
func (g *MemoryGraph) Snapshot() *Subgraph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := &Subgraph{
		Nodes: make([]Node, 0, len(g.nodes)),
		Edges: make([]Edge, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		s.Nodes = append(s.Nodes, n)
	}
	for _, e := range g.edges {
		s.Edges = append(s.Edges, e)
	}
	s.Sort()
	return s
}

// Sort orders nodes by id and edges by their dedup tuple for stable output.
func (s *Subgraph) Sort() {
	sort.Slice(s.Nodes, func(i, j int) bool { return s.Nodes[i].ID < s.Nodes[j].ID })
	sort.Slice(s.Edges, func(i, j int) bool { return s.Edges[i].Key() < s.Edges[j].Key() })
}
