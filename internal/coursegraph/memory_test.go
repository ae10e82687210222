package coursegraph

import (
	"context"
	"fmt"
	"reflect"
	"testing"
)

func mustMerge(t *testing.T, g *MemoryGraph, e Edge) {
	t.Helper()
	if err := g.MergeEdge(context.Background(), e); err != nil {
		t.Fatalf("MergeEdge(%+v): %v", e, err)
	}
}

func nodeIDs(s *Subgraph) []string {
	ids := make([]string, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestMergeEdgeIdempotent(t *testing.T) {
	g := NewMemoryGraph()
	e := Edge{From: "CS-246", To: "CS-135", Relation: RelRequires, GroupID: "CS-246#g1"}
	mustMerge(t, g, e)
	once := g.Snapshot()
	mustMerge(t, g, e)
	twice := g.Snapshot()
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second merge changed the graph: %+v vs %+v", once, twice)
	}
}

func TestUpsertNodeIdempotentAndOverwriting(t *testing.T) {
	g := NewMemoryGraph()
	ctx := context.Background()
	if err := g.UpsertNode(ctx, Node{ID: "CS-135"}); err != nil {
		t.Fatal(err)
	}
	s := g.Snapshot()
	if s.Nodes[0].Code != "CS-135" || s.Nodes[0].Title != "CS-135" {
		t.Fatalf("placeholder fallbacks missing: %+v", s.Nodes[0])
	}
	lvl := 100
	if err := g.UpsertNode(ctx, Node{ID: "CS-135", Code: "CS 135", Title: "Designing Functional Programs", Level: &lvl}); err != nil {
		t.Fatal(err)
	}
	s = g.Snapshot()
	if s.Nodes[0].Title != "Designing Functional Programs" || s.Nodes[0].Level == nil {
		t.Fatalf("re-upsert did not overwrite: %+v", s.Nodes[0])
	}
}

func TestMergeEdgeCreatesInversePair(t *testing.T) {
	g := NewMemoryGraph()
	mustMerge(t, g, Edge{From: "CS-246", To: "CS-135", Relation: RelRequires, GroupID: "CS-246#g1"})
	s := g.Snapshot()
	requires := map[string]Edge{}
	unlocks := map[string]Edge{}
	for _, e := range s.Edges {
		switch e.Relation {
		case RelRequires:
			requires[e.GroupID+e.From+e.To] = e
		case RelUnlocks:
			unlocks[e.GroupID+e.To+e.From] = e
		}
	}
	if len(requires) != 1 || len(unlocks) != 1 {
		t.Fatalf("expected 1 REQUIRES and 1 UNLOCKS, got %d/%d", len(requires), len(unlocks))
	}
	for k := range requires {
		if _, ok := unlocks[k]; !ok {
			t.Fatalf("no matching UNLOCKS for REQUIRES %q", k)
		}
	}
}

func TestMergeEdgeAntireqSymmetric(t *testing.T) {
	g := NewMemoryGraph()
	mustMerge(t, g, Edge{From: "CS-135", To: "CS-145", Relation: RelAntireq})
	s := g.Snapshot()
	if len(s.Edges) != 2 {
		t.Fatalf("expected symmetric pair, got %d edges", len(s.Edges))
	}
	seen := map[string]bool{}
	for _, e := range s.Edges {
		if e.Relation != RelAntireq {
			t.Fatalf("unexpected relation %v", e.Relation)
		}
		seen[e.From+">"+e.To] = true
	}
	if !seen["CS-135>CS-145"] || !seen["CS-145>CS-135"] {
		t.Fatalf("missing direction: %v", seen)
	}
}

func TestMergeEdgeRejectsSelfEdge(t *testing.T) {
	g := NewMemoryGraph()
	err := g.MergeEdge(context.Background(), Edge{From: "CS-135", To: "CS-135", Relation: RelRequires, GroupID: "CS-135#g1"})
	if err != ErrSelfEdge {
		t.Fatalf("expected ErrSelfEdge, got %v", err)
	}
}

func TestTraverseDiamondDedupes(t *testing.T) {
	g := NewMemoryGraph()
	mustMerge(t, g, Edge{From: "CS-246", To: "CS-135", Relation: RelRequires, GroupID: "CS-246#g1"})
	mustMerge(t, g, Edge{From: "CS-246", To: "CS-136", Relation: RelRequires, GroupID: "CS-246#g1"})
	mustMerge(t, g, Edge{From: "CS-136", To: "CS-135", Relation: RelRequires, GroupID: "CS-136#g2"})

	sub, err := g.Traverse(context.Background(), "CS-246", RelRequires, 6)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CS-135", "CS-136", "CS-246"}
	if !reflect.DeepEqual(nodeIDs(sub), want) {
		t.Fatalf("nodes = %v, want %v", nodeIDs(sub), want)
	}
	if len(sub.Edges) != 3 {
		t.Fatalf("edges = %d, want 3 (CS-135 deduplicated across paths)", len(sub.Edges))
	}
}

func TestTraverseDepthBound(t *testing.T) {
	g := NewMemoryGraph()
	for i := 0; i < 10; i++ {
		e := Edge{
			From:     fmt.Sprintf("CS-%03d", i),
			To:       fmt.Sprintf("CS-%03d", i+1),
			Relation: RelRequires,
			GroupID:  fmt.Sprintf("CS-%03d#g1", i),
		}
		mustMerge(t, g, e)
	}
	sub, err := g.Traverse(context.Background(), "CS-000", RelRequires, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CS-000", "CS-001", "CS-002"}
	if !reflect.DeepEqual(nodeIDs(sub), want) {
		t.Fatalf("nodes = %v, want %v", nodeIDs(sub), want)
	}
	if len(sub.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(sub.Edges))
	}
}

func TestTraverseAbsentStart(t *testing.T) {
	g := NewMemoryGraph()
	sub, err := g.Traverse(context.Background(), "NOPE-999", RelRequires, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Nodes) != 0 || len(sub.Edges) != 0 {
		t.Fatalf("expected empty subgraph, got %+v", sub)
	}
}

func TestTraverseUnlocksFollowsInverse(t *testing.T) {
	g := NewMemoryGraph()
	mustMerge(t, g, Edge{From: "CS-246", To: "CS-135", Relation: RelRequires, GroupID: "CS-246#g1"})
	sub, err := g.Traverse(context.Background(), "CS-135", RelUnlocks, 6)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CS-135", "CS-246"}
	if !reflect.DeepEqual(nodeIDs(sub), want) {
		t.Fatalf("nodes = %v, want %v", nodeIDs(sub), want)
	}
}

func TestTraverseRejectsAntireq(t *testing.T) {
	g := NewMemoryGraph()
	if _, err := g.Traverse(context.Background(), "CS-135", RelAntireq, 6); err != ErrRelationNotTraversable {
		t.Fatalf("expected ErrRelationNotTraversable, got %v", err)
	}
}

func TestTraverseAntireqNotFollowed(t *testing.T) {
	g := NewMemoryGraph()
	mustMerge(t, g, Edge{From: "CS-246", To: "CS-135", Relation: RelRequires, GroupID: "CS-246#g1"})
	mustMerge(t, g, Edge{From: "CS-135", To: "CS-145", Relation: RelAntireq})
	sub, err := g.Traverse(context.Background(), "CS-246", RelRequires, 6)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range sub.Nodes {
		if n.ID == "CS-145" {
			t.Fatal("traversal crossed an ANTIREQ edge")
		}
	}
}

func TestTraverseCapDeterministic(t *testing.T) {
	g := NewMemoryGraph()
	// Fan out past the cap from a single start node.
	for i := 0; i < MaxTraversalNodes+100; i++ {
		e := Edge{
			From:     "AA-100",
			To:       fmt.Sprintf("ZZ-%04d", i),
			Relation: RelRequires,
			GroupID:  fmt.Sprintf("AA-100#g%d", i+1),
		}
		mustMerge(t, g, e)
	}
	sub, err := g.Traverse(context.Background(), "AA-100", RelRequires, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Nodes) != MaxTraversalNodes {
		t.Fatalf("nodes = %d, want cap %d", len(sub.Nodes), MaxTraversalNodes)
	}
	// Lowest target ids are the ones kept.
	if sub.Nodes[1].ID != "ZZ-0000" {
		t.Fatalf("expected lowest ids kept, first target = %s", sub.Nodes[1].ID)
	}
	// Edges to truncated targets are dropped with their nodes: one edge per
	// admitted target, and no edge may reference an id outside the node set.
	if len(sub.Edges) != MaxTraversalNodes-1 {
		t.Fatalf("edges = %d, want %d", len(sub.Edges), MaxTraversalNodes-1)
	}
	present := map[string]bool{}
	for _, n := range sub.Nodes {
		present[n.ID] = true
	}
	for _, e := range sub.Edges {
		if !present[e.From] || !present[e.To] {
			t.Fatalf("dangling edge %s -> %s", e.From, e.To)
		}
	}
	again, err := g.Traverse(context.Background(), "AA-100", RelRequires, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sub, again) {
		t.Fatal("truncated traversal is not deterministic")
	}
}
