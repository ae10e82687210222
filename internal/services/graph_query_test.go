package services

import (
	"context"
	"testing"

	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
)

func seedGraph(t *testing.T) *coursegraph.MemoryGraph {
	t.Helper()
	g := coursegraph.NewMemoryGraph()
	ctx := context.Background()
	edges := []coursegraph.Edge{
		{From: "CS-136", To: "CS-135", Relation: coursegraph.RelRequires, GroupID: "CS-136#g1"},
		{From: "CS-246", To: "CS-136", Relation: coursegraph.RelRequires, GroupID: "CS-246#g1"},
		{From: "MTE-122", To: "MTE-121", Relation: coursegraph.RelRequires, GroupID: "MTE-122#g1"},
	}
	for _, e := range edges {
		if err := g.MergeEdge(ctx, e); err != nil {
			t.Fatalf("merge %v: %v", e, err)
		}
	}
	return g
}

func TestGraphQueryBackward(t *testing.T) {
	svc := NewGraphQueryService(seedGraph(t), newTestLogger(t), nil, nil)

	sub, err := svc.Backward(context.Background(), "CS 246", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Nodes) != 3 || len(sub.Edges) != 2 {
		t.Fatalf("got %d nodes / %d edges, want 3 / 2", len(sub.Nodes), len(sub.Edges))
	}
}

func TestGraphQueryBackwardDepthClamped(t *testing.T) {
	svc := NewGraphQueryService(seedGraph(t), newTestLogger(t), nil, nil)

	// Depth 1 stops one hop out.
	sub, err := svc.Backward(context.Background(), "CS 246", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Nodes) != 2 {
		t.Fatalf("depth 1 reached %d nodes, want 2", len(sub.Nodes))
	}

	// Out-of-range depths fall back to the defaults rather than erroring.
	if _, err := svc.Backward(context.Background(), "CS 246", -5); err != nil {
		t.Fatalf("negative depth: %v", err)
	}
	if _, err := svc.Backward(context.Background(), "CS 246", 99); err != nil {
		t.Fatalf("oversized depth: %v", err)
	}
}

func TestGraphQueryForward(t *testing.T) {
	svc := NewGraphQueryService(seedGraph(t), newTestLogger(t), nil, nil)

	sub, err := svc.Forward(context.Background(), "CS 135", 0)
	if err != nil {
		t.Fatal(err)
	}
	ids := map[string]bool{}
	for _, n := range sub.Nodes {
		ids[n.ID] = true
	}
	if !ids["CS-136"] || !ids["CS-246"] {
		t.Fatalf("forward traversal missing unlocked courses: %v", ids)
	}
}

func TestGraphQueryUnknownCourseEmpty(t *testing.T) {
	svc := NewGraphQueryService(seedGraph(t), newTestLogger(t), nil, nil)

	sub, err := svc.Backward(context.Background(), "PHIL 999", 0)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Nodes == nil || sub.Edges == nil {
		t.Fatal("empty result must have non-nil slices")
	}
	if len(sub.Nodes) != 0 || len(sub.Edges) != 0 {
		t.Fatalf("expected empty subgraph, got %d nodes / %d edges", len(sub.Nodes), len(sub.Edges))
	}
}

func TestAggregateForPlans(t *testing.T) {
	plans, err := NewPlanService(newTestLogger(t), "")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewGraphQueryService(seedGraph(t), newTestLogger(t), plans, nil)

	pg, err := svc.AggregateForPlans(context.Background(), []string{"MTE minor", "Quantum Basket Weaving"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pg.UnknownPlans) != 1 || pg.UnknownPlans[0] != "Quantum Basket Weaving" {
		t.Fatalf("unknown plans = %v", pg.UnknownPlans)
	}
	if len(pg.RequestedCodes) != 2 {
		t.Fatalf("requested codes = %v", pg.RequestedCodes)
	}
	ids := map[string]bool{}
	for _, n := range pg.Nodes {
		ids[n.ID] = true
	}
	if !ids["MTE-121"] || !ids["MTE-122"] {
		t.Fatalf("aggregated graph missing plan courses: %v", ids)
	}
}
