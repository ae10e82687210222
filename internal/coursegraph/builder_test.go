package coursegraph

import (
	"context"
	"reflect"
	"testing"
)

func buildBatch() []CourseConstraints {
	return []CourseConstraints{
		{
			Node: Node{ID: "CS-246", Code: "CS 246", Title: "Object-Oriented Software Development"},
			Set: ConstraintSet{
				PrereqGroups: [][]string{{"CS 136", "CS 146"}, {"CS 135"}},
				Antireqs:     []string{"ECE 250"},
			},
		},
		{
			Node: Node{ID: "CS-136", Code: "CS 136", Title: "Elementary Algorithm Design"},
			Set: ConstraintSet{
				PrereqGroups: [][]string{{"CS 135"}},
			},
		},
	}
}

func TestBuilderApply(t *testing.T) {
	g := NewMemoryGraph()
	stats, err := NewBuilder(g, nil).Apply(context.Background(), buildBatch())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Courses != 2 || stats.PrereqEdges != 4 || stats.AntireqEdges != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	s := g.Snapshot()
	// 2 batch courses + 3 placeholder targets (CS-135, CS-146, ECE-250).
	if len(s.Nodes) != 5 {
		t.Fatalf("nodes = %d, want 5", len(s.Nodes))
	}
	// Each prereq merge yields a REQUIRES+UNLOCKS pair, each antireq a
	// symmetric pair: 4*2 + 1*2.
	if len(s.Edges) != 10 {
		t.Fatalf("edges = %d, want 10", len(s.Edges))
	}

	var placeholder *Node
	for i := range s.Nodes {
		if s.Nodes[i].ID == "CS-146" {
			placeholder = &s.Nodes[i]
		}
	}
	if placeholder == nil || placeholder.Code != "CS-146" || placeholder.Title != "CS-146" {
		t.Fatalf("placeholder target missing fallbacks: %+v", placeholder)
	}

	groupIDs := map[string]bool{}
	for _, e := range s.Edges {
		if e.Relation == RelRequires && e.From == "CS-246" {
			groupIDs[e.GroupID] = true
		}
	}
	if !groupIDs["CS-246#g1"] || !groupIDs["CS-246#g2"] {
		t.Fatalf("group ids = %v, want CS-246#g1 and CS-246#g2", groupIDs)
	}
}

func TestBuilderApplyCommutes(t *testing.T) {
	batch := buildBatch()
	forward := NewMemoryGraph()
	if _, err := NewBuilder(forward, nil).Apply(context.Background(), batch); err != nil {
		t.Fatal(err)
	}
	reversed := NewMemoryGraph()
	flipped := []CourseConstraints{batch[1], batch[0]}
	if _, err := NewBuilder(reversed, nil).Apply(context.Background(), flipped); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(forward.Snapshot(), reversed.Snapshot()) {
		t.Fatal("builder mutations do not commute")
	}
}

func TestBuilderApplyIdempotent(t *testing.T) {
	g := NewMemoryGraph()
	b := NewBuilder(g, nil)
	if _, err := b.Apply(context.Background(), buildBatch()); err != nil {
		t.Fatal(err)
	}
	once := g.Snapshot()
	if _, err := b.Apply(context.Background(), buildBatch()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once, g.Snapshot()) {
		t.Fatal("re-applying the batch changed the graph")
	}
}

func TestBuilderFiltersSelfReference(t *testing.T) {
	g := NewMemoryGraph()
	batch := []CourseConstraints{{
		Node: Node{ID: "CS-135", Code: "CS 135"},
		Set: ConstraintSet{
			PrereqGroups: [][]string{{"CS 135", "CS 115"}},
			Antireqs:     []string{"CS 135"},
		},
	}}
	stats, err := NewBuilder(g, nil).Apply(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SkippedSelf != 2 {
		t.Fatalf("skipped = %d, want 2", stats.SkippedSelf)
	}
	for _, e := range g.Snapshot().Edges {
		if e.From == e.To {
			t.Fatalf("self edge leaked into graph: %+v", e)
		}
		if e.From == "CS-135" && e.To == "CS-135" {
			t.Fatalf("self constraint persisted: %+v", e)
		}
	}
}
