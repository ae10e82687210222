package coursegraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Relation is the closed set of edge kinds in the course graph.
type Relation int

const (
	// RelRequires points from a course to one of its prerequisites,
	// tagged with the OR-group it belongs to.
	RelRequires Relation = iota
	// RelUnlocks is the structural inverse of RelRequires. The two are
	// always created together.
	RelUnlocks
	// RelAntireq is a symmetric mutual-exclusion fact; it is never
	// traversed transitively.
	RelAntireq
)

func (r Relation) String() string {
	switch r {
	case RelRequires:
		return "REQUIRES"
	case RelUnlocks:
		return "UNLOCKS"
	case RelAntireq:
		return "ANTIREQ"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

func ParseRelation(s string) (Relation, error) {
	switch s {
	case "REQUIRES":
		return RelRequires, nil
	case "UNLOCKS":
		return RelUnlocks, nil
	case "ANTIREQ":
		return RelAntireq, nil
	default:
		return 0, fmt.Errorf("unknown relation %q", s)
	}
}

// Inverse returns the relation of the paired edge created alongside an
// edge of this relation. ANTIREQ is its own inverse.
func (r Relation) Inverse() Relation {
	switch r {
	case RelRequires:
		return RelUnlocks
	case RelUnlocks:
		return RelRequires
	default:
		return RelAntireq
	}
}

var (
	// ErrSelfEdge rejects edges whose endpoints are the same course.
	ErrSelfEdge = errors.New("coursegraph: self-referential edge")
	// ErrRelationNotTraversable rejects traversal over ANTIREQ, which is a
	// pairwise fact rather than a chain.
	ErrRelationNotTraversable = errors.New("coursegraph: relation is not traversable")
)

// Node is one course in the graph. Placeholder nodes created as edge
// targets carry their id as code and title until real metadata arrives.
type Node struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
	Level *int   `json:"level"`
}

// Edge is a typed directed edge. Edges are deduplicated by the full
// (From, To, Relation, GroupID) tuple; GroupID is empty for ANTIREQ.
type Edge struct {
	From     string
	To       string
	Relation Relation
	GroupID  string
}

// Key returns the dedup identity of the edge.
func (e Edge) Key() string {
	return e.From + "\x00" + e.To + "\x00" + e.Relation.String() + "\x00" + e.GroupID
}

type edgeJSON struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Type    string `json:"type"`
	GroupID string `json:"group_id"`
}

func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(edgeJSON{Start: e.From, End: e.To, Type: e.Relation.String(), GroupID: e.GroupID})
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	var raw edgeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rel, err := ParseRelation(raw.Type)
	if err != nil {
		return err
	}
	*e = Edge{From: raw.Start, To: raw.End, Relation: rel, GroupID: raw.GroupID}
	return nil
}

// Subgraph is the deduplicated result of a traversal or aggregation.
type Subgraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"links"`
}

// MaxTraversalNodes caps a single traversal result. When the cap is hit the
// node set is truncated deterministically, keeping the lowest ids.
const MaxTraversalNodes = 512

// Graph is the directed labeled multigraph behind the traversal engine.
// MergeEdge installs the paired inverse (REQUIRES/UNLOCKS) or symmetric
// mirror (ANTIREQ) atomically with the given edge, and is a no-op for
// tuples already present. Implementations must be safe for concurrent use;
// idempotent merges make concurrent retries harmless.
type Graph interface {
	UpsertNode(ctx context.Context, n Node) error
	MergeEdge(ctx context.Context, e Edge) error
	// Traverse returns every node and edge on a directed path of length
	// 1..maxDepth from startID following only rel, which must be
	// RelRequires or RelUnlocks. An absent start id yields an empty
	// subgraph, not an error.
	Traverse(ctx context.Context, startID string, rel Relation, maxDepth int) (*Subgraph, error)
}
