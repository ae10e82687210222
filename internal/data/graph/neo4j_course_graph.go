package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	"github.com/GradUWate/GradUWate-backend/internal/graphdb"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
)

// Neo4jCourseGraph implements coursegraph.Graph on the Bolt backend. The
// Cypher mirrors the in-memory model: MERGE-by-id nodes with placeholder
// fallbacks, paired REQUIRES/UNLOCKS merges in one write, symmetric
// ANTIREQ pairs, and variable-length path reads for traversal.
type Neo4jCourseGraph struct {
	client *graphdb.Client
	log    *logger.Logger
}

func NewNeo4jCourseGraph(client *graphdb.Client, baseLog *logger.Logger) *Neo4jCourseGraph {
	return &Neo4jCourseGraph{
		client: client,
		log:    baseLog.With("component", "Neo4jCourseGraph"),
	}
}

func (g *Neo4jCourseGraph) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return g.client.Driver().NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: g.client.Database,
	})
}

func (g *Neo4jCourseGraph) UpsertNode(ctx context.Context, n coursegraph.Node) error {
	if !g.client.Ready() {
		return graphdb.ErrNotReady
	}
	code := n.Code
	if code == "" {
		code = n.ID
	}
	title := n.Title
	if title == "" {
		title = n.ID
	}
	var level any
	if n.Level != nil {
		level = int64(*n.Level)
	}

	session := g.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (c:Course {id: $id})
SET c.code = $code, c.title = $title, c.level = $level
`, map[string]any{"id": n.ID, "code": code, "title": title, "level": level})
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j upsert node %s: %w", n.ID, err)
	}
	return nil
}

func (g *Neo4jCourseGraph) MergeEdge(ctx context.Context, e coursegraph.Edge) error {
	if !g.client.Ready() {
		return graphdb.ErrNotReady
	}
	if e.From == e.To {
		return coursegraph.ErrSelfEdge
	}

	var cypher string
	switch e.Relation {
	case coursegraph.RelRequires:
		cypher = `
MERGE (a:Course {id: $from}) ON CREATE SET a.code = $from, a.title = $from
MERGE (b:Course {id: $to}) ON CREATE SET b.code = $to, b.title = $to
MERGE (a)-[:REQUIRES {group_id: $group_id}]->(b)
MERGE (b)-[:UNLOCKS {group_id: $group_id}]->(a)
`
	case coursegraph.RelUnlocks:
		cypher = `
MERGE (a:Course {id: $from}) ON CREATE SET a.code = $from, a.title = $from
MERGE (b:Course {id: $to}) ON CREATE SET b.code = $to, b.title = $to
MERGE (a)-[:UNLOCKS {group_id: $group_id}]->(b)
MERGE (b)-[:REQUIRES {group_id: $group_id}]->(a)
`
	case coursegraph.RelAntireq:
		cypher = `
MERGE (a:Course {id: $from}) ON CREATE SET a.code = $from, a.title = $from
MERGE (b:Course {id: $to}) ON CREATE SET b.code = $to, b.title = $to
MERGE (a)-[:ANTIREQ]->(b)
MERGE (b)-[:ANTIREQ]->(a)
`
	default:
		return fmt.Errorf("neo4j merge edge: unknown relation %v", e.Relation)
	}

	session := g.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{
			"from":     e.From,
			"to":       e.To,
			"group_id": e.GroupID,
		})
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j merge %s edge %s->%s: %w", e.Relation, e.From, e.To, err)
	}
	return nil
}

func (g *Neo4jCourseGraph) Traverse(ctx context.Context, startID string, rel coursegraph.Relation, maxDepth int) (*coursegraph.Subgraph, error) {
	if rel != coursegraph.RelRequires && rel != coursegraph.RelUnlocks {
		return nil, coursegraph.ErrRelationNotTraversable
	}
	if !g.client.Ready() {
		return nil, graphdb.ErrNotReady
	}
	if maxDepth < 1 {
		return &coursegraph.Subgraph{Nodes: []coursegraph.Node{}, Edges: []coursegraph.Edge{}}, nil
	}

	// Relation and depth cannot be bound parameters in a variable-length
	// pattern; both come from a closed set, never caller text. Paths are
	// ordered before LIMIT so truncation keeps the lowest terminal ids,
	// matching the in-memory engine.
	cypher := fmt.Sprintf(`
MATCH path = (c:Course {id: $id})-[:%s*1..%d]->(n)
WITH path, n
ORDER BY n.id, length(path)
LIMIT %d
RETURN
  [x IN nodes(path) | {id: x.id, code: x.code, title: x.title, level: x.level}] AS nds,
  [r IN relationships(path) | {start: startNode(r).id, end: endNode(r).id, type: type(r), group_id: r.group_id}] AS rls
`, rel.String(), maxDepth, coursegraph.MaxTraversalNodes)

	session := g.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"id": startID})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j traverse %s from %s: %w", rel, startID, err)
	}

	sub := &coursegraph.Subgraph{Nodes: []coursegraph.Node{}, Edges: []coursegraph.Edge{}}
	nodeSeen := make(map[string]struct{})
	edgeSeen := make(map[string]struct{})
	for _, rec := range records.([]*neo4j.Record) {
		nds, _ := rec.Get("nds")
		rls, _ := rec.Get("rls")
		for _, raw := range asSlice(nds) {
			n := nodeFromRecord(raw)
			if n.ID == "" {
				continue
			}
			if _, ok := nodeSeen[n.ID]; ok {
				continue
			}
			nodeSeen[n.ID] = struct{}{}
			sub.Nodes = append(sub.Nodes, n)
		}
		for _, raw := range asSlice(rls) {
			e, ok := edgeFromRecord(raw)
			if !ok {
				continue
			}
			if _, dup := edgeSeen[e.Key()]; dup {
				continue
			}
			edgeSeen[e.Key()] = struct{}{}
			sub.Edges = append(sub.Edges, e)
		}
	}
	sub.Sort()
	return sub, nil
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func nodeFromRecord(raw any) coursegraph.Node {
	m, _ := raw.(map[string]any)
	n := coursegraph.Node{
		ID:    asString(m["id"]),
		Code:  asString(m["code"]),
		Title: asString(m["title"]),
	}
	if lv, ok := m["level"].(int64); ok {
		level := int(lv)
		n.Level = &level
	}
	return n
}

func edgeFromRecord(raw any) (coursegraph.Edge, bool) {
	m, _ := raw.(map[string]any)
	rel, err := coursegraph.ParseRelation(asString(m["type"]))
	if err != nil {
		return coursegraph.Edge{}, false
	}
	return coursegraph.Edge{
		From:     asString(m["start"]),
		To:       asString(m["end"]),
		Relation: rel,
		GroupID:  asString(m["group_id"]),
	}, true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
