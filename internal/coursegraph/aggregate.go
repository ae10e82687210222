package coursegraph

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

const aggregateFanout = 4

// Aggregate traverses from every start id and unions the resulting
// subgraphs: nodes keyed by id, edges by their full tuple. The iteration
// order over startIDs does not affect the result set; output is sorted.
// An empty seed set yields an empty subgraph.
func Aggregate(ctx context.Context, g Graph, startIDs []string, rel Relation, maxDepth int) (*Subgraph, error) {
	nodes := make(map[string]Node)
	edges := make(map[string]Edge)
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(aggregateFanout)
	for _, id := range startIDs {
		eg.Go(func() error {
			sub, err := g.Traverse(ctx, id, rel, maxDepth)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, n := range sub.Nodes {
				nodes[n.ID] = n
			}
			for _, e := range sub.Edges {
				edges[e.Key()] = e
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &Subgraph{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(edges)),
	}
	for _, n := range nodes {
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range edges {
		out.Edges = append(out.Edges, e)
	}
	out.Sort()
	return out, nil
}
