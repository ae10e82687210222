package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/GradUWate/GradUWate-backend/internal/clients/redis"
	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
)

const (
	defaultTraversalDepth = 6
	maxTraversalDepth     = 10
)

// PlanGraph is an aggregated subgraph for a set of academic plans.
type PlanGraph struct {
	*coursegraph.Subgraph
	Plans          []string `json:"plans"`
	RequestedCodes []string `json:"requested_codes"`
	UnknownPlans   []string `json:"unknown_plans,omitempty"`
}

// GraphQueryService is the read surface over the course graph. Unknown
// courses yield empty subgraphs; a backend that cannot answer surfaces
// graphdb.ErrNotReady so callers can distinguish "no dependencies" from
// "couldn't check".
type GraphQueryService interface {
	// Backward returns the prerequisite subgraph feeding into a course.
	Backward(ctx context.Context, code string, depth int) (*coursegraph.Subgraph, error)
	// Forward returns the subgraph of courses a course unlocks.
	Forward(ctx context.Context, code string, depth int) (*coursegraph.Subgraph, error)
	// AggregateForPlans unions the backward subgraphs of every course
	// referenced by the named plans.
	AggregateForPlans(ctx context.Context, plans []string, depth int) (*PlanGraph, error)
}

type graphQueryService struct {
	graph coursegraph.Graph
	log   *logger.Logger
	plans PlanService
	cache redis.GraphCache // nil when no cache is configured
}

func NewGraphQueryService(graph coursegraph.Graph, baseLog *logger.Logger, plans PlanService, cache redis.GraphCache) GraphQueryService {
	return &graphQueryService{
		graph: graph,
		log:   baseLog.With("service", "GraphQueryService"),
		plans: plans,
		cache: cache,
	}
}

func clampDepth(depth int) int {
	if depth < 1 {
		return defaultTraversalDepth
	}
	if depth > maxTraversalDepth {
		return maxTraversalDepth
	}
	return depth
}

func (s *graphQueryService) traverse(ctx context.Context, code string, rel coursegraph.Relation, depth int) (*coursegraph.Subgraph, error) {
	depth = clampDepth(depth)
	startID := coursegraph.CodeToID(code)

	key := redis.Key(rel, startID, depth)
	if s.cache != nil {
		if sub, ok := s.cache.Get(ctx, key); ok {
			return sub, nil
		}
	}

	sub, err := s.graph.Traverse(ctx, startID, rel, depth)
	if err != nil {
		return nil, fmt.Errorf("traverse %s from %s: %w", rel, startID, err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, sub)
	}
	return sub, nil
}

func (s *graphQueryService) Backward(ctx context.Context, code string, depth int) (*coursegraph.Subgraph, error) {
	return s.traverse(ctx, code, coursegraph.RelRequires, depth)
}

func (s *graphQueryService) Forward(ctx context.Context, code string, depth int) (*coursegraph.Subgraph, error) {
	return s.traverse(ctx, code, coursegraph.RelUnlocks, depth)
}

func (s *graphQueryService) AggregateForPlans(ctx context.Context, plans []string, depth int) (*PlanGraph, error) {
	depth = clampDepth(depth)
	codes, unknown := s.plans.Expand(plans)

	ids := make([]string, 0, len(codes))
	for _, code := range codes {
		ids = append(ids, coursegraph.CodeToID(code))
	}
	sort.Strings(ids)

	sub, err := coursegraph.Aggregate(ctx, s.graph, ids, coursegraph.RelRequires, depth)
	if err != nil {
		return nil, fmt.Errorf("aggregate %d plan seeds: %w", len(ids), err)
	}
	return &PlanGraph{
		Subgraph:       sub,
		Plans:          plans,
		RequestedCodes: codes,
		UnknownPlans:   unknown,
	}, nil
}
