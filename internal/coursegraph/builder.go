package coursegraph

import (
	"context"
	"fmt"

	"github.com/GradUWate/GradUWate-backend/internal/logger"
)

// CourseConstraints pairs a course node with its parsed constraint set.
type CourseConstraints struct {
	Node Node
	Set  ConstraintSet
}

// BuildStats summarizes one builder batch.
type BuildStats struct {
	Courses      int
	PrereqEdges  int
	AntireqEdges int
	SkippedSelf  int
}

// GroupID is the graph-wide identity of one OR-group: "<course_id>#g<n>"
// with n the 1-based position of the group in the course's parsed set.
func GroupID(courseID string, n int) string {
	return fmt.Sprintf("%s#g%d", courseID, n)
}

// Builder converts parsed constraint sets into idempotent graph mutations.
// All mutations commute, so the final graph does not depend on batch order.
type Builder struct {
	graph Graph
	log   *logger.Logger
}

func NewBuilder(graph Graph, baseLog *logger.Logger) *Builder {
	var log *logger.Logger
	if baseLog != nil {
		log = baseLog.With("component", "GraphBuilder")
	}
	return &Builder{graph: graph, log: log}
}

// Apply upserts one node per course and merges the paired edges for every
// OR-group member and antirequisite. Targets not present in the batch become
// placeholder nodes. Self-referential constraints (a course listing itself,
// an upstream data error) are dropped and counted rather than inserted.
func (b *Builder) Apply(ctx context.Context, batch []CourseConstraints) (BuildStats, error) {
	var stats BuildStats
	for _, cc := range batch {
		if cc.Node.ID == "" {
			continue
		}
		if err := b.graph.UpsertNode(ctx, cc.Node); err != nil {
			return stats, fmt.Errorf("upsert node %s: %w", cc.Node.ID, err)
		}
		stats.Courses++

		for gi, group := range cc.Set.PrereqGroups {
			gid := GroupID(cc.Node.ID, gi+1)
			for _, code := range group {
				target := CodeToID(code)
				if target == cc.Node.ID {
					stats.SkippedSelf++
					if b.log != nil {
						b.log.Warn("Dropping self-referential prerequisite", "course_id", cc.Node.ID, "group_id", gid)
					}
					continue
				}
				err := b.graph.MergeEdge(ctx, Edge{From: cc.Node.ID, To: target, Relation: RelRequires, GroupID: gid})
				if err != nil {
					return stats, fmt.Errorf("merge prereq edge %s->%s: %w", cc.Node.ID, target, err)
				}
				stats.PrereqEdges++
			}
		}

		for _, code := range cc.Set.Antireqs {
			target := CodeToID(code)
			if target == cc.Node.ID {
				stats.SkippedSelf++
				if b.log != nil {
					b.log.Warn("Dropping self-referential antirequisite", "course_id", cc.Node.ID)
				}
				continue
			}
			err := b.graph.MergeEdge(ctx, Edge{From: cc.Node.ID, To: target, Relation: RelAntireq})
			if err != nil {
				return stats, fmt.Errorf("merge antireq edge %s->%s: %w", cc.Node.ID, target, err)
			}
			stats.AntireqEdges++
		}
	}
	return stats, nil
}
