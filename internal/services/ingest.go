package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GradUWate/GradUWate-backend/internal/clients/redis"
	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/repos"
	"github.com/GradUWate/GradUWate-backend/internal/types"
)

// RawCourseRecord is the shape supplied by the ingestion source (scraper or
// catalog API). Only requirementsDescription feeds the constraint parser.
type RawCourseRecord struct {
	SubjectCode             string `json:"subjectCode"`
	CatalogNumber           string `json:"catalogNumber"`
	Title                   string `json:"title"`
	Description             string `json:"description"`
	RequirementsDescription string `json:"requirementsDescription"`
}

type IngestSummary struct {
	RunID          uuid.UUID `json:"run_id"`
	Courses        int       `json:"courses"`
	ConstraintRows int       `json:"constraint_rows"`
	PrereqEdges    int       `json:"prereq_edges"`
	AntireqEdges   int       `json:"antireq_edges"`
	Skipped        int       `json:"skipped"`
}

type IngestService interface {
	// IngestRecords parses a batch of raw records and applies them to the
	// relational store and the graph. Re-ingesting the same batch updates
	// node attributes and adds any new edges; nothing is removed.
	IngestRecords(ctx context.Context, source string, records []RawCourseRecord) (*IngestSummary, error)
}

type ingestService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	constraintRepo repos.ConstraintRepo
	runRepo        repos.IngestRunRepo
	builder        *coursegraph.Builder
	cache          redis.GraphCache // nil when no cache is configured
}

func NewIngestService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	constraintRepo repos.ConstraintRepo,
	runRepo repos.IngestRunRepo,
	graph coursegraph.Graph,
	cache redis.GraphCache,
) IngestService {
	log := baseLog.With("service", "IngestService")
	return &ingestService{
		db:             db,
		log:            log,
		courseRepo:     courseRepo,
		constraintRepo: constraintRepo,
		runRepo:        runRepo,
		builder:        coursegraph.NewBuilder(graph, baseLog),
		cache:          cache,
	}
}

// normalizedRecord is one raw record resolved to ids, metadata and parsed
// constraints.
type normalizedRecord struct {
	Course types.Course
	Set    coursegraph.ConstraintSet
}

func normalizeRecord(rec RawCourseRecord) (*normalizedRecord, bool) {
	if rec.SubjectCode == "" || rec.CatalogNumber == "" {
		return nil, false
	}
	code := coursegraph.NormalizeCode(rec.SubjectCode + " " + rec.CatalogNumber)
	id := coursegraph.CodeToID(code)
	now := time.Now()
	return &normalizedRecord{
		Course: types.Course{
			ID:          id,
			Code:        code,
			Title:       rec.Title,
			Description: rec.Description,
			Level:       levelFromCatalog(rec.CatalogNumber),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Set: coursegraph.ExtractConstraints(rec.RequirementsDescription),
	}, true
}

// levelFromCatalog derives the course level from the leading catalog digit:
// "246" -> 200, "135" -> 100. Two-digit numbers map the same way.
func levelFromCatalog(number string) *int {
	for _, r := range number {
		if r >= '1' && r <= '9' {
			level := int(r-'0') * 100
			return &level
		}
		break
	}
	return nil
}

// constraintRows flattens a parsed set into course_constraint rows with the
// same self-reference filtering the graph builder applies.
func constraintRows(courseID string, set coursegraph.ConstraintSet) []*types.CourseConstraint {
	var rows []*types.CourseConstraint
	for gi, group := range set.PrereqGroups {
		gid := coursegraph.GroupID(courseID, gi+1)
		for _, code := range group {
			target := coursegraph.CodeToID(code)
			if target == courseID {
				continue
			}
			rows = append(rows, &types.CourseConstraint{
				CourseID:       courseID,
				Kind:           types.ConstraintKindPrereq,
				TargetCourseID: target,
				GroupID:        gid,
			})
		}
	}
	for _, code := range set.Antireqs {
		target := coursegraph.CodeToID(code)
		if target == courseID {
			continue
		}
		rows = append(rows, &types.CourseConstraint{
			CourseID:       courseID,
			Kind:           types.ConstraintKindAntireq,
			TargetCourseID: target,
		})
	}
	return rows
}

func (s *ingestService) IngestRecords(ctx context.Context, source string, records []RawCourseRecord) (*IngestSummary, error) {
	run := &types.IngestRun{
		ID:        uuid.New(),
		Source:    source,
		Status:    types.IngestRunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.runRepo.Create(ctx, nil, run); err != nil {
		return nil, fmt.Errorf("create ingest run: %w", err)
	}

	summary, err := s.apply(ctx, run, records)
	if err != nil {
		run.Status = types.IngestRunStatusFailed
		run.Error = err.Error()
		if finishErr := s.runRepo.Finish(ctx, nil, run); finishErr != nil {
			s.log.Error("Failed to record failed ingest run", "run_id", run.ID, "error", finishErr)
		}
		return nil, err
	}

	run.Status = types.IngestRunStatusDone
	run.Records = summary.Courses
	run.Constraints = summary.ConstraintRows
	run.Skipped = summary.Skipped
	if err := s.runRepo.Finish(ctx, nil, run); err != nil {
		s.log.Error("Failed to finish ingest run", "run_id", run.ID, "error", err)
	}

	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			s.log.Warn("Failed to flush graph cache after ingest", "error", err)
		}
	}

	summary.RunID = run.ID
	return summary, nil
}

func (s *ingestService) apply(ctx context.Context, run *types.IngestRun, records []RawCourseRecord) (*IngestSummary, error) {
	summary := &IngestSummary{}

	var normalized []*normalizedRecord
	for _, rec := range records {
		nr, ok := normalizeRecord(rec)
		if !ok {
			summary.Skipped++
			continue
		}
		normalized = append(normalized, nr)
	}

	courses := make([]*types.Course, 0, len(normalized))
	var rows []*types.CourseConstraint
	batch := make([]coursegraph.CourseConstraints, 0, len(normalized))
	for _, nr := range normalized {
		course := nr.Course
		courses = append(courses, &course)
		rows = append(rows, constraintRows(course.ID, nr.Set)...)
		batch = append(batch, coursegraph.CourseConstraints{
			Node: coursegraph.Node{
				ID:    course.ID,
				Code:  course.Code,
				Title: course.Title,
				Level: course.Level,
			},
			Set: nr.Set,
		})
	}

	if err := s.courseRepo.Upsert(ctx, nil, courses); err != nil {
		return nil, fmt.Errorf("upsert %d courses: %w", len(courses), err)
	}
	if err := s.constraintRepo.Insert(ctx, nil, rows); err != nil {
		return nil, fmt.Errorf("insert %d constraint rows: %w", len(rows), err)
	}

	stats, err := s.builder.Apply(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("apply graph mutations: %w", err)
	}

	summary.Courses = len(courses)
	summary.ConstraintRows = len(rows)
	summary.PrereqEdges = stats.PrereqEdges
	summary.AntireqEdges = stats.AntireqEdges
	summary.Skipped += stats.SkippedSelf
	s.log.Info("Ingest batch applied",
		"run_id", run.ID,
		"courses", summary.Courses,
		"constraint_rows", summary.ConstraintRows,
		"skipped", summary.Skipped,
	)
	return summary, nil
}
