package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/repos"
	"github.com/GradUWate/GradUWate-backend/internal/types"
)

var ErrCourseNotFound = errors.New("course not found")

// ConstraintRef is one recorded requirement row rendered for the API.
type ConstraintRef struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	GroupID string `json:"group_id,omitempty"`
}

type CourseDetail struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Level       *int            `json:"level"`
	Prereqs     []ConstraintRef `json:"prereqs"`
	Antireqs    []ConstraintRef `json:"antireqs"`
}

type CourseService interface {
	GetCourse(ctx context.Context, tx *gorm.DB, code string) (*CourseDetail, error)
}

type courseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	constraintRepo repos.ConstraintRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo, constraintRepo repos.ConstraintRepo) CourseService {
	return &courseService{
		db:             db,
		log:            baseLog.With("service", "CourseService"),
		courseRepo:     courseRepo,
		constraintRepo: constraintRepo,
	}
}

func (cs *courseService) GetCourse(ctx context.Context, tx *gorm.DB, code string) (*CourseDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = cs.db
	}

	norm := coursegraph.NormalizeCode(code)
	course, err := cs.courseRepo.GetByCode(ctx, transaction, norm)
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", norm, err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	rows, err := cs.constraintRepo.ListByCourse(ctx, transaction, course.ID)
	if err != nil {
		return nil, fmt.Errorf("load constraints for %s: %w", course.ID, err)
	}

	detail := &CourseDetail{
		ID:          course.ID,
		Code:        course.Code,
		Title:       course.Title,
		Description: course.Description,
		Level:       course.Level,
		Prereqs:     []ConstraintRef{},
		Antireqs:    []ConstraintRef{},
	}
	for _, row := range rows {
		ref := ConstraintRef{
			ID:   row.TargetCourseID,
			Code: coursegraph.IDToCode(row.TargetCourseID),
		}
		switch row.Kind {
		case types.ConstraintKindPrereq:
			ref.GroupID = row.GroupID
			detail.Prereqs = append(detail.Prereqs, ref)
		case types.ConstraintKindAntireq:
			detail.Antireqs = append(detail.Antireqs, ref)
		}
	}
	return detail, nil
}
