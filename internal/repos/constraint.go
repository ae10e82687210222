package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/types"
)

type ConstraintRepo interface {
	// Insert adds constraint rows, silently skipping tuples already
	// recorded (the uniqueness guarantee on course_id/kind/target/group).
	Insert(ctx context.Context, tx *gorm.DB, rows []*types.CourseConstraint) error
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.CourseConstraint, error)
}

type constraintRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConstraintRepo(db *gorm.DB, baseLog *logger.Logger) ConstraintRepo {
	return &constraintRepo{db: db, log: baseLog.With("repo", "ConstraintRepo")}
}

func (r *constraintRepo) Insert(ctx context.Context, tx *gorm.DB, rows []*types.CourseConstraint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "kind"}, {Name: "target_course_id"}, {Name: "group_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *constraintRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.CourseConstraint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CourseConstraint
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("kind, group_id, target_course_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
