package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/types"
)

type IngestRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.IngestRun) error
	Finish(ctx context.Context, tx *gorm.DB, run *types.IngestRun) error
}

type ingestRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngestRunRepo(db *gorm.DB, baseLog *logger.Logger) IngestRunRepo {
	return &ingestRunRepo{db: db, log: baseLog.With("repo", "IngestRunRepo")}
}

func (r *ingestRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.IngestRun) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(run).Error
}

func (r *ingestRunRepo) Finish(ctx context.Context, tx *gorm.DB, run *types.IngestRun) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	run.FinishedAt = &now
	return transaction.WithContext(ctx).Save(run).Error
}
