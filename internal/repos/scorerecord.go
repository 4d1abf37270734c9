package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/types"
)

type ScoreRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.ComplexityScoreRecord) (*types.ComplexityScoreRecord, error)
	GetByCohortID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (*types.ComplexityScoreRecord, error)
	Update(ctx context.Context, tx *gorm.DB, record *types.ComplexityScoreRecord) (*types.ComplexityScoreRecord, error)
	DeleteByCohortID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (bool, error)
	ExistsByCohortID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (bool, error)
}

type scoreRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoreRecordRepo(db *gorm.DB, baseLog *logger.Logger) ScoreRecordRepo {
	repoLog := baseLog.With("repo", "ScoreRecordRepo")
	return &scoreRecordRepo{db: db, log: repoLog}
}

func (sr *scoreRecordRepo) Create(ctx context.Context, tx *gorm.DB, record *types.ComplexityScoreRecord) (*types.ComplexityScoreRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetByCohortID returns (nil, nil) when no record exists; the service layer
// owns the NotFound semantics.
func (sr *scoreRecordRepo) GetByCohortID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (*types.ComplexityScoreRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var record types.ComplexityScoreRecord
	err := transaction.WithContext(ctx).
		Where("cohort_id = ?", cohortID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (sr *scoreRecordRepo) Update(ctx context.Context, tx *gorm.DB, record *types.ComplexityScoreRecord) (*types.ComplexityScoreRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (sr *scoreRecordRepo) DeleteByCohortID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	result := transaction.WithContext(ctx).
		Where("cohort_id = ?", cohortID).
		Delete(&types.ComplexityScoreRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (sr *scoreRecordRepo) ExistsByCohortID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ComplexityScoreRecord{}).
		Where("cohort_id = ?", cohortID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
