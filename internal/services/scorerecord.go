package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aquademy/coachcore-backend/internal/clients/cohort"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/repos"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

// ScoreRecordService owns the ComplexityScoreRecord aggregate: one record per
// cohort, derived fields always computed by the calculator, updates as full
// replacement of category and all seven dimensions.
type ScoreRecordService interface {
	Create(ctx context.Context, cohortID uuid.UUID, category scoring.ProgramCategory, scores []scoring.DimensionScore) (*types.ComplexityScoreRecord, error)
	Update(ctx context.Context, cohortID uuid.UUID, category scoring.ProgramCategory, scores []scoring.DimensionScore) (*types.ComplexityScoreRecord, error)
	Get(ctx context.Context, cohortID uuid.UUID) (*types.ComplexityScoreRecord, error)
	Delete(ctx context.Context, cohortID uuid.UUID) error
	// Preview runs the calculator without touching storage. Its derived
	// values are exactly what Create/Update would persist for the same input.
	Preview(category scoring.ProgramCategory, scores []scoring.DimensionScore) (scoring.Derived, error)
}

type scoreRecordService struct {
	db           *gorm.DB
	log          *logger.Logger
	recordRepo   repos.ScoreRecordRepo
	calculator   *scoring.Calculator
	cohortClient cohort.Client

	// Per-cohort serialization for create/update/delete. The unique index on
	// cohort_id is the backstop; the lock keeps concurrent admin submissions
	// from racing each other into a lost update.
	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewScoreRecordService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recordRepo repos.ScoreRecordRepo,
	calculator *scoring.Calculator,
	cohortClient cohort.Client,
) ScoreRecordService {
	serviceLog := baseLog.With("service", "ScoreRecordService")
	return &scoreRecordService{
		db:           db,
		log:          serviceLog,
		recordRepo:   recordRepo,
		calculator:   calculator,
		cohortClient: cohortClient,
		locks:        map[uuid.UUID]*sync.Mutex{},
	}
}

func (s *scoreRecordService) cohortLock(cohortID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[cohortID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[cohortID] = mu
	}
	return mu
}

func (s *scoreRecordService) Create(ctx context.Context, cohortID uuid.UUID, category scoring.ProgramCategory, scores []scoring.DimensionScore) (*types.ComplexityScoreRecord, error) {
	mu := s.cohortLock(cohortID)
	mu.Lock()
	defer mu.Unlock()

	if s.cohortClient != nil {
		exists, err := s.cohortClient.Exists(ctx, cohortID)
		if err != nil {
			return nil, fmt.Errorf("verify cohort: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotFound, cohortID)
		}
	}

	taken, err := s.recordRepo.ExistsByCohortID(ctx, nil, cohortID)
	if err != nil {
		return nil, fmt.Errorf("check existing record: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: cohort %s", scoring.ErrConflict, cohortID)
	}

	derived, err := s.calculator.Compute(category, scores)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &types.ComplexityScoreRecord{
		ID:                 uuid.New(),
		CohortID:           cohortID,
		Category:           category,
		TotalScore:         derived.TotalScore,
		RequiredCoachGrade: derived.RequiredCoachGrade,
		PayBandMin:         derived.PayBandMin,
		PayBandMax:         derived.PayBandMax,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := record.SetDimensions(scores); err != nil {
		return nil, fmt.Errorf("encode dimensions: %w", err)
	}

	if _, err := s.recordRepo.Create(ctx, nil, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: cohort %s", scoring.ErrConflict, cohortID)
		}
		s.log.Error("Create score record failed", "error", err, "cohort_id", cohortID)
		return nil, fmt.Errorf("create score record: %w", err)
	}

	s.log.Info("Score record created",
		"cohort_id", cohortID,
		"category", category,
		"total_score", derived.TotalScore,
		"required_coach_grade", derived.RequiredCoachGrade,
	)
	return record, nil
}

func (s *scoreRecordService) Update(ctx context.Context, cohortID uuid.UUID, category scoring.ProgramCategory, scores []scoring.DimensionScore) (*types.ComplexityScoreRecord, error) {
	mu := s.cohortLock(cohortID)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.recordRepo.GetByCohortID(ctx, nil, cohortID)
	if err != nil {
		return nil, fmt.Errorf("load score record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotFound, cohortID)
	}

	derived, err := s.calculator.Compute(category, scores)
	if err != nil {
		return nil, err
	}

	// Full replacement: category, all seven dimensions and every derived
	// field are overwritten; nothing merges with the prior values.
	record.Category = category
	record.TotalScore = derived.TotalScore
	record.RequiredCoachGrade = derived.RequiredCoachGrade
	record.PayBandMin = derived.PayBandMin
	record.PayBandMax = derived.PayBandMax
	record.UpdatedAt = time.Now().UTC()
	if err := record.SetDimensions(scores); err != nil {
		return nil, fmt.Errorf("encode dimensions: %w", err)
	}

	if _, err := s.recordRepo.Update(ctx, nil, record); err != nil {
		s.log.Error("Update score record failed", "error", err, "cohort_id", cohortID)
		return nil, fmt.Errorf("update score record: %w", err)
	}

	s.log.Info("Score record replaced",
		"cohort_id", cohortID,
		"category", category,
		"total_score", derived.TotalScore,
		"required_coach_grade", derived.RequiredCoachGrade,
	)
	return record, nil
}

func (s *scoreRecordService) Get(ctx context.Context, cohortID uuid.UUID) (*types.ComplexityScoreRecord, error) {
	record, err := s.recordRepo.GetByCohortID(ctx, nil, cohortID)
	if err != nil {
		return nil, fmt.Errorf("load score record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotFound, cohortID)
	}
	return record, nil
}

func (s *scoreRecordService) Delete(ctx context.Context, cohortID uuid.UUID) error {
	mu := s.cohortLock(cohortID)
	mu.Lock()
	defer mu.Unlock()

	deleted, err := s.recordRepo.DeleteByCohortID(ctx, nil, cohortID)
	if err != nil {
		s.log.Error("Delete score record failed", "error", err, "cohort_id", cohortID)
		return fmt.Errorf("delete score record: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: cohort %s", scoring.ErrNotFound, cohortID)
	}

	s.log.Info("Score record deleted", "cohort_id", cohortID)
	return nil
}

func (s *scoreRecordService) Preview(category scoring.ProgramCategory, scores []scoring.DimensionScore) (scoring.Derived, error) {
	return s.calculator.Compute(category, scores)
}
