package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/clients/cohort"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

// AIAssistService produces dimension score suggestions for an admin filling
// out a score draft. Suggestions are advisory only; the admin applies or
// discards them client-side and nothing here writes to storage.
type AIAssistService interface {
	SuggestDimensions(ctx context.Context, cohortID uuid.UUID, category scoring.ProgramCategory) (*types.AISuggestion, error)
}

type aiAssistService struct {
	log          *logger.Logger
	cohortClient cohort.Client
	advisor      ScoreAdvisor
}

func NewAIAssistService(
	baseLog *logger.Logger,
	cohortClient cohort.Client,
	advisor ScoreAdvisor,
) AIAssistService {
	serviceLog := baseLog.With("service", "AIAssistService")
	return &aiAssistService{
		log:          serviceLog,
		cohortClient: cohortClient,
		advisor:      advisor,
	}
}

func (s *aiAssistService) SuggestDimensions(ctx context.Context, cohortID uuid.UUID, category scoring.ProgramCategory) (*types.AISuggestion, error) {
	labels, err := scoring.DimensionLabels(category)
	if err != nil {
		return nil, err
	}

	cohortCtx, err := s.cohortClient.GetCohort(ctx, cohortID)
	if err != nil {
		if errors.Is(err, cohort.ErrCohortNotFound) {
			return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotFound, cohortID)
		}
		// The cohort service being down is indistinguishable, from the
		// admin's perspective, from the advisor being down: advice is
		// unavailable either way and manual entry still works.
		s.log.Warn("Cohort context fetch failed for suggestion", "error", err, "cohort_id", cohortID)
		return nil, scoring.AdviceUnavailable(err)
	}

	suggestion, err := s.advisor.SuggestDimensions(ctx, *cohortCtx, category, labels)
	if err != nil {
		return nil, err
	}

	s.log.Info("Dimension suggestion produced",
		"cohort_id", cohortID,
		"category", category,
		"overall_confidence", suggestion.OverallConfidence,
	)
	return suggestion, nil
}
