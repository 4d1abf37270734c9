package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/clients/cohort"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/repos"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

// CoachRankingService orders eligible coaches by advisory fit. Eligibility is
// resolved first and is the hard gate: the advisor only ever sees coaches who
// already meet the required grade, and an empty eligible set short-circuits
// without any advisory call.
type CoachRankingService interface {
	RankCoaches(ctx context.Context, cohortID uuid.UUID) ([]types.CoachRankingSuggestion, error)
}

type coachRankingService struct {
	log          *logger.Logger
	recordRepo   repos.ScoreRecordRepo
	eligibility  EligibilityService
	cohortClient cohort.Client
	advisor      ScoreAdvisor
}

func NewCoachRankingService(
	baseLog *logger.Logger,
	recordRepo repos.ScoreRecordRepo,
	eligibility EligibilityService,
	cohortClient cohort.Client,
	advisor ScoreAdvisor,
) CoachRankingService {
	serviceLog := baseLog.With("service", "CoachRankingService")
	return &coachRankingService{
		log:          serviceLog,
		recordRepo:   recordRepo,
		eligibility:  eligibility,
		cohortClient: cohortClient,
		advisor:      advisor,
	}
}

func (s *coachRankingService) RankCoaches(ctx context.Context, cohortID uuid.UUID) ([]types.CoachRankingSuggestion, error) {
	eligible, err := s.eligibility.EligibleCoaches(ctx, cohortID)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		s.log.Info("No eligible coaches, skipping advisory ranking", "cohort_id", cohortID)
		return []types.CoachRankingSuggestion{}, nil
	}

	record, err := s.recordRepo.GetByCohortID(ctx, nil, cohortID)
	if err != nil {
		return nil, fmt.Errorf("load score record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotScored, cohortID)
	}

	cohortCtx, err := s.cohortClient.GetCohort(ctx, cohortID)
	if err != nil {
		if errors.Is(err, cohort.ErrCohortNotFound) {
			return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotFound, cohortID)
		}
		s.log.Warn("Cohort context fetch failed for ranking", "error", err, "cohort_id", cohortID)
		return nil, scoring.AdviceUnavailable(err)
	}

	rankings, err := s.advisor.RankCoaches(ctx, *cohortCtx, record, eligible)
	if err != nil {
		return nil, err
	}

	byMemberID := make(map[string]types.EligibleCoach, len(eligible))
	for _, c := range eligible {
		byMemberID[c.MemberID.String()] = c
	}

	// The advisor's ordering is kept, but only members of the eligible set
	// survive. A hallucinated or stale member_id is a data-quality signal,
	// never a way to widen the candidate pool.
	out := make([]types.CoachRankingSuggestion, 0, len(rankings))
	seen := make(map[string]bool, len(rankings))
	for _, r := range rankings {
		coach, ok := byMemberID[r.MemberID]
		if !ok {
			s.log.Warn("Advisor ranked a coach outside the eligible set, dropping",
				"cohort_id", cohortID,
				"member_id", r.MemberID,
			)
			continue
		}
		if seen[r.MemberID] {
			continue
		}
		seen[r.MemberID] = true
		out = append(out, types.CoachRankingSuggestion{
			MemberID:   coach.MemberID,
			Name:       coach.Name,
			Grade:      coach.Grade,
			Stats:      coach.Stats,
			MatchScore: scoring.ClampConfidence(r.MatchScore),
			Rationale:  r.Rationale,
		})
	}

	s.log.Info("Coach ranking produced",
		"cohort_id", cohortID,
		"eligible_count", len(eligible),
		"ranked_count", len(out),
	)
	return out, nil
}
