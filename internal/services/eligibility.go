package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aquademy/coachcore-backend/internal/clients/roster"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/repos"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

// EligibilityService filters the external roster by a cohort's required
// coach grade. It ranks nothing; ordering here is only a stable name sort.
type EligibilityService interface {
	EligibleCoaches(ctx context.Context, cohortID uuid.UUID) ([]types.EligibleCoach, error)
}

type eligibilityService struct {
	log          *logger.Logger
	recordRepo   repos.ScoreRecordRepo
	rosterClient roster.Client
}

func NewEligibilityService(
	baseLog *logger.Logger,
	recordRepo repos.ScoreRecordRepo,
	rosterClient roster.Client,
) EligibilityService {
	serviceLog := baseLog.With("service", "EligibilityService")
	return &eligibilityService{
		log:          serviceLog,
		recordRepo:   recordRepo,
		rosterClient: rosterClient,
	}
}

func (s *eligibilityService) EligibleCoaches(ctx context.Context, cohortID uuid.UUID) ([]types.EligibleCoach, error) {
	var (
		record  *types.ComplexityScoreRecord
		coaches []types.RosterCoach
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.recordRepo.GetByCohortID(gctx, nil, cohortID)
		if err != nil {
			return fmt.Errorf("load score record: %w", err)
		}
		record = r
		return nil
	})
	g.Go(func() error {
		cs, err := s.rosterClient.ListCoaches(gctx)
		if err != nil {
			return fmt.Errorf("load roster: %w", err)
		}
		coaches = cs
		return nil
	})
	if err := g.Wait(); err != nil {
		// A missing record outranks a roster failure: the caller cannot fix
		// the roster, but they can score the cohort.
		if record == nil && ctx.Err() == nil {
			if r, rerr := s.recordRepo.GetByCohortID(ctx, nil, cohortID); rerr == nil && r == nil {
				return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotScored, cohortID)
			}
		}
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: cohort %s", scoring.ErrNotScored, cohortID)
	}

	required := record.RequiredCoachGrade
	eligible := make([]types.EligibleCoach, 0, len(coaches))
	for _, c := range coaches {
		if !isActiveStatus(c.Status) {
			continue
		}
		grade, err := scoring.ParseCoachGrade(c.Grade)
		if err != nil {
			s.log.Warn("Roster coach has unknown grade, skipping",
				"member_id", c.MemberID,
				"grade", c.Grade,
			)
			continue
		}
		if !grade.Meets(required) {
			continue
		}
		eligible = append(eligible, types.EligibleCoach{
			MemberID: c.MemberID,
			Name:     c.Name,
			Email:    c.Email,
			Grade:    grade,
			Stats:    c.Stats,
		})
	}

	// Stable, deterministic output order for identical roster+requirement.
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Name != eligible[j].Name {
			return eligible[i].Name < eligible[j].Name
		}
		return eligible[i].MemberID.String() < eligible[j].MemberID.String()
	})

	s.log.Debug("Eligibility resolved",
		"cohort_id", cohortID,
		"required_coach_grade", required,
		"roster_size", len(coaches),
		"eligible_count", len(eligible),
	)
	return eligible, nil
}

func isActiveStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "approved":
		return true
	default:
		return false
	}
}
