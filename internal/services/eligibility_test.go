package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/repos"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

func seedRecord(t *testing.T, svc ScoreRecordService, cohortID uuid.UUID, score int) {
	t.Helper()
	if _, err := svc.Create(context.Background(), cohortID, scoring.CategoryLearnToSwim, uniformScores(score)); err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func rosterCoach(name, grade, status string) types.RosterCoach {
	return types.RosterCoach{
		MemberID: uuid.New(),
		Name:     name,
		Grade:    grade,
		Status:   status,
		Stats:    types.CoachStats{CoachingHours: 120, AvgRating: 4.5},
	}
}

func TestEligibleCoachesFiltersByGrade(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 3) // total 21 -> requires GRADE_2

	rosterClient := &stubRosterClient{coaches: []types.RosterCoach{
		rosterCoach("Avery", "GRADE_1", "active"),
		rosterCoach("Blake", "GRADE_2", "active"),
		rosterCoach("Casey", "GRADE_3", "active"),
		rosterCoach("Drew", "GRADE_2", "inactive"),
		rosterCoach("Ellis", "MASTER", "active"),
	}}

	log := testLogger(t)
	svc := NewEligibilityService(log, repos.NewScoreRecordRepo(db, log), rosterClient)

	eligible, err := svc.EligibleCoaches(context.Background(), cohortID)
	if err != nil {
		t.Fatalf("EligibleCoaches: %v", err)
	}
	if len(eligible) != 2 {
		t.Fatalf("eligible = %d, want 2: %+v", len(eligible), eligible)
	}
	// Stable name order.
	if eligible[0].Name != "Blake" || eligible[1].Name != "Casey" {
		t.Fatalf("order = %s, %s", eligible[0].Name, eligible[1].Name)
	}
}

func TestEligibleCoachesGrade1RequirementAdmitsAll(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 1) // total 7 -> requires GRADE_1

	rosterClient := &stubRosterClient{coaches: []types.RosterCoach{
		rosterCoach("Avery", "GRADE_1", "active"),
		rosterCoach("Blake", "GRADE_2", "approved"),
		rosterCoach("Casey", "GRADE_3", "active"),
	}}

	log := testLogger(t)
	svc := NewEligibilityService(log, repos.NewScoreRecordRepo(db, log), rosterClient)

	eligible, err := svc.EligibleCoaches(context.Background(), cohortID)
	if err != nil {
		t.Fatalf("EligibleCoaches: %v", err)
	}
	if len(eligible) != 3 {
		t.Fatalf("eligible = %d, want 3", len(eligible))
	}
}

func TestEligibleCoachesUnscoredCohort(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	svc := NewEligibilityService(log, repos.NewScoreRecordRepo(db, log), &stubRosterClient{})

	_, err := svc.EligibleCoaches(context.Background(), uuid.New())
	if !errors.Is(err, scoring.ErrNotScored) {
		t.Fatalf("expected ErrNotScored, got %v", err)
	}
}

func TestEligibleCoachesUnscoredOutranksRosterFailure(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	rosterClient := &stubRosterClient{err: errors.New("roster unreachable")}
	svc := NewEligibilityService(log, repos.NewScoreRecordRepo(db, log), rosterClient)

	_, err := svc.EligibleCoaches(context.Background(), uuid.New())
	if !errors.Is(err, scoring.ErrNotScored) {
		t.Fatalf("expected ErrNotScored even when roster fails, got %v", err)
	}
}

func TestEligibleCoachesRosterFailureOnScoredCohort(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 3)

	log := testLogger(t)
	rosterClient := &stubRosterClient{err: errors.New("roster unreachable")}
	svc := NewEligibilityService(log, repos.NewScoreRecordRepo(db, log), rosterClient)

	_, err := svc.EligibleCoaches(context.Background(), cohortID)
	if err == nil || errors.Is(err, scoring.ErrNotScored) {
		t.Fatalf("expected roster failure, got %v", err)
	}
}

func TestEligibleCoachesEmptyRoster(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 5)

	log := testLogger(t)
	svc := NewEligibilityService(log, repos.NewScoreRecordRepo(db, log), &stubRosterClient{})

	eligible, err := svc.EligibleCoaches(context.Background(), cohortID)
	if err != nil {
		t.Fatalf("EligibleCoaches: %v", err)
	}
	if len(eligible) != 0 {
		t.Fatalf("eligible = %d, want 0", len(eligible))
	}
}
