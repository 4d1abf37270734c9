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

func TestRankCoachesSkipsAdvisorWhenNobodyEligible(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 5) // requires GRADE_3

	rosterClient := &stubRosterClient{coaches: []types.RosterCoach{
		rosterCoach("Avery", "GRADE_1", "active"),
		rosterCoach("Blake", "GRADE_2", "active"),
	}}
	advisor := &stubAdvisor{}

	log := testLogger(t)
	recordRepo := repos.NewScoreRecordRepo(db, log)
	eligibility := NewEligibilityService(log, recordRepo, rosterClient)
	svc := NewCoachRankingService(log, recordRepo, eligibility, knownCohort(cohortID), advisor)

	rankings, err := svc.RankCoaches(context.Background(), cohortID)
	if err != nil {
		t.Fatalf("RankCoaches: %v", err)
	}
	if len(rankings) != 0 {
		t.Fatalf("rankings = %d, want 0", len(rankings))
	}
	if advisor.rankCalls != 0 {
		t.Fatalf("advisor called %d times with empty eligible set", advisor.rankCalls)
	}
}

func TestRankCoachesOrdersEligibleSet(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 3) // requires GRADE_2

	blake := rosterCoach("Blake", "GRADE_2", "active")
	casey := rosterCoach("Casey", "GRADE_3", "active")
	rosterClient := &stubRosterClient{coaches: []types.RosterCoach{blake, casey}}

	advisor := &stubAdvisor{rankings: []rawRanking{
		{MemberID: casey.MemberID.String(), MatchScore: 0.9, Rationale: "strong elite background"},
		{MemberID: blake.MemberID.String(), MatchScore: 0.7, Rationale: "solid fit"},
	}}

	log := testLogger(t)
	recordRepo := repos.NewScoreRecordRepo(db, log)
	eligibility := NewEligibilityService(log, recordRepo, rosterClient)
	svc := NewCoachRankingService(log, recordRepo, eligibility, knownCohort(cohortID), advisor)

	rankings, err := svc.RankCoaches(context.Background(), cohortID)
	if err != nil {
		t.Fatalf("RankCoaches: %v", err)
	}
	if len(rankings) != 2 {
		t.Fatalf("rankings = %d, want 2", len(rankings))
	}
	if rankings[0].MemberID != casey.MemberID || rankings[1].MemberID != blake.MemberID {
		t.Fatalf("advisor ordering not preserved: %+v", rankings)
	}
	if rankings[0].Name != "Casey" || rankings[0].Grade != scoring.Grade3 {
		t.Fatalf("ranking entry missing roster projection: %+v", rankings[0])
	}
	if advisor.rankCalls != 1 {
		t.Fatalf("advisor calls = %d, want 1", advisor.rankCalls)
	}
}

func TestRankCoachesDropsUnknownMembers(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 3)

	blake := rosterCoach("Blake", "GRADE_2", "active")
	rosterClient := &stubRosterClient{coaches: []types.RosterCoach{blake}}

	advisor := &stubAdvisor{rankings: []rawRanking{
		{MemberID: uuid.NewString(), MatchScore: 0.95, Rationale: "hallucinated"},
		{MemberID: blake.MemberID.String(), MatchScore: 1.8, Rationale: "real"},
		{MemberID: blake.MemberID.String(), MatchScore: 0.5, Rationale: "duplicate"},
	}}

	log := testLogger(t)
	recordRepo := repos.NewScoreRecordRepo(db, log)
	eligibility := NewEligibilityService(log, recordRepo, rosterClient)
	svc := NewCoachRankingService(log, recordRepo, eligibility, knownCohort(cohortID), advisor)

	rankings, err := svc.RankCoaches(context.Background(), cohortID)
	if err != nil {
		t.Fatalf("RankCoaches: %v", err)
	}
	if len(rankings) != 1 {
		t.Fatalf("rankings = %d, want 1", len(rankings))
	}
	if rankings[0].MemberID != blake.MemberID {
		t.Fatalf("unexpected member: %+v", rankings[0])
	}
	if rankings[0].MatchScore != 1 {
		t.Fatalf("match score not clamped: %f", rankings[0].MatchScore)
	}
}

func TestRankCoachesAdvisorFailure(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	recordSvc := newRecordService(t, db, knownCohort(cohortID))
	seedRecord(t, recordSvc, cohortID, 3)

	blake := rosterCoach("Blake", "GRADE_2", "active")
	rosterClient := &stubRosterClient{coaches: []types.RosterCoach{blake}}
	advisor := &stubAdvisor{err: scoring.AdviceUnavailable(errors.New("model timeout"))}

	log := testLogger(t)
	recordRepo := repos.NewScoreRecordRepo(db, log)
	eligibility := NewEligibilityService(log, recordRepo, rosterClient)
	svc := NewCoachRankingService(log, recordRepo, eligibility, knownCohort(cohortID), advisor)

	_, err := svc.RankCoaches(context.Background(), cohortID)
	if !errors.Is(err, scoring.ErrAdviceUnavailable) {
		t.Fatalf("expected ErrAdviceUnavailable, got %v", err)
	}
}

func TestRankCoachesUnscoredCohort(t *testing.T) {
	db := testDB(t)
	cohortID := uuid.New()
	advisor := &stubAdvisor{}

	log := testLogger(t)
	recordRepo := repos.NewScoreRecordRepo(db, log)
	eligibility := NewEligibilityService(log, recordRepo, &stubRosterClient{})
	svc := NewCoachRankingService(log, recordRepo, eligibility, knownCohort(cohortID), advisor)

	_, err := svc.RankCoaches(context.Background(), cohortID)
	if !errors.Is(err, scoring.ErrNotScored) {
		t.Fatalf("expected ErrNotScored, got %v", err)
	}
	if advisor.rankCalls != 0 {
		t.Fatalf("advisor must not be called for unscored cohort")
	}
}
