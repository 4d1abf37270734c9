package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aquademy/coachcore-backend/internal/clients/cohort"
	"github.com/aquademy/coachcore-backend/internal/clients/roster"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/repos"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.ComplexityScoreRecord{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testCalculator(t *testing.T) *scoring.Calculator {
	t.Helper()
	table := scoring.PayBandTable{}
	for _, cat := range scoring.Categories() {
		table[cat] = map[scoring.CoachGrade]scoring.PayBand{
			scoring.Grade1: {Min: 30, Max: 40},
			scoring.Grade2: {Min: 38, Max: 48},
			scoring.Grade3: {Min: 46, Max: 56},
		}
	}
	calc, err := scoring.NewCalculator(table)
	if err != nil {
		t.Fatalf("init calculator: %v", err)
	}
	return calc
}

func uniformScores(score int) []scoring.DimensionScore {
	out := make([]scoring.DimensionScore, 0, scoring.DimensionCount)
	for idx := 1; idx <= scoring.DimensionCount; idx++ {
		out = append(out, scoring.DimensionScore{Index: idx, Score: score})
	}
	return out
}

// stubCohortClient serves a fixed set of known cohorts.
type stubCohortClient struct {
	known map[uuid.UUID]types.CohortContext
	err   error
}

var _ cohort.Client = (*stubCohortClient)(nil)

func (s *stubCohortClient) GetCohort(_ context.Context, cohortID uuid.UUID) (*types.CohortContext, error) {
	if s.err != nil {
		return nil, s.err
	}
	ctx, ok := s.known[cohortID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", cohort.ErrCohortNotFound, cohortID)
	}
	return &ctx, nil
}

func (s *stubCohortClient) Exists(ctx context.Context, cohortID uuid.UUID) (bool, error) {
	_, err := s.GetCohort(ctx, cohortID)
	if err != nil {
		if s.err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func knownCohort(id uuid.UUID) *stubCohortClient {
	return &stubCohortClient{known: map[uuid.UUID]types.CohortContext{
		id: {ID: id, Name: "Dolphins Tuesday PM", Notes: "mixed ages, two new swimmers"},
	}}
}

// stubRosterClient serves a fixed roster snapshot.
type stubRosterClient struct {
	coaches []types.RosterCoach
	err     error
}

var _ roster.Client = (*stubRosterClient)(nil)

func (s *stubRosterClient) ListCoaches(context.Context) ([]types.RosterCoach, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.coaches, nil
}

// stubAdvisor records calls and replays canned responses.
type stubAdvisor struct {
	suggestion   *types.AISuggestion
	rankings     []rawRanking
	err          error
	suggestCalls int
	rankCalls    int
}

var _ ScoreAdvisor = (*stubAdvisor)(nil)

func (s *stubAdvisor) SuggestDimensions(context.Context, types.CohortContext, scoring.ProgramCategory, [scoring.DimensionCount]string) (*types.AISuggestion, error) {
	s.suggestCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestion, nil
}

func (s *stubAdvisor) RankCoaches(context.Context, types.CohortContext, *types.ComplexityScoreRecord, []types.EligibleCoach) ([]rawRanking, error) {
	s.rankCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rankings, nil
}

func newRecordService(t *testing.T, db *gorm.DB, cohortClient cohort.Client) ScoreRecordService {
	t.Helper()
	log := testLogger(t)
	return NewScoreRecordService(db, log, repos.NewScoreRecordRepo(db, log), testCalculator(t), cohortClient)
}
