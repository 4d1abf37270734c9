package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

func TestSuggestDimensionsReturnsAdvisorOutput(t *testing.T) {
	cohortID := uuid.New()
	dims := make([]scoring.SuggestedDimension, 0, scoring.DimensionCount)
	for idx := 1; idx <= scoring.DimensionCount; idx++ {
		dims = append(dims, scoring.SuggestedDimension{Index: idx, Score: 3, Rationale: "typical", Confidence: 0.6})
	}
	advisor := &stubAdvisor{suggestion: &types.AISuggestion{
		Category:          scoring.CategoryLearnToSwim,
		Dimensions:        dims,
		OverallRationale:  "mixed-age group of moderate size",
		OverallConfidence: 0.6,
	}}

	svc := NewAIAssistService(testLogger(t), knownCohort(cohortID), advisor)

	suggestion, err := svc.SuggestDimensions(context.Background(), cohortID, scoring.CategoryLearnToSwim)
	if err != nil {
		t.Fatalf("SuggestDimensions: %v", err)
	}
	if len(suggestion.Dimensions) != scoring.DimensionCount {
		t.Fatalf("dimensions = %d", len(suggestion.Dimensions))
	}
	if advisor.suggestCalls != 1 {
		t.Fatalf("advisor calls = %d, want 1", advisor.suggestCalls)
	}
}

func TestSuggestDimensionsUnknownCohort(t *testing.T) {
	advisor := &stubAdvisor{}
	svc := NewAIAssistService(testLogger(t), knownCohort(uuid.New()), advisor)

	_, err := svc.SuggestDimensions(context.Background(), uuid.New(), scoring.CategoryLearnToSwim)
	if !errors.Is(err, scoring.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if advisor.suggestCalls != 0 {
		t.Fatalf("advisor must not be called for unknown cohort")
	}
}

func TestSuggestDimensionsUnknownCategory(t *testing.T) {
	cohortID := uuid.New()
	svc := NewAIAssistService(testLogger(t), knownCohort(cohortID), &stubAdvisor{})

	_, err := svc.SuggestDimensions(context.Background(), cohortID, scoring.ProgramCategory("AQUA_AEROBICS"))
	if !errors.Is(err, scoring.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestSuggestDimensionsCohortServiceDown(t *testing.T) {
	cohortID := uuid.New()
	cohortClient := &stubCohortClient{err: errors.New("cohort service unreachable")}
	svc := NewAIAssistService(testLogger(t), cohortClient, &stubAdvisor{})

	_, err := svc.SuggestDimensions(context.Background(), cohortID, scoring.CategoryLearnToSwim)
	if !errors.Is(err, scoring.ErrAdviceUnavailable) {
		t.Fatalf("expected ErrAdviceUnavailable, got %v", err)
	}
}

func TestSuggestDimensionsAdvisorFailure(t *testing.T) {
	cohortID := uuid.New()
	advisor := &stubAdvisor{err: scoring.AdviceUnavailable(errors.New("model timeout"))}
	svc := NewAIAssistService(testLogger(t), knownCohort(cohortID), advisor)

	_, err := svc.SuggestDimensions(context.Background(), cohortID, scoring.CategoryLearnToSwim)
	if !errors.Is(err, scoring.ErrAdviceUnavailable) {
		t.Fatalf("expected ErrAdviceUnavailable, got %v", err)
	}
}
