package services

import (
	"testing"

	"github.com/aquademy/coachcore-backend/internal/scoring"
)

func suggestionPayload(indices []int, score int) map[string]any {
	dims := make([]any, 0, len(indices))
	for _, idx := range indices {
		dims = append(dims, map[string]any{
			"index":      idx,
			"score":      score,
			"rationale":  "because",
			"confidence": 0.8,
		})
	}
	return map[string]any{
		"dimensions":         dims,
		"overall_rationale":  "overall",
		"overall_confidence": 1.4,
	}
}

func TestDecodeSuggestionClampsValues(t *testing.T) {
	obj := suggestionPayload([]int{1, 2, 3, 4, 5, 6, 7}, 9)

	suggestion, err := decodeSuggestion(obj, scoring.CategoryLearnToSwim)
	if err != nil {
		t.Fatalf("decodeSuggestion: %v", err)
	}
	for _, d := range suggestion.Dimensions {
		if d.Score != scoring.MaxDimensionScore {
			t.Fatalf("dimension %d score = %d, want clamped to %d", d.Index, d.Score, scoring.MaxDimensionScore)
		}
	}
	if suggestion.OverallConfidence != 1 {
		t.Fatalf("overall confidence = %f, want clamped to 1", suggestion.OverallConfidence)
	}
}

func TestDecodeSuggestionOrdersByIndex(t *testing.T) {
	obj := suggestionPayload([]int{7, 5, 3, 1, 2, 4, 6}, 3)

	suggestion, err := decodeSuggestion(obj, scoring.CategoryInstitutional)
	if err != nil {
		t.Fatalf("decodeSuggestion: %v", err)
	}
	for i, d := range suggestion.Dimensions {
		if d.Index != i+1 {
			t.Fatalf("position %d holds index %d", i, d.Index)
		}
	}
}

func TestDecodeSuggestionRejectsBadCoverage(t *testing.T) {
	cases := []struct {
		name    string
		indices []int
	}{
		{"too few", []int{1, 2, 3, 4, 5, 6}},
		{"duplicate", []int{1, 2, 3, 4, 5, 6, 6}},
		{"out of range", []int{1, 2, 3, 4, 5, 6, 8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeSuggestion(suggestionPayload(tc.indices, 3), scoring.CategoryLearnToSwim); err == nil {
				t.Fatalf("expected decode error")
			}
		})
	}
}
