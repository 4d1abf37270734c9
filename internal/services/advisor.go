package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aquademy/coachcore-backend/internal/platform/envutil"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/platform/openai"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/types"
)

// ScoreAdvisor is the trust boundary to the external advisory model. Both
// calls are strictly read-only advice: nothing returned here is persisted and
// every failure is recoverable by falling back to manual entry.
type ScoreAdvisor interface {
	SuggestDimensions(ctx context.Context, cohortCtx types.CohortContext, category scoring.ProgramCategory, labels [scoring.DimensionCount]string) (*types.AISuggestion, error)
	RankCoaches(ctx context.Context, cohortCtx types.CohortContext, record *types.ComplexityScoreRecord, eligible []types.EligibleCoach) ([]rawRanking, error)
}

// rawRanking is the unvalidated advisory ordering. The ranking service maps
// member IDs back onto the eligible set before anything leaves the engine.
type rawRanking struct {
	MemberID   string  `json:"member_id"`
	MatchScore float64 `json:"match_score"`
	Rationale  string  `json:"rationale"`
}

type openaiAdvisor struct {
	log     *logger.Logger
	ai      openai.Client
	timeout time.Duration
	tracer  trace.Tracer
}

func NewOpenAIAdvisor(baseLog *logger.Logger, ai openai.Client) ScoreAdvisor {
	serviceLog := baseLog.With("service", "ScoreAdvisor")
	timeoutSec := envutil.GetEnvAsInt("ADVISOR_TIMEOUT_SECONDS", 30, serviceLog)
	return &openaiAdvisor{
		log:     serviceLog,
		ai:      ai,
		timeout: time.Duration(timeoutSec) * time.Second,
		tracer:  otel.Tracer("coachcore/advisor"),
	}
}

func (a *openaiAdvisor) SuggestDimensions(ctx context.Context, cohortCtx types.CohortContext, category scoring.ProgramCategory, labels [scoring.DimensionCount]string) (*types.AISuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, "advisor.suggest_dimensions",
		trace.WithAttributes(attribute.String("category", string(category))),
	)
	defer span.End()

	system := "You help a swim-school operations admin estimate the complexity of a training cohort. " +
		"Score each of the seven dimensions from 1 (simplest) to 5 (most demanding) with a short rationale and a confidence between 0 and 1. " +
		"Base the scores only on the cohort context provided; be conservative when the context is thin."

	var user strings.Builder
	fmt.Fprintf(&user, "Program category: %s\n", category)
	fmt.Fprintf(&user, "Cohort: %s\n", cohortCtx.Name)
	if strings.TrimSpace(cohortCtx.Notes) != "" {
		fmt.Fprintf(&user, "Notes: %s\n", cohortCtx.Notes)
	}
	user.WriteString("Dimensions to score, in order:\n")
	for i, label := range labels {
		fmt.Fprintf(&user, "%d. %s\n", i+1, label)
	}

	obj, err := a.ai.GenerateJSON(ctx, system, user.String(), "dimension_suggestions", suggestionSchema())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "suggestion call failed")
		a.log.Warn("Dimension suggestion call failed", "error", err, "category", category)
		return nil, scoring.AdviceUnavailable(err)
	}

	suggestion, err := decodeSuggestion(obj, category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "suggestion response malformed")
		a.log.Warn("Dimension suggestion response malformed", "error", err, "category", category)
		return nil, scoring.AdviceUnavailable(err)
	}
	return suggestion, nil
}

func (a *openaiAdvisor) RankCoaches(ctx context.Context, cohortCtx types.CohortContext, record *types.ComplexityScoreRecord, eligible []types.EligibleCoach) ([]rawRanking, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, "advisor.rank_coaches",
		trace.WithAttributes(
			attribute.String("category", string(record.Category)),
			attribute.Int("eligible_count", len(eligible)),
		),
	)
	defer span.End()

	system := "You help a swim-school operations admin order eligible coaches by fit for a cohort. " +
		"Every listed coach already meets the qualification requirement; rank all of them from best fit to worst, " +
		"with a match_score between 0 and 1 and a one-sentence rationale. Mention only the member_ids provided."

	var user strings.Builder
	fmt.Fprintf(&user, "Cohort: %s (category %s)\n", cohortCtx.Name, record.Category)
	if strings.TrimSpace(cohortCtx.Notes) != "" {
		fmt.Fprintf(&user, "Notes: %s\n", cohortCtx.Notes)
	}
	fmt.Fprintf(&user, "Complexity total score: %d (requires %s)\n", record.TotalScore, record.RequiredCoachGrade)
	user.WriteString("Eligible coaches:\n")
	for _, c := range eligible {
		fmt.Fprintf(&user, "- member_id=%s grade=%s coaching_hours=%.0f avg_rating=%.2f\n",
			c.MemberID, c.Grade, c.Stats.CoachingHours, c.Stats.AvgRating)
	}

	obj, err := a.ai.GenerateJSON(ctx, system, user.String(), "coach_ranking", rankingSchema())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking call failed")
		a.log.Warn("Coach ranking call failed", "error", err, "cohort_id", cohortCtx.ID)
		return nil, scoring.AdviceUnavailable(err)
	}

	rankings, err := decodeRankings(obj)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking response malformed")
		a.log.Warn("Coach ranking response malformed", "error", err, "cohort_id", cohortCtx.ID)
		return nil, scoring.AdviceUnavailable(err)
	}
	return rankings, nil
}

func suggestionSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"dimensions", "overall_rationale", "overall_confidence"},
		"properties": map[string]any{
			"dimensions": map[string]any{
				"type":     "array",
				"minItems": scoring.DimensionCount,
				"maxItems": scoring.DimensionCount,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"index", "score", "rationale", "confidence"},
					"properties": map[string]any{
						"index":      map[string]any{"type": "integer"},
						"score":      map[string]any{"type": "integer"},
						"rationale":  map[string]any{"type": "string"},
						"confidence": map[string]any{"type": "number"},
					},
				},
			},
			"overall_rationale":  map[string]any{"type": "string"},
			"overall_confidence": map[string]any{"type": "number"},
		},
	}
}

func rankingSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"rankings"},
		"properties": map[string]any{
			"rankings": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"member_id", "match_score", "rationale"},
					"properties": map[string]any{
						"member_id":   map[string]any{"type": "string"},
						"match_score": map[string]any{"type": "number"},
						"rationale":   map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

func decodeSuggestion(obj map[string]any, category scoring.ProgramCategory) (*types.AISuggestion, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Dimensions        []scoring.SuggestedDimension `json:"dimensions"`
		OverallRationale  string                       `json:"overall_rationale"`
		OverallConfidence float64                      `json:"overall_confidence"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	if len(payload.Dimensions) != scoring.DimensionCount {
		return nil, fmt.Errorf("expected %d suggested dimensions, got %d", scoring.DimensionCount, len(payload.Dimensions))
	}
	seen := map[int]bool{}
	for i := range payload.Dimensions {
		d := &payload.Dimensions[i]
		if d.Index < 1 || d.Index > scoring.DimensionCount || seen[d.Index] {
			return nil, fmt.Errorf("suggested dimensions do not cover indices 1..%d exactly once", scoring.DimensionCount)
		}
		seen[d.Index] = true
		// Untrusted input: clamp to the same bounds manual entry obeys.
		d.Score = scoring.ClampScore(d.Score)
		d.Confidence = scoring.ClampConfidence(d.Confidence)
	}

	return &types.AISuggestion{
		Category:          category,
		Dimensions:        scoringSortSuggestions(payload.Dimensions),
		OverallRationale:  payload.OverallRationale,
		OverallConfidence: scoring.ClampConfidence(payload.OverallConfidence),
	}, nil
}

func scoringSortSuggestions(dims []scoring.SuggestedDimension) []scoring.SuggestedDimension {
	out := make([]scoring.SuggestedDimension, scoring.DimensionCount)
	for _, d := range dims {
		out[d.Index-1] = d
	}
	return out
}

func decodeRankings(obj map[string]any) ([]rawRanking, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Rankings []rawRanking `json:"rankings"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload.Rankings, nil
}
