package types

import (
	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/scoring"
)

// AISuggestion is an ephemeral advisory draft pre-fill. It is never persisted
// by the engine; the caller holds it as draft state until an explicit save.
type AISuggestion struct {
	Category          scoring.ProgramCategory      `json:"category"`
	Dimensions        []scoring.SuggestedDimension `json:"dimensions"`
	OverallRationale  string                       `json:"overall_rationale"`
	OverallConfidence float64                      `json:"overall_confidence"`
}

// CoachRankingSuggestion is one entry of the advisory fit ordering over the
// eligible set. Ephemeral, read-only advice: it never changes who is eligible
// and never persists an assignment.
type CoachRankingSuggestion struct {
	MemberID   uuid.UUID          `json:"member_id"`
	Name       string             `json:"name"`
	MatchScore float64            `json:"match_score"`
	Rationale  string             `json:"rationale"`
	Grade      scoring.CoachGrade `json:"grade"`
	Stats      CoachStats         `json:"stats"`
}

// CohortContext is the cohort identity service's summary used to ground
// advisory prompts.
type CohortContext struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Notes    string    `json:"notes"`
}
