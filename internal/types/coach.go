package types

import (
	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/scoring"
)

// CoachStats is the roster service's point-in-time activity summary.
type CoachStats struct {
	CoachingHours float64 `json:"coaching_hours"`
	AvgRating     float64 `json:"avg_rating"`
}

// RosterCoach is the raw roster-service projection. Grade and status are kept
// as received; the eligibility resolver parses and filters them.
type RosterCoach struct {
	MemberID uuid.UUID  `json:"member_id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Grade    string     `json:"grade"`
	Status   string     `json:"status"`
	Stats    CoachStats `json:"stats"`
}

// EligibleCoach is a read-only projection of a roster coach who meets a
// cohort's grade requirement. Not owned by this engine.
type EligibleCoach struct {
	MemberID uuid.UUID          `json:"member_id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Grade    scoring.CoachGrade `json:"grade"`
	Stats    CoachStats         `json:"stats"`
}
