package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/aquademy/coachcore-backend/internal/scoring"
)

// ComplexityScoreRecord is the committed complexity assessment for one
// cohort. At most one record exists per cohort; total score, required grade
// and pay band are derived by the calculator and never set by callers.
type ComplexityScoreRecord struct {
	ID                 uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	CohortID           uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex" json:"cohort_id"`
	Category           scoring.ProgramCategory `gorm:"column:category;not null" json:"category"`
	DimensionScores    datatypes.JSON          `gorm:"column:dimension_scores;type:jsonb;not null" json:"dimension_scores"`
	TotalScore         int                     `gorm:"column:total_score;not null" json:"total_score"`
	RequiredCoachGrade scoring.CoachGrade      `gorm:"column:required_coach_grade;not null" json:"required_coach_grade"`
	PayBandMin         float64                 `gorm:"column:pay_band_min;not null" json:"pay_band_min"`
	PayBandMax         float64                 `gorm:"column:pay_band_max;not null" json:"pay_band_max"`
	CreatedAt          time.Time               `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time               `gorm:"not null" json:"updated_at"`
}

func (ComplexityScoreRecord) TableName() string { return "complexity_score_record" }

// Dimensions decodes the stored dimension set.
func (r *ComplexityScoreRecord) Dimensions() ([]scoring.DimensionScore, error) {
	var out []scoring.DimensionScore
	if len(r.DimensionScores) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.DimensionScores, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetDimensions stores the dimension set in index order.
func (r *ComplexityScoreRecord) SetDimensions(scores []scoring.DimensionScore) error {
	raw, err := json.Marshal(scoring.NormalizeScores(scores))
	if err != nil {
		return err
	}
	r.DimensionScores = datatypes.JSON(raw)
	return nil
}
