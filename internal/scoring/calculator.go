package scoring

import (
	"fmt"
	"sort"
)

const (
	// MinDimensionScore and MaxDimensionScore bound a single dimension.
	MinDimensionScore = 1
	MaxDimensionScore = 5
	// MinTotalScore and MaxTotalScore follow from seven validated dimensions.
	MinTotalScore = DimensionCount * MinDimensionScore
	MaxTotalScore = DimensionCount * MaxDimensionScore
)

// DimensionScore is one scored complexity axis. Index is 1-based and each of
// 1..7 must appear exactly once per record.
type DimensionScore struct {
	Index     int    `json:"index"`
	Score     int    `json:"score"`
	Rationale string `json:"rationale,omitempty"`
}

// Derived holds everything the engine computes from a validated submission.
type Derived struct {
	TotalScore         int        `json:"total_score"`
	RequiredCoachGrade CoachGrade `json:"required_coach_grade"`
	PayBandMin         float64    `json:"pay_band_min"`
	PayBandMax         float64    `json:"pay_band_max"`
}

// Calculator derives total score, required grade and pay band from a
// submitted dimension set. It is pure and stateless: identical inputs always
// produce identical outputs, so a preview matches exactly what a save would
// store.
type Calculator struct {
	bands PayBandTable
}

// NewCalculator validates the injected pay-band table up front. A gap in the
// 21-entry table fails here, at startup, never per request.
func NewCalculator(bands PayBandTable) (*Calculator, error) {
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateCatalog(); err != nil {
		return nil, err
	}
	return &Calculator{bands: bands}, nil
}

// Compute validates the submission and returns the derived values.
// Validation reports every offending dimension index, not just the first.
func (c *Calculator) Compute(category ProgramCategory, scores []DimensionScore) (Derived, error) {
	if _, ok := c.bands[category]; !ok {
		return Derived{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	if issues := validateScores(scores); len(issues) > 0 {
		return Derived{}, &InvalidScoreInputError{Issues: issues}
	}

	total := 0
	for _, ds := range scores {
		total += ds.Score
	}

	grade := GradeForTotal(total)
	band, ok := c.bands.Lookup(category, grade)
	if !ok {
		// Unreachable after NewCalculator validation; kept as a hard guard.
		return Derived{}, &IncompleteConfigurationError{Missing: []string{fmt.Sprintf("%s/%s", category, grade)}}
	}

	return Derived{
		TotalScore:         total,
		RequiredCoachGrade: grade,
		PayBandMin:         band.Min,
		PayBandMax:         band.Max,
	}, nil
}

// NormalizeScores returns the dimension set sorted by index. Records always
// persist and serve dimensions in index order so repeated submissions of the
// same set are byte-identical.
func NormalizeScores(scores []DimensionScore) []DimensionScore {
	out := make([]DimensionScore, len(scores))
	copy(out, scores)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func validateScores(scores []DimensionScore) []ScoreIssue {
	var issues []ScoreIssue

	if len(scores) != DimensionCount {
		issues = append(issues, ScoreIssue{
			Index:  0,
			Reason: fmt.Sprintf("exactly %d dimension scores required, got %d", DimensionCount, len(scores)),
		})
	}

	seen := map[int]int{}
	for _, ds := range scores {
		if ds.Index < 1 || ds.Index > DimensionCount {
			issues = append(issues, ScoreIssue{
				Index:  ds.Index,
				Reason: fmt.Sprintf("dimension index must be between 1 and %d", DimensionCount),
			})
			continue
		}
		seen[ds.Index]++
		if ds.Score < MinDimensionScore || ds.Score > MaxDimensionScore {
			issues = append(issues, ScoreIssue{
				Index:  ds.Index,
				Reason: fmt.Sprintf("score %d out of range [%d,%d]", ds.Score, MinDimensionScore, MaxDimensionScore),
			})
		}
	}

	for idx := 1; idx <= DimensionCount; idx++ {
		switch {
		case seen[idx] == 0 && len(scores) == DimensionCount:
			issues = append(issues, ScoreIssue{Index: idx, Reason: "dimension missing"})
		case seen[idx] > 1:
			issues = append(issues, ScoreIssue{Index: idx, Reason: "dimension submitted more than once"})
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Index != issues[j].Index {
			return issues[i].Index < issues[j].Index
		}
		return issues[i].Reason < issues[j].Reason
	})
	return issues
}
