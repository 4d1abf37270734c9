package scoring

// ScoreDraft is an unpersisted working set of dimension scores. Drafts exist
// only in the caller's hands: the engine distinguishes unscored (no record),
// draft (manual or AI-suggested, unpersisted) and committed (stored record),
// and nothing moves from draft to committed without an explicit save.
type ScoreDraft struct {
	Category ProgramCategory  `json:"category"`
	Scores   []DimensionScore `json:"scores"`
}

// SuggestedDimension is one AI-proposed dimension value. Suggestions cross a
// trust boundary and are clamped before being offered as a draft.
type SuggestedDimension struct {
	Index      int     `json:"index"`
	Score      int     `json:"score"`
	Rationale  string  `json:"rationale"`
	Confidence float64 `json:"confidence"`
}

// NewDraft returns an empty draft for a category: all seven dimensions at the
// minimum score with no rationale.
func NewDraft(category ProgramCategory) ScoreDraft {
	scores := make([]DimensionScore, 0, DimensionCount)
	for idx := 1; idx <= DimensionCount; idx++ {
		scores = append(scores, DimensionScore{Index: idx, Score: MinDimensionScore})
	}
	return ScoreDraft{Category: category, Scores: scores}
}

// ApplySuggestion merges AI-suggested values into a draft, producing a new
// draft. The input draft and any committed record are left untouched; a
// suggestion can only ever become committed through an explicit save.
func ApplySuggestion(draft ScoreDraft, suggestions []SuggestedDimension) ScoreDraft {
	merged := ScoreDraft{
		Category: draft.Category,
		Scores:   NormalizeScores(draft.Scores),
	}

	byIndex := map[int]SuggestedDimension{}
	for _, s := range suggestions {
		if s.Index >= 1 && s.Index <= DimensionCount {
			byIndex[s.Index] = s
		}
	}

	for i, ds := range merged.Scores {
		s, ok := byIndex[ds.Index]
		if !ok {
			continue
		}
		merged.Scores[i].Score = ClampScore(s.Score)
		merged.Scores[i].Rationale = s.Rationale
	}
	return merged
}

// ClampScore forces an untrusted score into [1,5].
func ClampScore(score int) int {
	if score < MinDimensionScore {
		return MinDimensionScore
	}
	if score > MaxDimensionScore {
		return MaxDimensionScore
	}
	return score
}

// ClampConfidence forces an untrusted confidence into [0,1].
func ClampConfidence(conf float64) float64 {
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}
