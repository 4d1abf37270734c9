package scoring

import (
	"errors"
	"testing"
)

func testBands(t *testing.T) PayBandTable {
	t.Helper()
	table := PayBandTable{}
	for _, cat := range Categories() {
		table[cat] = map[CoachGrade]PayBand{
			Grade1: {Min: 30, Max: 40},
			Grade2: {Min: 38, Max: 48},
			Grade3: {Min: 46, Max: 56},
		}
	}
	return table
}

func uniformScores(score int) []DimensionScore {
	out := make([]DimensionScore, 0, DimensionCount)
	for idx := 1; idx <= DimensionCount; idx++ {
		out = append(out, DimensionScore{Index: idx, Score: score})
	}
	return out
}

func TestComputeDerivesTotalGradeAndBand(t *testing.T) {
	calc, err := NewCalculator(testBands(t))
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	cases := []struct {
		name      string
		scores    []DimensionScore
		wantTotal int
		wantGrade CoachGrade
	}{
		{"all minimum", uniformScores(1), 7, Grade1},
		{"all threes", uniformScores(3), 21, Grade2},
		{"all maximum", uniformScores(5), 35, Grade3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			derived, err := calc.Compute(CategoryLearnToSwim, tc.scores)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if derived.TotalScore != tc.wantTotal {
				t.Fatalf("total = %d, want %d", derived.TotalScore, tc.wantTotal)
			}
			if derived.RequiredCoachGrade != tc.wantGrade {
				t.Fatalf("grade = %s, want %s", derived.RequiredCoachGrade, tc.wantGrade)
			}
			band, _ := testBands(t).Lookup(CategoryLearnToSwim, tc.wantGrade)
			if derived.PayBandMin != band.Min || derived.PayBandMax != band.Max {
				t.Fatalf("band = %.1f-%.1f, want %.1f-%.1f", derived.PayBandMin, derived.PayBandMax, band.Min, band.Max)
			}
		})
	}
}

func TestComputeTotalIsSumRegardlessOfOrder(t *testing.T) {
	calc, err := NewCalculator(testBands(t))
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	scores := []DimensionScore{
		{Index: 7, Score: 2},
		{Index: 1, Score: 5},
		{Index: 4, Score: 3},
		{Index: 2, Score: 1},
		{Index: 6, Score: 4},
		{Index: 3, Score: 2},
		{Index: 5, Score: 5},
	}
	derived, err := calc.Compute(CategoryCompetitiveElite, scores)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if derived.TotalScore != 22 {
		t.Fatalf("total = %d, want 22", derived.TotalScore)
	}
}

func TestGradeForTotalPartition(t *testing.T) {
	cases := []struct {
		total int
		want  CoachGrade
	}{
		{7, Grade1},
		{14, Grade1},
		{15, Grade2},
		{24, Grade2},
		{25, Grade3},
		{35, Grade3},
	}
	for _, tc := range cases {
		if got := GradeForTotal(tc.total); got != tc.want {
			t.Fatalf("GradeForTotal(%d) = %s, want %s", tc.total, got, tc.want)
		}
	}
}

func TestComputeRejectsUnknownCategory(t *testing.T) {
	calc, err := NewCalculator(testBands(t))
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	if _, err := calc.Compute(ProgramCategory("AQUA_AEROBICS"), uniformScores(3)); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestComputeCollectsEveryScoreIssue(t *testing.T) {
	calc, err := NewCalculator(testBands(t))
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	scores := []DimensionScore{
		{Index: 1, Score: 0},
		{Index: 2, Score: 6},
		{Index: 2, Score: 3},
		{Index: 9, Score: 3},
		{Index: 5, Score: 3},
		{Index: 6, Score: 3},
		{Index: 7, Score: 3},
	}
	_, err = calc.Compute(CategoryLearnToSwim, scores)

	var invalid *InvalidScoreInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidScoreInputError, got %v", err)
	}
	// Out-of-range at 1 and 2, duplicate 2, invalid index 9, missing 3 and 4.
	if len(invalid.Issues) < 4 {
		t.Fatalf("expected multiple issues, got %d: %v", len(invalid.Issues), invalid.Issues)
	}
}

func TestComputeRejectsWrongLength(t *testing.T) {
	calc, err := NewCalculator(testBands(t))
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	_, err = calc.Compute(CategoryLearnToSwim, uniformScores(3)[:5])
	var invalid *InvalidScoreInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidScoreInputError, got %v", err)
	}
	if len(invalid.Issues) == 0 || invalid.Issues[0].Index != 0 {
		t.Fatalf("expected whole-array issue at index 0, got %v", invalid.Issues)
	}
}

func TestNewCalculatorRejectsIncompleteTable(t *testing.T) {
	table := testBands(t)
	delete(table[CategoryInstitutional], Grade2)

	_, err := NewCalculator(table)
	var incomplete *IncompleteConfigurationError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteConfigurationError, got %v", err)
	}
}

func TestPreviewMatchesPersistedDerivation(t *testing.T) {
	calc, err := NewCalculator(testBands(t))
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	scores := []DimensionScore{
		{Index: 1, Score: 4}, {Index: 2, Score: 2}, {Index: 3, Score: 5},
		{Index: 4, Score: 3}, {Index: 5, Score: 1}, {Index: 6, Score: 4},
		{Index: 7, Score: 2},
	}
	first, err := calc.Compute(CategoryCertifications, scores)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := calc.Compute(CategoryCertifications, scores)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if first != second {
		t.Fatalf("identical inputs diverged: %+v vs %+v", first, second)
	}
}
