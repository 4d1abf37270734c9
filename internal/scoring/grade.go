package scoring

import (
	"fmt"
	"strings"
)

// CoachGrade is the ordinal qualification tier a coach must meet or exceed to
// run a cohort of a given scored complexity.
type CoachGrade string

const (
	Grade1 CoachGrade = "GRADE_1"
	Grade2 CoachGrade = "GRADE_2"
	Grade3 CoachGrade = "GRADE_3"
)

func Grades() []CoachGrade {
	return []CoachGrade{Grade1, Grade2, Grade3}
}

// Rank returns the ordinal position used for eligibility comparisons.
// Unknown grades rank below GRADE_1 so they never satisfy a requirement.
func (g CoachGrade) Rank() int {
	switch g {
	case Grade1:
		return 1
	case Grade2:
		return 2
	case Grade3:
		return 3
	default:
		return 0
	}
}

// Meets reports whether a coach holding grade g may run a cohort requiring
// the given grade.
func (g CoachGrade) Meets(required CoachGrade) bool {
	return g.Rank() >= required.Rank() && g.Rank() > 0
}

func ParseCoachGrade(raw string) (CoachGrade, error) {
	g := CoachGrade(strings.ToUpper(strings.TrimSpace(raw)))
	if g.Rank() == 0 {
		return "", fmt.Errorf("unknown coach grade %q", raw)
	}
	return g, nil
}

// GradeForTotal maps a total score onto the required grade. The three ranges
// are an exhaustive, non-overlapping partition of [7,35]:
// [7,14] -> GRADE_1, [15,24] -> GRADE_2, [25,35] -> GRADE_3.
func GradeForTotal(total int) CoachGrade {
	switch {
	case total <= 14:
		return Grade1
	case total <= 24:
		return Grade2
	default:
		return Grade3
	}
}
