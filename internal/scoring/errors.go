package scoring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCategory rejects any category outside the closed set.
	ErrUnknownCategory = errors.New("unknown program category")
	// ErrConflict rejects a create for a cohort that already has a score record.
	ErrConflict = errors.New("cohort already has a complexity score record")
	// ErrNotFound rejects update/get/delete for a cohort with no score record.
	ErrNotFound = errors.New("complexity score record not found")
	// ErrNotScored rejects eligibility/ranking requests before any score exists.
	ErrNotScored = errors.New("cohort has not been scored")
	// ErrAdviceUnavailable marks a recoverable advisory-service failure. The
	// caller falls back to manual entry; no stored state is affected.
	ErrAdviceUnavailable = errors.New("advisory service unavailable")
)

// AdviceUnavailable wraps an adapter failure so callers can match it with
// errors.Is(err, ErrAdviceUnavailable) while keeping the cause.
func AdviceUnavailable(cause error) error {
	if cause == nil {
		return ErrAdviceUnavailable
	}
	return fmt.Errorf("%w: %v", ErrAdviceUnavailable, cause)
}

// ScoreIssue names one offending dimension index and the reason it was
// rejected. Index 0 is used for whole-array problems (wrong length).
type ScoreIssue struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// InvalidScoreInputError reports every problem with a submitted dimension
// array, not just the first.
type InvalidScoreInputError struct {
	Issues []ScoreIssue
}

func (e *InvalidScoreInputError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "invalid score input"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Index > 0 {
			parts = append(parts, fmt.Sprintf("dimension %d: %s", issue.Index, issue.Reason))
		} else {
			parts = append(parts, issue.Reason)
		}
	}
	return "invalid score input: " + strings.Join(parts, "; ")
}

// IncompleteConfigurationError is a boot-time defect: the pay-band policy
// table is missing or malformed for the listed (category, grade) pairs. It is
// never surfaced at request time.
type IncompleteConfigurationError struct {
	Missing []string
}

func (e *IncompleteConfigurationError) Error() string {
	if e == nil || len(e.Missing) == 0 {
		return "incomplete pay-band configuration"
	}
	return "incomplete pay-band configuration: " + strings.Join(e.Missing, ", ")
}
