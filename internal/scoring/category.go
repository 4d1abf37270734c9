package scoring

import (
	"fmt"
	"strings"
)

// ProgramCategory is the closed set of program classifications. Each category
// carries its own seven complexity dimensions.
type ProgramCategory string

const (
	CategoryLearnToSwim            ProgramCategory = "LEARN_TO_SWIM"
	CategorySpecialPopulations     ProgramCategory = "SPECIAL_POPULATIONS"
	CategoryInstitutional          ProgramCategory = "INSTITUTIONAL"
	CategoryCompetitiveElite       ProgramCategory = "COMPETITIVE_ELITE"
	CategoryCertifications         ProgramCategory = "CERTIFICATIONS"
	CategorySpecializedDisciplines ProgramCategory = "SPECIALIZED_DISCIPLINES"
	CategoryAdjacentServices       ProgramCategory = "ADJACENT_SERVICES"
)

// DimensionCount is fixed: every category is scored on exactly seven axes.
const DimensionCount = 7

// Categories returns the closed category set in canonical order.
func Categories() []ProgramCategory {
	return []ProgramCategory{
		CategoryLearnToSwim,
		CategorySpecialPopulations,
		CategoryInstitutional,
		CategoryCompetitiveElite,
		CategoryCertifications,
		CategorySpecializedDisciplines,
		CategoryAdjacentServices,
	}
}

func ParseCategory(raw string) (ProgramCategory, error) {
	c := ProgramCategory(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := dimensionCatalog[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// dimensionCatalog maps each category to its seven ordered dimension labels.
// The labels are business vocabulary shown to admins on the scoring form.
var dimensionCatalog = map[ProgramCategory][DimensionCount]string{
	CategoryLearnToSwim: {
		"Swimmer age spread",
		"Water comfort baseline",
		"Group size",
		"Parent involvement",
		"Skill progression pace",
		"Safety supervision load",
		"Communication needs",
	},
	CategorySpecialPopulations: {
		"Medical considerations",
		"Adaptive equipment needs",
		"Behavioral support load",
		"Caregiver coordination",
		"Individualization depth",
		"Safety supervision load",
		"Specialist knowledge required",
	},
	CategoryInstitutional: {
		"Institution coordination",
		"Roster volatility",
		"Group size",
		"Schedule rigidity",
		"Reporting requirements",
		"Mixed ability range",
		"Site logistics",
	},
	CategoryCompetitiveElite: {
		"Technical refinement depth",
		"Training volume",
		"Performance analytics",
		"Competition scheduling",
		"Athlete psychology load",
		"Injury management",
		"Family and agent management",
	},
	CategoryCertifications: {
		"Curriculum rigor",
		"Assessment administration",
		"Regulatory compliance",
		"Documentation load",
		"Candidate preparedness spread",
		"Practical exam logistics",
		"Remediation planning",
	},
	CategorySpecializedDisciplines: {
		"Discipline technicality",
		"Equipment complexity",
		"Venue requirements",
		"Skill prerequisite depth",
		"Risk exposure",
		"Progression structure",
		"Cross-discipline transfer",
	},
	CategoryAdjacentServices: {
		"Service scope breadth",
		"Client expectation management",
		"Scheduling flexibility",
		"Facility dependencies",
		"Staffing coordination",
		"Liability exposure",
		"Outcome measurability",
	},
}

// DimensionLabels returns the seven ordered dimension labels for a category.
func DimensionLabels(category ProgramCategory) ([DimensionCount]string, error) {
	labels, ok := dimensionCatalog[category]
	if !ok {
		return [DimensionCount]string{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return labels, nil
}

// ValidateCatalog asserts the catalog covers every category with seven
// non-empty labels. Called at boot so a gap is a startup failure, not a
// request-time surprise.
func ValidateCatalog() error {
	for _, cat := range Categories() {
		labels, ok := dimensionCatalog[cat]
		if !ok {
			return fmt.Errorf("dimension catalog missing category %s", cat)
		}
		for i, label := range labels {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("dimension catalog has empty label for %s dimension %d", cat, i+1)
			}
		}
	}
	return nil
}
