package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PayBand is a percentage-of-revenue compensation range for one
// (category, grade) pair.
type PayBand struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// PayBandTable is business policy injected at startup, never derived by the
// engine. All 21 (category, grade) pairs must be present.
type PayBandTable map[ProgramCategory]map[CoachGrade]PayBand

// Lookup returns the band for a (category, grade) pair. Given a table that
// passed Validate this cannot miss for any closed-set pair.
func (t PayBandTable) Lookup(category ProgramCategory, grade CoachGrade) (PayBand, bool) {
	grades, ok := t[category]
	if !ok {
		return PayBand{}, false
	}
	band, ok := grades[grade]
	return band, ok
}

// Validate checks every (category, grade) pair exists with a sane range.
// Any gap is an IncompleteConfigurationError, surfaced before the engine
// accepts traffic.
func (t PayBandTable) Validate() error {
	var missing []string
	for _, cat := range Categories() {
		for _, grade := range Grades() {
			band, ok := t.Lookup(cat, grade)
			if !ok {
				missing = append(missing, fmt.Sprintf("%s/%s", cat, grade))
				continue
			}
			if band.Min < 0 || band.Max > 100 || band.Min > band.Max {
				missing = append(missing, fmt.Sprintf("%s/%s (invalid range %.2f-%.2f)", cat, grade, band.Min, band.Max))
			}
		}
	}
	if len(missing) > 0 {
		return &IncompleteConfigurationError{Missing: missing}
	}
	return nil
}

type payBandFile struct {
	PayBands map[string]map[string]PayBand `yaml:"pay_bands"`
}

// LoadPayBandTable reads the pay-band policy YAML and validates it. Categories
// or grades outside the closed sets are rejected so a typo in the file fails
// the boot instead of silently shadowing a real entry.
func LoadPayBandTable(path string) (PayBandTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pay-band config: %w", err)
	}

	var file payBandFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse pay-band config: %w", err)
	}

	table := PayBandTable{}
	for rawCat, grades := range file.PayBands {
		cat, err := ParseCategory(rawCat)
		if err != nil {
			return nil, fmt.Errorf("pay-band config: %w", err)
		}
		for rawGrade, band := range grades {
			grade, err := ParseCoachGrade(rawGrade)
			if err != nil {
				return nil, fmt.Errorf("pay-band config for %s: %w", cat, err)
			}
			if table[cat] == nil {
				table[cat] = map[CoachGrade]PayBand{}
			}
			table[cat][grade] = band
		}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
