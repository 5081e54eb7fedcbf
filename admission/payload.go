package admission

import "fmt"

// ConstraintSpec is one entry of the initial payload's constraint list
// (spec §6): an attribute and the minimum admitted count required for it.
type ConstraintSpec struct {
	Attribute string
	MinCount  int
}

// InitialPayload is the game-setup message Metrics is built from (spec §6):
// constraints plus the attribute frequency/correlation statistics for the
// stream ahead.
type InitialPayload struct {
	GameID      string
	Constraints []ConstraintSpec

	RelativeFrequencies map[string]float64
	Correlations        map[string]map[string]float64
}

// validate checks the payload is complete enough to build Metrics: every
// constrained attribute must have a frequency and, for every other
// constrained attribute, a correlation entry. Attributes that appear only
// inside correlation rows are not checked. This is the "missing statistic" condition from spec §7
// — it fails initialization rather than silently defaulting.
func (p InitialPayload) validate() error {
	for _, c := range p.Constraints {
		if _, ok := p.RelativeFrequencies[c.Attribute]; !ok {
			return fmt.Errorf("admission: missing frequency statistic for constrained attribute %q", c.Attribute)
		}
		row, ok := p.Correlations[c.Attribute]
		if !ok {
			return fmt.Errorf("admission: missing correlation row for constrained attribute %q", c.Attribute)
		}
		for _, other := range p.Constraints {
			if other.Attribute == c.Attribute {
				continue
			}
			if _, ok := row[other.Attribute]; !ok {
				return fmt.Errorf("admission: missing correlation(%q,%q)", c.Attribute, other.Attribute)
			}
		}
	}
	return nil
}
