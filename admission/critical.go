package admission

// warmUpThreshold is the admitted-count floor below which the critical
// detector stays silent (spec §4.E). Per spec §9's open question, this
// single warm-up gates capacity-, scarcity-, and risk-criticality alike —
// there is no separate gate for scarcity detection in small scenarios.
const warmUpThreshold = 50

// CriticalDetector identifies attributes whose projected supply or
// capacity share makes quota non-completion plausible (spec §4.E),
// classifying each as required or merely boosted. Table membership is
// gated by CriticalCapacityRatio/CriticalInLineRatio/risk; the separate
// CriticalRequiredThreshold sets each entry's Required flag. The decider's
// all-critical rule (Decider.hasEveryCriticalAttribute) checks every entry
// in the table and does not read Required.
type CriticalDetector struct {
	cfg Config
}

// NewCriticalDetector builds a detector bound to the given configuration.
func NewCriticalDetector(cfg Config) *CriticalDetector {
	return &CriticalDetector{cfg: cfg}
}

// Refresh rebuilds the critical table from current Metrics state. spotsLeft
// is capacity-admittedCount; peopleInLineLeft is the candidates still
// expected in the stream; admittedCount gates warm-up; risk supplies the
// risk-critical signal.
func (d *CriticalDetector) Refresh(m *Metrics, admittedCount, spotsLeft, peopleInLineLeft int, risk RiskAssessment) map[string]CriticalEntry {
	if admittedCount < warmUpThreshold {
		return map[string]CriticalEntry{}
	}

	out := make(map[string]CriticalEntry)
	for _, a := range m.IncompleteConstraints() {
		needed := float64(m.Needed(a))

		urgencyRatio := needed / maxF(float64(maxI(spotsLeft, 1)), 1)
		expectedRemaining := float64(peopleInLineLeft) * m.Frequency(a)
		scarcityRatio := needed / maxF(expectedRemaining, 1)

		capacityCritical := urgencyRatio > d.cfg.CriticalCapacityRatio
		scarcityCritical := scarcityRatio > d.cfg.CriticalInLineRatio
		riskCritical := risk.CriticalAttributes[a]

		if !capacityCritical && !scarcityCritical && !riskCritical {
			continue
		}

		modifier := Clamp(urgencyRatio*10+scarcityRatio*5, 2, 10)
		out[a] = CriticalEntry{
			Needed:   m.Needed(a),
			Required: urgencyRatio > d.cfg.CriticalRequiredThreshold,
			Modifier: modifier,
		}
	}
	return out
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}
