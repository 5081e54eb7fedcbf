package admission

import "math"

// ScoreCalculator computes the per-candidate admission score from the
// useful-attribute set, urgency, rarity, progress-lag, critical
// multipliers, correlation bonuses, and the multi-attribute bonus
// (spec §4.C). It reads Metrics but never mutates it.
type ScoreCalculator struct {
	preset presetConstants

	urgencyModifier  float64
	correlationBonus float64
	negCorrBonus     float64
	negCorrThreshold float64
	rarePersonBonus  float64
}

// NewScoreCalculator builds a calculator bound to one preset's constant
// table, captured immutably at construction (spec §9). The preset supplies
// the distributional constants (divisors, thresholds); cfg's named tunables
// (spec §6) supply the bonus magnitudes shared across all presets.
// cfg.MultiAttributeBonus of zero means "use the preset's own default".
func NewScoreCalculator(cfg Config) *ScoreCalculator {
	pc := constantsFor(cfg.Preset)
	if cfg.MultiAttributeBonus > 0 {
		pc.multiAttributeBonus = cfg.MultiAttributeBonus
	}
	return &ScoreCalculator{
		preset:           pc,
		urgencyModifier:  cfg.UrgencyModifier,
		correlationBonus: cfg.CorrelationBonus,
		negCorrBonus:     cfg.NegativeCorrelationBonus,
		negCorrThreshold: cfg.NegativeCorrelationThreshold,
		rarePersonBonus:  cfg.RarePersonBonus,
	}
}

// Regular computes the non-endgame score (spec §4.C steps 1-6).
// admittedCount and capacity feed the velocity term; critical supplies the
// per-attribute modifier table from the critical detector (4.E).
func (s *ScoreCalculator) Regular(
	attrs map[string]bool,
	m *Metrics,
	critical map[string]CriticalEntry,
	allQuotasMet bool,
	admittedCount, capacity int,
	isEndgame bool,
) float64 {
	if allQuotasMet {
		return 1.0
	}

	useful := m.Useful(attrs, isEndgame)
	if len(useful) == 0 {
		return 0.0
	}

	c := s.preset
	var score float64
	hasCritical := false
	maxCriticalModifier := 0.0

	for a := range useful {
		needed := float64(m.Needed(a))
		freq := m.Frequency(a)
		progress := m.Progress(a)

		urgency := minF(needed/c.urgencyDivisor, c.maxUrgency) * s.urgencyModifier

		rarityBonus := 1.0
		switch {
		case freq < 0.1:
			rarityBonus = c.rarityHigh
		case freq < 0.4:
			rarityBonus = c.rarityMedium
		}
		if freq < 0.05 {
			rarityBonus *= s.rarePersonBonus
		}

		progressUrgency := 1.0
		switch {
		case progress < 0.2:
			progressUrgency = c.progressLow
		case progress < 0.5:
			progressUrgency = c.progressMedium
		}
		if freq > 0.4 && progress < 0.6 {
			progressUrgency *= c.commonLagBoost
		}

		velocity := 1.0
		if capacity > 0 && float64(admittedCount)/float64(capacity) > 0.05 {
			velocity = progress / (float64(admittedCount) / float64(capacity))
		}
		velocityBonus := 1.0
		switch {
		case velocity < 0.8:
			velocityBonus = 2.0
		case velocity < 0.9:
			velocityBonus = 1.5
		}

		correlationBonus := 1.0
		if progress < 0.9 {
			for _, neg := range m.NegativelyCorrelated(a, s.negCorrThreshold) {
				if attrs[neg] {
					correlationBonus *= s.negCorrBonus
					break
				}
			}
			for _, pos := range m.PositivelyCorrelated(a, 0.3) {
				if attrs[pos] {
					correlationBonus *= s.correlationBonus
					break
				}
			}
		}

		if entry, ok := critical[a]; ok {
			hasCritical = true
			if entry.Modifier > maxCriticalModifier {
				maxCriticalModifier = entry.Modifier
			}
		}

		score += urgency * rarityBonus * progressUrgency * velocityBonus * correlationBonus
	}

	if hasCritical {
		score *= minF(maxCriticalModifier, c.criticalCap)
	}
	if len(useful) > 1 {
		score *= 1 + float64(len(useful)-1)*c.multiAttributeBonus
	}

	return minF(math.Log(score+1)/math.Log(c.normalizationBase), c.maxScore)
}

// Endgame computes the endgame score (spec §4.C "Endgame score"), only
// meaningful when isEndgame holds. spotsLeft is capacity-admittedCount.
func (s *ScoreCalculator) Endgame(attrs map[string]bool, m *Metrics, spotsLeft int) float64 {
	useful := m.Useful(attrs, true)
	if len(useful) == 0 {
		return 0
	}

	var total float64
	for a := range useful {
		if m.IsCompleted(a) {
			continue
		}
		urgency := minF(float64(m.Needed(a))/maxF(float64(spotsLeft), 1), 5)
		scarcity := 1 / maxF(m.Frequency(a), 0.01)
		total += urgency * scarcity
	}
	return minF(total, s.preset.maxEndgameScore)
}
