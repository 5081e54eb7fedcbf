package admission

// Decider composes the Metrics engine, score calculator, deflation
// controller, critical detector, and threshold controller into the single
// mutating entry point of the decision core (spec §4.G). Admit must be
// called serially; concurrent invocation is undefined (spec §5).
type Decider struct {
	cfg Config

	metrics   *Metrics
	score     *ScoreCalculator
	deflation *DeflationController
	critical  *CriticalDetector
	threshold *ThresholdController

	criticalTable map[string]CriticalEntry
	risk          RiskAssessment

	lastThreshold float64
	lastFactor    float64
}

// NewDecider builds a Decider from the initial payload and configuration.
// Returns an error if the payload fails Metrics validation (spec §7).
func NewDecider(payload InitialPayload, cfg Config) (*Decider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := NewMetrics(payload, cfg.MaxCapacity)
	if err != nil {
		return nil, err
	}
	return &Decider{
		cfg:           cfg,
		metrics:       m,
		score:         NewScoreCalculator(cfg),
		deflation:     NewDeflationController(cfg.DeflationLaw, cfg.TargetRate, 2.0, true),
		critical:      NewCriticalDetector(cfg),
		threshold:     NewThresholdController(cfg),
		criticalTable: map[string]CriticalEntry{},
		risk:          RiskAssessment{CriticalAttributes: map[string]bool{}, FeasibilityScore: 1},
		lastThreshold: cfg.BaseThreshold,
		lastFactor:    1.0,
	}, nil
}

// Metrics exposes the underlying quota-progress engine for inspection
// (telemetry, persistence) — read-only use from outside the core.
func (d *Decider) Metrics() *Metrics { return d.metrics }

// Risk returns the most recently computed risk assessment.
func (d *Decider) Risk() RiskAssessment { return d.risk }

// LastThreshold returns the admission threshold computed by the most
// recent Admit call (spec §4.F), for telemetry. Before the first call that
// reaches step 6, it holds cfg.BaseThreshold.
func (d *Decider) LastThreshold() float64 { return d.lastThreshold }

// LastDeflationFactor returns the deflation factor computed by the most
// recent Admit call (spec §4.D), for telemetry. Before the first call that
// reaches step 5, it holds 1.0 (no deflation).
func (d *Decider) LastDeflationFactor() float64 { return d.lastFactor }

// isEndgame reports 0 < spotsLeft <= 50 (spec §4.G).
func isEndgame(spotsLeft int) bool {
	return spotsLeft > 0 && spotsLeft <= 50
}

// Admit is the decider's total entry point: every call returns a boolean
// (spec §4.G). status carries the running totals the decider treats as
// input; the caller is responsible for only invoking Admit while
// status.Status == StatusRunning (spec §7 "invalid status" boundary).
func (d *Decider) Admit(status GameStatus) bool {
	// Rule 1: absent next candidate (P2).
	if status.NextCandidate == nil {
		return false
	}
	attrs := status.NextCandidate.Attributes

	// Rule 2: all quotas already met short-circuits to admit-all (P3),
	// with no further computation and no Metrics update.
	allMet := d.metrics.AllConstraintsMet()
	if allMet {
		return true
	}

	spotsLeft := d.cfg.MaxCapacity - status.AdmittedCount
	peopleLeft := d.cfg.TotalPeople - (status.AdmittedCount + status.RejectedCount)
	endgame := isEndgame(spotsLeft)

	// Step 3: refresh critical table.
	d.criticalTable = d.critical.Refresh(d.metrics, status.AdmittedCount, spotsLeft, peopleLeft, d.risk)

	// Step 4-5: raw score, deflated.
	regular := d.score.Regular(attrs, d.metrics, d.criticalTable, allMet, status.AdmittedCount, d.cfg.MaxCapacity, endgame)
	endgameScore := 0.0
	if regular < 0.3 {
		endgameScore = d.score.Endgame(attrs, d.metrics, spotsLeft)
	}
	raw := maxF(regular, endgameScore)

	currentRate := 0.0
	if total := status.AdmittedCount + status.RejectedCount; total > 0 {
		currentRate = float64(status.AdmittedCount) / float64(total)
	}
	factor := d.deflation.Factor(status.AdmittedCount, status.RejectedCount, status.AdmittedCount, d.cfg.MaxCapacity)
	scaledScore := raw * factor
	d.lastFactor = factor

	// Step 6: threshold.
	th := d.threshold.Threshold(status.AdmittedCount+status.RejectedCount, d.metrics.TotalProgress(), currentRate)
	d.lastThreshold = th

	// Step 7: decision rules, any of which admit.
	admit := d.metrics.HasEveryAttribute(attrs) ||
		d.hasEveryCriticalAttribute(attrs) ||
		(endgame && endgameScore > 0.5) ||
		scaledScore > th ||
		(spotsLeft < 20 && d.hasSomeCriticalAttribute(attrs)) ||
		d.emergencyAdmit(attrs, peopleLeft, spotsLeft, endgame)

	if admit {
		d.onAdmit(attrs, status)
	}
	return admit
}

// hasEveryCriticalAttribute reports whether the candidate carries every
// attribute currently in the critical table, which must be non-empty.
func (d *Decider) hasEveryCriticalAttribute(attrs map[string]bool) bool {
	if len(d.criticalTable) == 0 {
		return false
	}
	for a := range d.criticalTable {
		if !attrs[a] {
			return false
		}
	}
	return true
}

// hasSomeCriticalAttribute reports whether the candidate carries at least
// one attribute currently in the critical table.
func (d *Decider) hasSomeCriticalAttribute(attrs map[string]bool) bool {
	for a := range d.criticalTable {
		if attrs[a] {
			return true
		}
	}
	return false
}

// emergencyAdmit implements the endgame safety valve: when the stream is
// nearly exhausted relative to remaining need and capacity is almost full,
// admit any candidate still carrying a useful attribute (spec §4.G).
func (d *Decider) emergencyAdmit(attrs map[string]bool, peopleLeft, spotsLeft int, endgame bool) bool {
	totalNeeded := 0
	for _, a := range d.metrics.IncompleteConstraints() {
		totalNeeded += d.metrics.Needed(a)
	}
	ratio := float64(peopleLeft) / maxF(float64(totalNeeded), 1)
	if ratio >= 5 || spotsLeft >= 100 {
		return false
	}
	return len(d.metrics.Useful(attrs, endgame)) > 0
}

// onAdmit updates Metrics counts and refreshes the risk assessment
// (spec §4.G step 8 — the decider is Metrics' sole writer).
func (d *Decider) onAdmit(attrs map[string]bool, status GameStatus) {
	d.metrics.RecordAdmit(attrs)
	peopleLeft := d.cfg.TotalPeople - (status.AdmittedCount + status.RejectedCount + 1)
	if peopleLeft < 0 {
		peopleLeft = 0
	}
	d.risk = d.metrics.Risk(peopleLeft)
}
