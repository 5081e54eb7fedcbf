package admission

import "sort"

// Metrics is the quota-progress engine (spec §4.B). It exclusively owns
// constraint counters and cached derived statistics; the Score calculator
// reads it but never mutates it, and the Decider is its sole writer
// (spec §3 Ownership).
type Metrics struct {
	capacity    int
	order       []string // stable attribute iteration order, payload order
	constraints map[string]*Constraint
	stats       map[string]AttributeStats

	correlationPairs []pairInsight // cached on first call
}

// pairInsight is one unordered attribute pair classified by correlation
// strength (spec §4.B "Correlation insights").
type pairInsight struct {
	A, B        string
	Correlation float64
	Strong      bool // corr > 0.4
	Conflict    bool // corr < -0.4
	BothNeeded  bool
}

// NewMetrics builds a Metrics engine from the initial payload and venue
// capacity. Returns an error if the payload is missing a frequency or
// correlation entry for a constrained attribute (spec §7 "missing
// statistic").
func NewMetrics(payload InitialPayload, capacity int) (*Metrics, error) {
	if err := payload.validate(); err != nil {
		return nil, err
	}

	m := &Metrics{
		capacity:    capacity,
		constraints: make(map[string]*Constraint, len(payload.Constraints)),
		stats:       make(map[string]AttributeStats, len(payload.Constraints)),
	}

	for _, c := range payload.Constraints {
		m.order = append(m.order, c.Attribute)
		m.constraints[c.Attribute] = &Constraint{Attribute: c.Attribute, MinCount: c.MinCount}

		freq := payload.RelativeFrequencies[c.Attribute]
		rarity := 1.0 / maxF(freq, 0.01)
		quotaRate := 0.0
		if capacity > 0 {
			quotaRate = float64(c.MinCount) / float64(capacity)
		}
		m.stats[c.Attribute] = AttributeStats{
			Frequency:    freq,
			Correlation:  payload.Correlations[c.Attribute],
			Rarity:       rarity,
			QuotaRate:    quotaRate,
			Overdemanded: quotaRate > 1.5*freq,
		}
	}
	return m, nil
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Attributes returns the constrained attribute ids in payload order.
func (m *Metrics) Attributes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Count returns the current admitted count for attribute a.
func (m *Metrics) Count(a string) int {
	c, ok := m.constraints[a]
	if !ok {
		return 0
	}
	return c.admittedCount
}

// Needed returns max(0, min_count[a] - count(a)).
func (m *Metrics) Needed(a string) int {
	c, ok := m.constraints[a]
	if !ok {
		return 0
	}
	n := c.MinCount - c.admittedCount
	if n < 0 {
		return 0
	}
	return n
}

// Progress returns min(count(a)/min_count[a], 1); unconstrained or
// zero-quota attributes are treated as already complete.
func (m *Metrics) Progress(a string) float64 {
	c, ok := m.constraints[a]
	if !ok || c.MinCount <= 0 {
		return 1
	}
	p := float64(c.admittedCount) / float64(c.MinCount)
	if p > 1 {
		return 1
	}
	return p
}

// IsCompleted reports whether attribute a has met its quota.
func (m *Metrics) IsCompleted(a string) bool {
	return m.Needed(a) == 0
}

// Frequency returns the marginal frequency of attribute a, 0 if unknown.
func (m *Metrics) Frequency(a string) float64 {
	return m.stats[a].Frequency
}

// Correlation returns correlation(a,b), 1 for a==b, 0 if unknown.
func (m *Metrics) Correlation(a, b string) float64 {
	if a == b {
		return 1
	}
	if v, ok := m.stats[a].Correlation[b]; ok {
		return v
	}
	return 0
}

// PositivelyCorrelated returns constrained attributes b != a with
// correlation(a,b) > theta.
func (m *Metrics) PositivelyCorrelated(a string, theta float64) []string {
	var out []string
	for _, b := range m.order {
		if b == a {
			continue
		}
		if m.Correlation(a, b) > theta {
			out = append(out, b)
		}
	}
	return out
}

// NegativelyCorrelated returns constrained attributes b != a with
// correlation(a,b) < theta.
func (m *Metrics) NegativelyCorrelated(a string, theta float64) []string {
	var out []string
	for _, b := range m.order {
		if b == a {
			continue
		}
		if m.Correlation(a, b) < theta {
			out = append(out, b)
		}
	}
	return out
}

// TotalProgress is the mean of per-constraint progress, capped at 1.
func (m *Metrics) TotalProgress() float64 {
	if len(m.order) == 0 {
		return 1
	}
	var values []float64
	for _, a := range m.order {
		values = append(values, m.Progress(a))
	}
	p := Mean(values)
	if p > 1 {
		return 1
	}
	return p
}

// AllConstraintsMet reports whether every constraint has reached its
// minimum count (spec §3 "short-circuits to admit-all").
func (m *Metrics) AllConstraintsMet() bool {
	for _, a := range m.order {
		if !m.IsCompleted(a) {
			return false
		}
	}
	return true
}

// IncompleteConstraints returns attribute ids whose quota is not yet met,
// in payload order.
func (m *Metrics) IncompleteConstraints() []string {
	var out []string
	for _, a := range m.order {
		if !m.IsCompleted(a) {
			out = append(out, a)
		}
	}
	return out
}

// MostNeeded returns incomplete attributes sorted by descending Needed.
func (m *Metrics) MostNeeded() []string {
	out := m.IncompleteConstraints()
	sort.SliceStable(out, func(i, j int) bool { return m.Needed(out[i]) > m.Needed(out[j]) })
	return out
}

// LeastProgress returns incomplete attributes sorted by ascending Progress.
func (m *Metrics) LeastProgress() []string {
	out := m.IncompleteConstraints()
	sort.SliceStable(out, func(i, j int) bool { return m.Progress(out[i]) < m.Progress(out[j]) })
	return out
}

// Rarest returns incomplete attributes sorted by ascending Frequency.
func (m *Metrics) Rarest() []string {
	out := m.IncompleteConstraints()
	sort.SliceStable(out, func(i, j int) bool { return m.Frequency(out[i]) < m.Frequency(out[j]) })
	return out
}

// Overdemanded returns incomplete attributes flagged overdemanded at init.
func (m *Metrics) Overdemanded() []string {
	var out []string
	for _, a := range m.IncompleteConstraints() {
		if m.stats[a].Overdemanded {
			out = append(out, a)
		}
	}
	return out
}

// overfillThreshold returns the progress ceiling past which a common
// attribute is no longer "useful" (spec §4.B): rarer attributes are
// pursued closer to completion, common ones closed off earlier.
func overfillThreshold(freq float64) float64 {
	switch {
	case freq < 0.05:
		return 0.95
	case freq < 0.10:
		return 0.92
	default:
		return Clamp(0.82+0.3*freq, 0.85, 0.98)
	}
}

// Useful returns the subset of a candidate's attributes that still
// contribute to an unmet quota (spec §4.B). Monotone under attribute
// superset: it only ever filters individual possessed attributes, never
// looks at combinations, so adding a possessed attribute can only add
// entries, never remove one (P6).
func (m *Metrics) Useful(attrs map[string]bool, isEndgame bool) map[string]bool {
	out := make(map[string]bool)
	for a := range attrs {
		if !attrs[a] {
			continue
		}
		if _, constrained := m.constraints[a]; !constrained {
			continue
		}
		if isEndgame {
			if !m.IsCompleted(a) {
				out[a] = true
			}
			continue
		}
		if m.Progress(a) < overfillThreshold(m.Frequency(a)) {
			out[a] = true
		}
	}
	return out
}

// Risk computes the aggregate feasibility snapshot given the number of
// candidates still left in the stream (spec §4.B).
func (m *Metrics) Risk(peopleRemaining int) RiskAssessment {
	incomplete := m.Rarest() // ascending frequency, as specified

	if len(incomplete) == 0 {
		return RiskAssessment{
			CriticalAttributes: map[string]bool{},
			RiskScore:          0,
			TimeRemaining:       1 - m.TotalProgress(),
			FeasibilityScore:    1,
		}
	}

	availablePeople := float64(peopleRemaining)
	ratios := make(map[string]float64, len(incomplete))
	var values []float64

	for _, a := range incomplete {
		needed := float64(m.Needed(a))
		expected := availablePeople * m.Frequency(a)
		charge := 0.8 * expected
		if needed < charge {
			charge = needed
		}
		if charge < 0 {
			charge = 0
		}
		availablePeople -= charge
		if availablePeople < 0 {
			availablePeople = 0
		}

		r := Clamp(3*needed/maxF(expected, 1), 0, 10)
		ratios[a] = r
		values = append(values, r)
	}

	riskScore := Mean(values)
	cutoff := Percentile(values, 75)

	critical := make(map[string]bool)
	for a, r := range ratios {
		if r > cutoff {
			critical[a] = true
		}
	}

	return RiskAssessment{
		CriticalAttributes: critical,
		RiskScore:          riskScore,
		TimeRemaining:       1 - m.TotalProgress(),
		FeasibilityScore:    maxF(0, 1-riskScore/10),
	}
}

// CorrelationInsights enumerates unordered constrained-attribute pairs once
// and classifies each as strong (corr>0.4) or conflict (corr<-0.4), tagged
// both_needed when neither has met its quota. Cached after first call.
func (m *Metrics) CorrelationInsights() []pairInsight {
	if m.correlationPairs != nil {
		return m.correlationPairs
	}
	var pairs []pairInsight
	for i := 0; i < len(m.order); i++ {
		for j := i + 1; j < len(m.order); j++ {
			a, b := m.order[i], m.order[j]
			corr := m.Correlation(a, b)
			pairs = append(pairs, pairInsight{
				A: a, B: b, Correlation: corr,
				Strong:     corr > 0.4,
				Conflict:   corr < -0.4,
				BothNeeded: !m.IsCompleted(a) && !m.IsCompleted(b),
			})
		}
	}
	m.correlationPairs = pairs
	return pairs
}

// RecordAdmit increments the admitted count for every constrained
// attribute the just-admitted candidate possesses (spec §3: the sole
// mutator of Constraint.admitted_count).
func (m *Metrics) RecordAdmit(attrs map[string]bool) {
	for a, has := range attrs {
		if !has {
			continue
		}
		if c, ok := m.constraints[a]; ok {
			c.admittedCount++
		}
	}
}

// HasEveryAttribute reports whether the candidate possesses every
// constrained attribute (the "unicorn" rule, spec §4.G).
func (m *Metrics) HasEveryAttribute(attrs map[string]bool) bool {
	if len(m.order) == 0 {
		return false
	}
	for _, a := range m.order {
		if !attrs[a] {
			return false
		}
	}
	return true
}
