package admission

// Constraint is a single quota: attribute id, minimum admitted count, and
// the running admitted count toward it (spec §3). admittedCount is
// monotone non-decreasing and mutated only by Metrics on admit.
type Constraint struct {
	Attribute     string
	MinCount      int
	admittedCount int
}

// AttributeStats holds the immutable-after-init per-attribute statistics
// derived from the initial payload (spec §3): marginal frequency, pairwise
// correlation, rarity, quota rate, and overdemand classification.
type AttributeStats struct {
	Frequency      float64
	Correlation    map[string]float64
	Rarity         float64
	QuotaRate      float64
	Overdemanded   bool
}

// Status is the lifecycle state of a game, mirrored from the per-step
// input (spec §6).
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// GameStatus is the mutable per-step state the core consumes (spec §3).
type GameStatus struct {
	Status         Status
	AdmittedCount  int
	RejectedCount  int
	NextCandidate  *Candidate // nil when no candidate is available this step
}

// Candidate is a single arrival: the set of attributes it possesses.
type Candidate struct {
	Attributes map[string]bool
}

// Has reports whether the candidate possesses attribute a.
func (c *Candidate) Has(a string) bool {
	if c == nil {
		return false
	}
	return c.Attributes[a]
}

// CriticalEntry describes one attribute the critical detector (4.E) has
// flagged: how many admits it still needs, whether it is capacity-critical
// (required) or merely boosted, and the multiplier the score calculator
// should apply.
type CriticalEntry struct {
	Needed   int
	Required bool
	Modifier float64
}

// RiskAssessment is the aggregate feasibility snapshot recomputed after
// every admit (spec §3, §4.B).
type RiskAssessment struct {
	CriticalAttributes map[string]bool
	RiskScore          float64
	TimeRemaining      float64
	FeasibilityScore   float64
}
