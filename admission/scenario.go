package admission

// Scenario bundles one game's identity (GameID, ScenarioID), its captured
// Config, and its Metrics instance behind a single constructor — the
// admission-control analogue of the teacher's NewSimulator(...), which
// bundles configuration and mutable simulation state into one Simulator
// value rather than handing callers the pieces separately.
type Scenario struct {
	GameID     string
	ScenarioID int
	Config     Config

	decider *Decider
}

// NewScenario builds a Scenario for one game: validates cfg, builds the
// Metrics engine from payload, and wires up the Decider that will mutate
// it. GameID is taken from the payload (spec §6); ScenarioID from cfg.
func NewScenario(payload InitialPayload, cfg Config) (*Scenario, error) {
	d, err := NewDecider(payload, cfg)
	if err != nil {
		return nil, err
	}
	return &Scenario{
		GameID:     payload.GameID,
		ScenarioID: cfg.ScenarioID,
		Config:     cfg,
		decider:    d,
	}, nil
}

// Metrics exposes the scenario's quota-progress engine (read-only use
// from outside the core).
func (s *Scenario) Metrics() *Metrics { return s.decider.Metrics() }

// Risk returns the most recently computed risk assessment.
func (s *Scenario) Risk() RiskAssessment { return s.decider.Risk() }

// LastThreshold returns the admission threshold from the most recent
// Admit call, for telemetry.
func (s *Scenario) LastThreshold() float64 { return s.decider.LastThreshold() }

// LastDeflationFactor returns the deflation factor from the most recent
// Admit call, for telemetry.
func (s *Scenario) LastDeflationFactor() float64 { return s.decider.LastDeflationFactor() }

// Admit is the scenario's total entry point, delegating to the Decider
// (spec §4.G). status carries the running totals the caller tracks.
func (s *Scenario) Admit(status GameStatus) bool { return s.decider.Admit(status) }
