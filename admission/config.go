package admission

import "fmt"

// ScorePreset selects the constant table the score calculator (4.C) draws
// urgency/rarity/progress bonuses from. Modeled as a closed,
// string-keyed enum constructed once at decider setup — never as runtime
// polymorphism over a shared interface (see spec §9).
type ScorePreset int

const (
	PresetConservative ScorePreset = iota
	PresetBalanced
	PresetAggressive
	PresetEndgame
	PresetOptimized
)

// ParseScorePreset resolves a preset name to its enum value. Returns an
// error for unrecognized names — this is a data-contract boundary
// (construction-time configuration), not a programmer error, so it
// returns rather than panics.
func ParseScorePreset(name string) (ScorePreset, error) {
	switch name {
	case "conservative":
		return PresetConservative, nil
	case "balanced", "":
		return PresetBalanced, nil
	case "aggressive":
		return PresetAggressive, nil
	case "endgame":
		return PresetEndgame, nil
	case "optimized":
		return PresetOptimized, nil
	default:
		return 0, fmt.Errorf("admission: unknown score preset %q; valid: conservative, balanced, aggressive, endgame, optimized", name)
	}
}

func (p ScorePreset) String() string {
	switch p {
	case PresetConservative:
		return "conservative"
	case PresetBalanced:
		return "balanced"
	case PresetAggressive:
		return "aggressive"
	case PresetEndgame:
		return "endgame"
	case PresetOptimized:
		return "optimized"
	default:
		return "unknown"
	}
}

// presetConstants holds the tunable constants a ScorePreset supplies to the
// score calculator (spec §4.C step 1-6). correlationBonus and negCorrThreshold
// are deliberately absent here: every preset in spec §4 carries the same
// values for those two (1.8 / -0.5), which is the tell that they belong to
// Config's named surface (spec §6) rather than to the preset table -- see
// DESIGN.md "score tunables".
type presetConstants struct {
	urgencyDivisor      float64
	maxUrgency          float64
	rarityHigh          float64
	rarityMedium        float64
	progressLow         float64
	progressMedium      float64
	commonLagBoost      float64
	multiAttributeBonus float64
	criticalCap         float64
	normalizationBase   float64
	maxScore            float64
	maxEndgameScore     float64
}

func constantsFor(p ScorePreset) presetConstants {
	switch p {
	case PresetConservative:
		return presetConstants{
			urgencyDivisor: 12, maxUrgency: 2.5,
			rarityHigh: 2.0, rarityMedium: 1.3,
			progressLow: 1.5, progressMedium: 1.15, commonLagBoost: 1.5,
			multiAttributeBonus: 0.15,
			criticalCap:         6,
			normalizationBase:   2.5,
			maxScore:            1.0,
			maxEndgameScore:     3.0,
		}
	case PresetAggressive:
		return presetConstants{
			urgencyDivisor: 8, maxUrgency: 4,
			rarityHigh: 3.0, rarityMedium: 1.6,
			progressLow: 2.2, progressMedium: 1.4, commonLagBoost: 1.5,
			multiAttributeBonus: 0.3,
			criticalCap:         10,
			normalizationBase:   1.8,
			maxScore:            1.0,
			maxEndgameScore:     3.0,
		}
	case PresetEndgame:
		return presetConstants{
			urgencyDivisor: 6, maxUrgency: 5,
			rarityHigh: 3.0, rarityMedium: 1.6,
			progressLow: 2.2, progressMedium: 1.4, commonLagBoost: 1.5,
			multiAttributeBonus: 0.35,
			criticalCap:         10,
			normalizationBase:   1.6,
			maxScore:            1.0,
			maxEndgameScore:     4.0,
		}
	case PresetOptimized:
		return presetConstants{
			urgencyDivisor: 9, maxUrgency: 3.2,
			rarityHigh: 2.4, rarityMedium: 1.4,
			progressLow: 1.8, progressMedium: 1.2, commonLagBoost: 1.5,
			multiAttributeBonus: 0.22,
			criticalCap:         8,
			normalizationBase:   2.0,
			maxScore:            1.0,
			maxEndgameScore:     3.5,
		}
	default: // PresetBalanced
		return presetConstants{
			urgencyDivisor: 10, maxUrgency: 3,
			rarityHigh: 2.5, rarityMedium: 1.5,
			progressLow: 2.0, progressMedium: 1.25, commonLagBoost: 1.5,
			multiAttributeBonus: 0.2,
			criticalCap:         8,
			normalizationBase:   2.0,
			maxScore:            1.0,
			maxEndgameScore:     3.0,
		}
	}
}

// Config is the immutable configuration surface captured at decider
// construction (spec §6, §9 "mutable global configuration"). All fields
// have defaults from DefaultConfig; the zero value of Config is not valid.
type Config struct {
	BaseThreshold  float64
	MinThreshold   float64
	MaxThreshold   float64
	ThresholdRamp  float64
	TargetRange    int
	TargetRate     float64

	// UrgencyModifier scales the urgency term uniformly across presets.
	UrgencyModifier float64
	// CorrelationBonus multiplies the score when the candidate also carries
	// an attribute positively correlated (θ=0.3) with a, mirroring the
	// negative-correlation path spec §4.C documents explicitly.
	CorrelationBonus float64
	// NegativeCorrelationBonus and NegativeCorrelationThreshold are the
	// correlation_bonus/−0.5 constants of spec §4.C step 3; every preset
	// carried the same values, so they live here instead of in the preset
	// table (see DESIGN.md "score tunables").
	NegativeCorrelationBonus     float64
	NegativeCorrelationThreshold float64
	// MultiAttributeBonus overrides the preset's own multi-attribute bonus
	// when non-zero; zero means "use the preset's default" (see
	// NewScoreCalculator).
	MultiAttributeBonus float64
	// RarePersonBonus multiplies the rarity bonus further for attributes
	// with freq < 0.05, the same ultra-rare tier the useful-attribute
	// filter (spec §4.B) singles out.
	RarePersonBonus float64

	MaxCapacity int
	TotalPeople int

	CriticalRequiredThreshold float64
	CriticalInLineRatio       float64
	CriticalCapacityRatio     float64

	ScenarioID int
	Preset     ScorePreset

	DeflationLaw DeflationLaw
}

// DefaultConfig returns the reference defaults named throughout spec §4 and
// §6: base threshold 0.42, bounds [0.20, 0.80], target processing window
// 4000 of a 10000-candidate stream, capacity 1000, target admission rate
// 0.25, balanced scoring preset, tiered-step deflation.
func DefaultConfig() Config {
	return Config{
		BaseThreshold: 0.42,
		MinThreshold:  0.20,
		MaxThreshold:  0.80,
		ThresholdRamp: 1.1,
		TargetRange:   4000,
		TargetRate:    0.25,

		UrgencyModifier:              1.0,
		CorrelationBonus:             1.8,
		NegativeCorrelationBonus:     1.8,
		NegativeCorrelationThreshold: -0.5,
		MultiAttributeBonus:          0,
		RarePersonBonus:              2.5,

		MaxCapacity: 1000,
		TotalPeople: 10000,

		CriticalRequiredThreshold: 0.15,
		CriticalInLineRatio:       0.9,
		CriticalCapacityRatio:     0.15,

		ScenarioID: 0,
		Preset:     PresetBalanced,

		DeflationLaw: DeflationTiered,
	}
}

// Validate returns an error describing the first invalid field found.
// Called at Scenario construction; never inside the hot admit() path.
func (c Config) Validate() error {
	if c.MaxCapacity <= 0 {
		return fmt.Errorf("admission: MaxCapacity must be positive, got %d", c.MaxCapacity)
	}
	if c.TotalPeople <= c.MaxCapacity {
		return fmt.Errorf("admission: TotalPeople (%d) must exceed MaxCapacity (%d)", c.TotalPeople, c.MaxCapacity)
	}
	if c.MinThreshold < 0 || c.MaxThreshold > 1 || c.MinThreshold > c.MaxThreshold {
		return fmt.Errorf("admission: threshold bounds invalid [%v, %v]", c.MinThreshold, c.MaxThreshold)
	}
	if c.TargetRate <= 0 || c.TargetRate > 1 {
		return fmt.Errorf("admission: TargetRate must be in (0,1], got %v", c.TargetRate)
	}
	return nil
}
