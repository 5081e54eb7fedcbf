package cmd

import (
	"bytes"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/venuegate/venuegate/admission"
)

// ScenarioDefaults describes one scenario's tunable overrides in
// presets.yaml, in the style of the teacher's cmd/default_config.go
// Config/Workload structs.
type ScenarioDefaults struct {
	Preset        string  `yaml:"preset"`
	BaseThreshold float64 `yaml:"base_threshold"`
	MinThreshold  float64 `yaml:"min_threshold"`
	MaxThreshold  float64 `yaml:"max_threshold"`
	TargetRange   int     `yaml:"target_range"`
	TargetRate    float64 `yaml:"target_rate"`
	MaxCapacity   int     `yaml:"max_capacity"`
	TotalPeople   int     `yaml:"total_people"`
	DeflationLaw  string  `yaml:"deflation_law"`

	UrgencyModifier              float64 `yaml:"urgency_modifier"`
	CorrelationBonus             float64 `yaml:"correlation_bonus"`
	NegativeCorrelationBonus     float64 `yaml:"negative_correlation_bonus"`
	NegativeCorrelationThreshold float64 `yaml:"negative_correlation_threshold"`
	MultiAttributeBonus          float64 `yaml:"multi_attribute_bonus"`
	RarePersonBonus              float64 `yaml:"rare_person_bonus"`

	CriticalRequiredThreshold float64 `yaml:"critical_required_threshold"`
	CriticalInLineRatio       float64 `yaml:"critical_in_line_ratio"`
	CriticalCapacityRatio     float64 `yaml:"critical_capacity_ratio"`
}

// PresetsFile is the full presets.yaml structure: one ScenarioDefaults per
// scenario id. All top-level sections must be listed to satisfy
// KnownFields(true) strict parsing, matching the teacher's R10 comment in
// cmd/default_config.go.
type PresetsFile struct {
	Version   string                      `yaml:"version"`
	Scenarios map[string]ScenarioDefaults `yaml:"scenarios"`
}

// loadPresets parses a presets.yaml file with strict field checking.
// Returns DefaultConfig()-shaped zero value behavior on read failure: the
// caller falls back to admission.DefaultConfig() rather than fail the CLI
// outright, since presets are an optional tuning aid.
func loadPresets(path string) (PresetsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PresetsFile{}, err
	}
	var pf PresetsFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return PresetsFile{}, err
	}
	return pf, nil
}

// resolveConfig builds an admission.Config for scenarioID, starting from
// admission.DefaultConfig() and applying any override found in
// presets.yaml at presetsPath. Missing file or missing scenario entry is
// not an error — it just means defaults apply.
func resolveConfig(presetsPath string, scenarioID int) admission.Config {
	cfg := admission.DefaultConfig()
	cfg.ScenarioID = scenarioID

	pf, err := loadPresets(presetsPath)
	if err != nil {
		logrus.WithError(err).Debug("no presets file loaded, using built-in defaults")
		return cfg
	}

	key := scenarioKey(scenarioID)
	sd, ok := pf.Scenarios[key]
	if !ok {
		return cfg
	}

	if sd.Preset != "" {
		if p, err := admission.ParseScorePreset(sd.Preset); err == nil {
			cfg.Preset = p
		} else {
			logrus.WithError(err).Warnf("presets.yaml scenario %s: invalid preset", key)
		}
	}
	if sd.BaseThreshold != 0 {
		cfg.BaseThreshold = sd.BaseThreshold
	}
	if sd.MinThreshold != 0 {
		cfg.MinThreshold = sd.MinThreshold
	}
	if sd.MaxThreshold != 0 {
		cfg.MaxThreshold = sd.MaxThreshold
	}
	if sd.TargetRange != 0 {
		cfg.TargetRange = sd.TargetRange
	}
	if sd.TargetRate != 0 {
		cfg.TargetRate = sd.TargetRate
	}
	if sd.MaxCapacity != 0 {
		cfg.MaxCapacity = sd.MaxCapacity
	}
	if sd.TotalPeople != 0 {
		cfg.TotalPeople = sd.TotalPeople
	}
	switch sd.DeflationLaw {
	case "sigmoid":
		cfg.DeflationLaw = admission.DeflationSigmoid
	case "exponential":
		cfg.DeflationLaw = admission.DeflationExponential
	case "power-law":
		cfg.DeflationLaw = admission.DeflationPowerLaw
	}

	if sd.UrgencyModifier != 0 {
		cfg.UrgencyModifier = sd.UrgencyModifier
	}
	if sd.CorrelationBonus != 0 {
		cfg.CorrelationBonus = sd.CorrelationBonus
	}
	if sd.NegativeCorrelationBonus != 0 {
		cfg.NegativeCorrelationBonus = sd.NegativeCorrelationBonus
	}
	if sd.NegativeCorrelationThreshold != 0 {
		cfg.NegativeCorrelationThreshold = sd.NegativeCorrelationThreshold
	}
	if sd.MultiAttributeBonus != 0 {
		cfg.MultiAttributeBonus = sd.MultiAttributeBonus
	}
	if sd.RarePersonBonus != 0 {
		cfg.RarePersonBonus = sd.RarePersonBonus
	}
	if sd.CriticalRequiredThreshold != 0 {
		cfg.CriticalRequiredThreshold = sd.CriticalRequiredThreshold
	}
	if sd.CriticalInLineRatio != 0 {
		cfg.CriticalInLineRatio = sd.CriticalInLineRatio
	}
	if sd.CriticalCapacityRatio != 0 {
		cfg.CriticalCapacityRatio = sd.CriticalCapacityRatio
	}

	return cfg
}

func scenarioKey(id int) string {
	return "scenario-" + strconv.Itoa(id)
}
