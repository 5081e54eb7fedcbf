package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuegate/venuegate/admission"
)

const testPresets = `
version: "1"

scenarios:
  scenario-3:
    preset: aggressive
    base_threshold: 0.5
    min_threshold: 0.1
    max_threshold: 0.9
    target_range: 2000
    target_rate: 0.4
    max_capacity: 200
    total_people: 5000
    deflation_law: sigmoid
    urgency_modifier: 1.5
    correlation_bonus: 2.0
    negative_correlation_bonus: 1.9
    negative_correlation_threshold: -0.4
    multi_attribute_bonus: 0.5
    rare_person_bonus: 3.0
    critical_required_threshold: 0.3
    critical_in_line_ratio: 0.8
    critical_capacity_ratio: 0.2
`

func writeTestPresets(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPresets), 0o644))
	return path
}

func TestResolveConfig_MissingFile_FallsBackToDefaults(t *testing.T) {
	cfg := resolveConfig(filepath.Join(t.TempDir(), "nope.yaml"), 1)
	want := admission.DefaultConfig()
	want.ScenarioID = 1
	assert.Equal(t, want, cfg)
}

func TestResolveConfig_MissingScenario_FallsBackToDefaults(t *testing.T) {
	path := writeTestPresets(t)
	cfg := resolveConfig(path, 99)
	want := admission.DefaultConfig()
	want.ScenarioID = 99
	assert.Equal(t, want, cfg)
}

// Round-trips every override field presets.yaml can carry through
// resolveConfig into the admission.Config it produces.
func TestResolveConfig_AppliesEveryScenarioOverride(t *testing.T) {
	path := writeTestPresets(t)
	cfg := resolveConfig(path, 3)

	assert.Equal(t, admission.PresetAggressive, cfg.Preset)
	assert.Equal(t, 0.5, cfg.BaseThreshold)
	assert.Equal(t, 0.1, cfg.MinThreshold)
	assert.Equal(t, 0.9, cfg.MaxThreshold)
	assert.Equal(t, 2000, cfg.TargetRange)
	assert.Equal(t, 0.4, cfg.TargetRate)
	assert.Equal(t, 200, cfg.MaxCapacity)
	assert.Equal(t, 5000, cfg.TotalPeople)
	assert.Equal(t, admission.DeflationSigmoid, cfg.DeflationLaw)

	assert.Equal(t, 1.5, cfg.UrgencyModifier)
	assert.Equal(t, 2.0, cfg.CorrelationBonus)
	assert.Equal(t, 1.9, cfg.NegativeCorrelationBonus)
	assert.Equal(t, -0.4, cfg.NegativeCorrelationThreshold)
	assert.Equal(t, 0.5, cfg.MultiAttributeBonus)
	assert.Equal(t, 3.0, cfg.RarePersonBonus)

	assert.Equal(t, 0.3, cfg.CriticalRequiredThreshold)
	assert.Equal(t, 0.8, cfg.CriticalInLineRatio)
	assert.Equal(t, 0.2, cfg.CriticalCapacityRatio)

	assert.Equal(t, 3, cfg.ScenarioID)
}

func TestLoadPresets_UnknownField_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nscenarios:\n  scenario-1:\n    not_a_real_field: 1\n"), 0o644))

	_, err := loadPresets(path)
	assert.Error(t, err, "strict KnownFields parsing must reject unrecognized keys")
}

func TestScenarioKey(t *testing.T) {
	assert.Equal(t, "scenario-1", scenarioKey(1))
	assert.Equal(t, "scenario-42", scenarioKey(42))
}
