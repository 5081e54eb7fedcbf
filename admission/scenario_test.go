package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScenario_CapturesIdentityAndConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScenarioID = 7
	payload := payloadS0()
	payload.GameID = "game-xyz"

	s, err := NewScenario(payload, cfg)
	require.NoError(t, err)

	assert.Equal(t, "game-xyz", s.GameID)
	assert.Equal(t, 7, s.ScenarioID)
	assert.Equal(t, cfg, s.Config)
	assert.NotNil(t, s.Metrics())
}

func TestNewScenario_InvalidConfig_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCapacity = 0
	_, err := NewScenario(payloadS0(), cfg)
	require.Error(t, err)
}

func TestScenario_Admit_DelegatesToDecider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCapacity = 1000
	cfg.TotalPeople = 10000
	s, err := NewScenario(payloadS0(), cfg)
	require.NoError(t, err)

	status := GameStatus{
		Status:        StatusRunning,
		NextCandidate: &Candidate{Attributes: map[string]bool{"a": true}},
	}
	assert.True(t, s.Admit(status))
	assert.Equal(t, 1, s.Metrics().Count("a"))
	assert.GreaterOrEqual(t, s.LastDeflationFactor(), 0.1)
	assert.LessOrEqual(t, s.LastDeflationFactor(), 2.0)
}
