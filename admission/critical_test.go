package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriticalDetector_WarmUpGatesEverything(t *testing.T) {
	m, err := NewMetrics(payloadS1(), 1000)
	require.NoError(t, err)
	d := NewCriticalDetector(DefaultConfig())

	risk := m.Risk(9000)
	table := d.Refresh(m, 49, 1000, 9000, risk)
	assert.Empty(t, table, "warm-up must suppress capacity-, scarcity-, and risk-critical alike")
}

// E4: after 49 admits the detector is empty; at the 50th admit, a severely
// behind attribute can surface as required.
func TestCriticalDetector_PostWarmUp_MarksRequired(t *testing.T) {
	cfg := DefaultConfig()
	m, err := NewMetrics(payloadS1(), 1000)
	require.NoError(t, err)

	// b needs 400, none admitted: with few spots left, urgency_ratio is high.
	spotsLeft := 400 // needed(b)=400, urgency_ratio = 400/400 = 1.0 > 0.15
	d := NewCriticalDetector(cfg)
	risk := m.Risk(9000)
	table := d.Refresh(m, 50, spotsLeft, 9000, risk)

	entry, ok := table["b"]
	require.True(t, ok)
	assert.True(t, entry.Required)
	assert.GreaterOrEqual(t, entry.Modifier, 2.0)
	assert.LessOrEqual(t, entry.Modifier, 10.0)
}

func TestCriticalDetector_CompleteConstraint_NeverFlagged(t *testing.T) {
	m, err := NewMetrics(payloadS0(), 1000)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		m.RecordAdmit(map[string]bool{"a": true})
	}
	d := NewCriticalDetector(DefaultConfig())
	risk := m.Risk(9000)
	table := d.Refresh(m, 500, 500, 9000, risk)
	assert.Empty(t, table)
}
