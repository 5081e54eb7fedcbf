package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadS0() InitialPayload {
	return InitialPayload{
		GameID:      "g0",
		Constraints: []ConstraintSpec{{Attribute: "a", MinCount: 500}},
		RelativeFrequencies: map[string]float64{
			"a": 0.5,
		},
		Correlations: map[string]map[string]float64{
			"a": {},
		},
	}
}

func payloadS1() InitialPayload {
	return InitialPayload{
		GameID: "g1",
		Constraints: []ConstraintSpec{
			{Attribute: "a", MinCount: 300},
			{Attribute: "b", MinCount: 400},
		},
		RelativeFrequencies: map[string]float64{
			"a": 0.3,
			"b": 0.1,
		},
		Correlations: map[string]map[string]float64{
			"a": {"b": -0.6},
			"b": {"a": -0.6},
		},
	}
}

func TestNewMetrics_MissingFrequency_Errors(t *testing.T) {
	p := InitialPayload{
		Constraints:         []ConstraintSpec{{Attribute: "a", MinCount: 10}},
		RelativeFrequencies: map[string]float64{},
		Correlations:        map[string]map[string]float64{"a": {}},
	}
	_, err := NewMetrics(p, 100)
	require.Error(t, err)
}

func TestNewMetrics_MissingCorrelation_Errors(t *testing.T) {
	p := InitialPayload{
		Constraints:         []ConstraintSpec{{Attribute: "a", MinCount: 10}, {Attribute: "b", MinCount: 5}},
		RelativeFrequencies: map[string]float64{"a": 0.1, "b": 0.1},
		Correlations:        map[string]map[string]float64{"a": {}, "b": {}},
	}
	_, err := NewMetrics(p, 100)
	require.Error(t, err)
}

func TestProgressAndNeeded(t *testing.T) {
	m, err := NewMetrics(payloadS0(), 1000)
	require.NoError(t, err)

	assert.Equal(t, 500, m.Needed("a"))
	assert.Equal(t, 0.0, m.Progress("a"))

	m.RecordAdmit(map[string]bool{"a": true})
	assert.Equal(t, 1, m.Count("a"))
	assert.Equal(t, 499, m.Needed("a"))
	assert.InDelta(t, 1.0/500, m.Progress("a"), 1e-9)
}

func TestAllConstraintsMet_ShortCircuit(t *testing.T) {
	m, err := NewMetrics(payloadS0(), 1000)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		m.RecordAdmit(map[string]bool{"a": true})
	}
	assert.True(t, m.AllConstraintsMet())
}

// P6: Useful is monotone under attribute superset.
func TestUseful_MonotoneUnderSuperset(t *testing.T) {
	m, err := NewMetrics(payloadS1(), 1000)
	require.NoError(t, err)

	small := m.Useful(map[string]bool{"a": true}, false)
	big := m.Useful(map[string]bool{"a": true, "b": true}, false)

	for k := range small {
		assert.True(t, big[k], "superset must retain every entry of the subset")
	}
}

// P7: overfillThreshold is non-decreasing in frequency within each branch.
func TestOverfillThreshold_NonDecreasing(t *testing.T) {
	assert.Less(t, overfillThreshold(0.01), overfillThreshold(0.04)+1e-9)
	assert.LessOrEqual(t, overfillThreshold(0.06), overfillThreshold(0.09))
	assert.LessOrEqual(t, overfillThreshold(0.15), overfillThreshold(0.3))
}

// P8: Risk with no incomplete constraints yields risk_score=0, feasibility=1.
func TestRisk_AllComplete(t *testing.T) {
	m, err := NewMetrics(payloadS0(), 1000)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		m.RecordAdmit(map[string]bool{"a": true})
	}
	risk := m.Risk(5000)
	assert.Equal(t, 0.0, risk.RiskScore)
	assert.Equal(t, 1.0, risk.FeasibilityScore)
}

// R1: two Metrics built from the same payload start out equal. Metrics has
// no reset method; this compares two fresh instances.
func TestMetrics_PristineEquality(t *testing.T) {
	fresh, err := NewMetrics(payloadS0(), 1000)
	require.NoError(t, err)
	other, err := NewMetrics(payloadS0(), 1000)
	require.NoError(t, err)

	assert.Equal(t, fresh.Count("a"), other.Count("a"))
	assert.Equal(t, fresh.Progress("a"), other.Progress("a"))
	assert.Equal(t, fresh.AllConstraintsMet(), other.AllConstraintsMet())
}

func TestCorrelationInsights_ConflictTag(t *testing.T) {
	m, err := NewMetrics(payloadS1(), 1000)
	require.NoError(t, err)
	pairs := m.CorrelationInsights()
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].Conflict)
	assert.True(t, pairs[0].BothNeeded)
}
