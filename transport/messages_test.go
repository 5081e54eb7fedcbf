package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPayloadMessage_UnmarshalsWireShape(t *testing.T) {
	raw := `{
		"gameId": "game-1",
		"constraints": [{"attribute": "a", "minCount": 300}],
		"attributeStatistics": {
			"relativeFrequencies": {"a": 0.3},
			"correlations": {"a": {}}
		}
	}`

	var msg InitialPayloadMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, "game-1", msg.GameID)
	require.Len(t, msg.Constraints, 1)
	assert.Equal(t, "a", msg.Constraints[0].Attribute)
	assert.Equal(t, 300, msg.Constraints[0].MinCount)
	assert.Equal(t, 0.3, msg.AttributeStatistics.RelativeFrequencies["a"])
}

func TestStepMessage_NextPersonNil_WhenAbsent(t *testing.T) {
	raw := `{"status": "running", "admittedCount": 1, "rejectedCount": 2, "nextPerson": null}`

	var msg StepMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, "running", msg.Status)
	assert.Equal(t, 1, msg.AdmittedCount)
	assert.Equal(t, 2, msg.RejectedCount)
	assert.Nil(t, msg.NextPerson)
}

func TestDecisionMessage_MarshalsBooleanField(t *testing.T) {
	data, err := json.Marshal(DecisionMessage{Admit: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"admit": true}`, string(data))
}
