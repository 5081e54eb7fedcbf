package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian_NotMaxMinHalf(t *testing.T) {
	// The (max-min)/2 bug called out in spec §9 would give (9-1)/2=4 here;
	// the true median of this data is 3.
	data := []float64{1, 2, 3, 4, 9}
	assert.Equal(t, 3.0, Median(data))
}

func TestMedian_Even(t *testing.T) {
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
}

func TestMedian_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.2, Clamp(0.1, 0.2, 0.8))
	assert.Equal(t, 0.8, Clamp(0.9, 0.2, 0.8))
	assert.Equal(t, 0.5, Clamp(0.5, 0.2, 0.8))
}

func TestPercentile_Boundaries(t *testing.T) {
	data := []float64{10, 20, 30, 40}
	assert.Equal(t, 10.0, Percentile(data, 0))
	assert.Equal(t, 40.0, Percentile(data, 100))
}

func TestSigmoid_ZeroAtOrigin(t *testing.T) {
	assert.Equal(t, 0.0, Sigmoid(0))
}
