package admission

import "math"

// ThresholdController produces the dynamic admission threshold from
// quota-progress gap plus a rate-deviation nudge (spec §4.F).
type ThresholdController struct {
	cfg Config
}

// NewThresholdController builds a controller bound to the given config.
func NewThresholdController(cfg Config) *ThresholdController {
	return &ThresholdController{cfg: cfg}
}

// Threshold computes the current threshold. totalProcessed is
// admitted+rejected so far; totalProgress is Metrics.TotalProgress();
// currentRate is the realized admission rate admitted/totalProcessed.
func (t *ThresholdController) Threshold(totalProcessed int, totalProgress, currentRate float64) float64 {
	targetRange := maxF(float64(t.cfg.TargetRange), 1)
	naturalProgress := minF(float64(totalProcessed)/targetRange, 1)
	targetQuotaProgress := minF(t.cfg.ThresholdRamp*naturalProgress, 1)
	gap := targetQuotaProgress - totalProgress
	progressAdjustment := math.Tanh(3*gap) * 0.3

	dev := currentRate - t.cfg.TargetRate
	rateAdjustment := 0.0
	switch {
	case dev > 0.05:
		rateAdjustment = 0.02
	case dev < -0.05:
		rateAdjustment = -0.02
	case math.Abs(dev) < 0.02:
		rateAdjustment = 0
	default:
		// 0.02 <= |dev| <= 0.05: ambiguous in the source, left at zero
		// per the open question until clarified (spec §9).
		rateAdjustment = 0
	}

	threshold := t.cfg.BaseThreshold - progressAdjustment + rateAdjustment
	return Clamp(threshold, t.cfg.MinThreshold, t.cfg.MaxThreshold)
}
