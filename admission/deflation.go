package admission

import "math"

// DeflationLaw selects the monotone mapping from rate ratio to score
// factor (spec §4.D, §9: a tagged enum keyed to pure functions, not
// runtime polymorphism over a shared interface).
type DeflationLaw int

const (
	// DeflationTiered is the reference step-function table from spec §4.D.
	DeflationTiered DeflationLaw = iota
	// DeflationSigmoid uses tanh(sensitivity*(rate-target)).
	DeflationSigmoid
	// DeflationExponential uses 1/ratio.
	DeflationExponential
	// DeflationPowerLaw uses (1/ratio)^1.5.
	DeflationPowerLaw
)

const (
	deflationFloor   = 0.1
	deflationCeiling = 2.0
)

// DeflationController computes the realized admission rate from the counts
// passed to Factor and produces a multiplicative score factor that steers it
// toward TargetRate (spec §4.D). It keeps no running state between calls.
type DeflationController struct {
	law         DeflationLaw
	targetRate  float64
	sensitivity float64
	adaptive    bool
}

// NewDeflationController builds a controller for the given law and target
// rate. sensitivity only affects DeflationSigmoid; adaptive, when true,
// scales sensitivity by (1 + 2*admitted/capacity) so late-game deviations
// are corrected harder.
func NewDeflationController(law DeflationLaw, targetRate, sensitivity float64, adaptive bool) *DeflationController {
	if sensitivity <= 0 {
		sensitivity = 2.0
	}
	return &DeflationController{law: law, targetRate: targetRate, sensitivity: sensitivity, adaptive: adaptive}
}

// Factor returns the deflation factor for the given admitted/rejected
// counts, bounded to [0.1, 2.0] (P5). admittedCount and capacity are only
// consulted when the controller is adaptive.
func (d *DeflationController) Factor(admitted, rejected, admittedCount, capacity int) float64 {
	total := admitted + rejected
	rate := 0.0
	if total > 0 {
		rate = float64(admitted) / float64(total)
	}
	target := maxF(d.targetRate, 0.01)
	ratio := rate / target

	var factor float64
	switch d.law {
	case DeflationSigmoid:
		sensitivity := d.sensitivity
		if d.adaptive && capacity > 0 {
			sensitivity *= 1 + 2*float64(admittedCount)/float64(capacity)
		}
		// tanh is 0 at rate=target and increasing in rate, so
		// 1 - tanh(...) is 1.0 at the target, above 1.0 below it and below
		// 1.0 above it: monotone non-increasing in ratio.
		factor = 1 - Sigmoid(sensitivity*(rate-target))
	case DeflationExponential:
		factor = 1 / maxF(ratio, 0.01)
	case DeflationPowerLaw:
		factor = math.Pow(1/maxF(ratio, 0.01), 1.5)
	default:
		factor = tieredFactor(ratio)
	}

	return Clamp(factor, deflationFloor, deflationCeiling)
}

// tieredFactor implements the reference step table from spec §4.D.
func tieredFactor(ratio float64) float64 {
	switch {
	case ratio > 2.5:
		return 0.15
	case ratio > 2.0:
		return 0.25
	case ratio > 1.5:
		return 0.50
	case ratio > 1.2:
		return 0.80
	case ratio >= 0.8:
		return 1.00
	default:
		return minF(1.5, 1.25/maxF(ratio, 0.01))
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
