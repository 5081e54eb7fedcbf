package cmd

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/venuegate/venuegate/admission"
)

var (
	simAttributes []string
	simFreqs      []float64
	simSeed       int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive a synthetic in-process candidate stream for local tuning",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := resolveConfig(presetsPath, scenarioID)
		payload := syntheticPayload()

		scenario, err := admission.NewScenario(payload, cfg)
		if err != nil {
			logrus.WithError(err).Fatal("failed to initialize decision core")
		}

		rng := rand.New(rand.NewSource(simSeed))
		admitted, rejected := 0, 0

		for admitted < cfg.MaxCapacity && admitted+rejected < cfg.TotalPeople {
			candidate := sampleCandidate(rng, payload)
			status := admission.GameStatus{
				Status:        admission.StatusRunning,
				AdmittedCount: admitted,
				RejectedCount: rejected,
				NextCandidate: candidate,
			}
			if scenario.Admit(status) {
				admitted++
			} else {
				rejected++
			}
		}

		met := scenario.Metrics().AllConstraintsMet()
		logrus.Infof("simulation %s complete: admitted=%d rejected=%d quotas_met=%v",
			payload.GameID, admitted, rejected, met)
		for _, a := range scenario.Metrics().Attributes() {
			logrus.Infof("  %s: count=%d needed=%d progress=%.2f",
				a, scenario.Metrics().Count(a), scenario.Metrics().Needed(a), scenario.Metrics().Progress(a))
		}
	},
}

// syntheticPayload builds a small fixed scenario from the --sim-attribute/
// --sim-frequency flags, independent attributes with no correlation. It
// exists purely to let `simulate` run without a live game server.
func syntheticPayload() admission.InitialPayload {
	freqs := make(map[string]float64, len(simAttributes))
	corr := make(map[string]map[string]float64, len(simAttributes))
	var constraints []admission.ConstraintSpec

	for i, a := range simAttributes {
		f := 0.2
		if i < len(simFreqs) {
			f = simFreqs[i]
		}
		freqs[a] = f
		row := make(map[string]float64, len(simAttributes))
		for _, b := range simAttributes {
			if a == b {
				continue
			}
			row[b] = 0
		}
		corr[a] = row
		constraints = append(constraints, admission.ConstraintSpec{Attribute: a, MinCount: int(f * 0.8 * float64(1000))})
	}

	return admission.InitialPayload{
		GameID:              uuid.NewString(),
		Constraints:         constraints,
		RelativeFrequencies: freqs,
		Correlations:        corr,
	}
}

func sampleCandidate(rng *rand.Rand, payload admission.InitialPayload) *admission.Candidate {
	attrs := make(map[string]bool, len(payload.Constraints))
	for _, c := range payload.Constraints {
		attrs[c.Attribute] = rng.Float64() < payload.RelativeFrequencies[c.Attribute]
	}
	return &admission.Candidate{Attributes: attrs}
}

func init() {
	simulateCmd.Flags().StringSliceVar(&simAttributes, "sim-attribute", []string{"a", "b"}, "Attribute names for the synthetic scenario")
	simulateCmd.Flags().Float64SliceVar(&simFreqs, "sim-frequency", []float64{0.3, 0.1}, "Matching marginal frequencies")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 42, "RNG seed")
	simulateCmd.Flags().IntVar(&scenarioID, "scenario", 1, "Scenario id")
	simulateCmd.Flags().StringVar(&presetsPath, "presets", "presets.yaml", "Path to presets.yaml")
}
