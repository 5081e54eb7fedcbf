package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/venuegate/venuegate/admission"
	"github.com/venuegate/venuegate/store"
	"github.com/venuegate/venuegate/telemetry"
	"github.com/venuegate/venuegate/transport"
)

var (
	serverURL   string
	dbPath      string
	scenarioID  int
	presetsPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a live game against a game server over websocket",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := resolveConfig(presetsPath, scenarioID)

		client, err := transport.Dial(serverURL)
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect to game server")
		}
		defer client.Close()

		snapshots, err := store.Open(dbPath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open snapshot store")
		}
		defer snapshots.Close()

		rec := telemetry.NewRecorder(prometheus.DefaultRegisterer)

		initial, err := client.ReadInitialPayload()
		if err != nil {
			logrus.WithError(err).Fatal("failed to read initial payload")
		}
		payload := toAdmissionPayload(initial)

		scenario, err := admission.NewScenario(payload, cfg)
		if err != nil {
			logrus.WithError(err).Fatal("failed to initialize decision core")
		}

		logrus.Infof("game %s starting: scenario=%d capacity=%d", initial.GameID, scenarioID, cfg.MaxCapacity)

		var lastStatus admission.GameStatus
		for {
			step, err := client.ReadStep()
			if err != nil {
				logrus.WithError(err).Error("failed to read step, ending game loop")
				break
			}
			if step.Status != string(admission.StatusRunning) {
				lastStatus.Status = admission.Status(step.Status)
				lastStatus.AdmittedCount = step.AdmittedCount
				lastStatus.RejectedCount = step.RejectedCount
				break
			}

			status := admission.GameStatus{
				Status:        admission.StatusRunning,
				AdmittedCount: step.AdmittedCount,
				RejectedCount: step.RejectedCount,
			}
			if step.NextPerson != nil {
				status.NextCandidate = &admission.Candidate{Attributes: step.NextPerson.Attributes}
			}

			admit := scenario.Admit(status)
			if err := client.PostDecision(admit); err != nil {
				logrus.WithError(err).Error("failed to post decision")
				break
			}

			rec.RecordDecision(admit)
			risk := scenario.Risk()
			rec.RecordGauges(scenario.LastThreshold(), scenario.LastDeflationFactor(), risk.RiskScore)
			lastStatus = status
		}

		if err := snapshots.Save(store.Snapshot{
			ScenarioID: scenarioID,
			GameID:     initial.GameID,
			Status:     string(lastStatus.Status),
			Admitted:   lastStatus.AdmittedCount,
			Rejected:   lastStatus.RejectedCount,
			Payload:    map[string]interface{}{"total_progress": scenario.Metrics().TotalProgress()},
		}); err != nil {
			logrus.WithError(err).Error("failed to persist final snapshot")
		}

		logrus.Infof("game %s finished: %s", initial.GameID, lastStatus.Status)
	},
}

func toAdmissionPayload(msg transport.InitialPayloadMessage) admission.InitialPayload {
	constraints := make([]admission.ConstraintSpec, 0, len(msg.Constraints))
	for _, c := range msg.Constraints {
		constraints = append(constraints, admission.ConstraintSpec{Attribute: c.Attribute, MinCount: c.MinCount})
	}
	return admission.InitialPayload{
		GameID:              msg.GameID,
		Constraints:         constraints,
		RelativeFrequencies: msg.AttributeStatistics.RelativeFrequencies,
		Correlations:        msg.AttributeStatistics.Correlations,
	}
}

func init() {
	runCmd.Flags().StringVar(&serverURL, "url", "ws://localhost:8080/game", "Game server websocket URL")
	runCmd.Flags().StringVar(&dbPath, "db", "venuegate.db", "Snapshot store database path")
	runCmd.Flags().IntVar(&scenarioID, "scenario", 1, "Scenario id")
	runCmd.Flags().StringVar(&presetsPath, "presets", "presets.yaml", "Path to presets.yaml")
}
