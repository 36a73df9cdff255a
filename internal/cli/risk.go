package cli

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/domain"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Evaluate member churn-risk signals against the configured rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		adapter := domain.New(cfg)

		var s domain.MemberSignals
		s.Absences, _ = cmd.Flags().GetInt("absences")
		s.AttendanceDropPct, _ = cmd.Flags().GetFloat64("attendance-drop")
		s.OverdueDays, _ = cmd.Flags().GetInt("overdue-days")
		s.DaysToExpiry, _ = cmd.Flags().GetInt("days-to-expiry")

		entries := adapter.EvaluateRisk(s)
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No risk rules triggered.")
			return nil
		}

		w := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(w, "[%s] %s=%.1f: %s\n", e.Level, e.Signal, e.Value, e.Message)
		}
		return nil
	},
}

func init() {
	riskCmd.Flags().Int("absences", 0, "Consecutive absences")
	riskCmd.Flags().Float64("attendance-drop", 0, "Attendance drop percentage")
	riskCmd.Flags().Int("overdue-days", 0, "Days payment is overdue")
	riskCmd.Flags().Int("days-to-expiry", 9999, "Days until membership expiry")
}
